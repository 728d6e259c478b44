package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/nimbushr/hrm-backend-go/internal/config"
	appHTTP "github.com/nimbushr/hrm-backend-go/internal/handler/http"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/database"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/jwt"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/storage"
	"github.com/nimbushr/hrm-backend-go/internal/repository/postgresql"
	attendanceService "github.com/nimbushr/hrm-backend-go/internal/service/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/service/file"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeOffRepo := postgresql.NewTimeOffRequestRepository(db)
	wfhRepo := postgresql.NewWfhRequestRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}
	fileService := file.NewFileService(fileStorage)

	dateValidator := attendanceService.NewDateValidator()
	timeOffService := attendanceService.NewTimeOffService(timeOffRepo, employeeRepo, transactor, dateValidator)
	wfhService := attendanceService.NewWfhService(wfhRepo, employeeRepo, transactor, dateValidator)

	timeOffHandler := appHTTP.NewTimeOffHandler(timeOffService, fileService)
	wfhHandler := appHTTP.NewWfhHandler(wfhService, fileService)
	vacationBalanceHandler := appHTTP.NewVacationBalanceHandler(timeOffService)

	router := appHTTP.NewRouter(
		JWTService,
		timeOffHandler,
		wfhHandler,
		vacationBalanceHandler,
		cfg.Storage.BasePath,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
