package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/nimbushr/hrm-backend-go/internal/handler/http/middleware"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	timeOffHandler TimeOffHandler,
	wfhHandler WfhHandler,
	vacationBalanceHandler VacationBalanceHandler,
	uploadsDir string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "nimbus-hrm"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Serve uploaded attachments
	fileServer := http.FileServer(http.Dir(uploadsDir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/time-off-requests", func(r chi.Router) {
				r.Post("/", timeOffHandler.CreateRequest)
				r.Get("/", timeOffHandler.GetMyRequests)
				r.Post("/attach-file/{id}", timeOffHandler.AttachFile)
				r.Get("/{id}", timeOffHandler.GetRequest)
				r.Delete("/{id}", timeOffHandler.DeleteRequest)
			})

			r.Route("/wfh-requests", func(r chi.Router) {
				r.Post("/", wfhHandler.CreateRequest)
				r.Get("/", wfhHandler.GetMyRequests)
				r.Post("/attach-file/{id}", wfhHandler.AttachFile)
				r.Get("/{id}", wfhHandler.GetRequest)
				r.Delete("/{id}", wfhHandler.DeleteRequest)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Get("/time-off-requests", timeOffHandler.ListRequests)

				r.Route("/wfh-requests", func(r chi.Router) {
					r.Get("/", wfhHandler.ListRequests)
					r.Get("/{employeeId}/{id}", wfhHandler.GetEmployeeRequest)
					r.Put("/{id}/approve", wfhHandler.ApproveRequest)
					r.Put("/{id}/reject", wfhHandler.RejectRequest)
				})

				r.Route("/vacation-balances", func(r chi.Router) {
					r.Get("/", vacationBalanceHandler.List)
					r.Get("/{employeeId}", vacationBalanceHandler.Get)
					r.Put("/", vacationBalanceHandler.UpdateAllowance)
				})
			})
		})
	})
	return r
}
