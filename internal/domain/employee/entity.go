package employee

import "time"

type Employee struct {
	ID       string
	FullName string
	Email    string
	Role     Role

	// AllowanceDays is the annual time-off entitlement in days. Balance math
	// works in hours (8-hour workday convention).
	AllowanceDays float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Filter narrows employee listings. Zero Page/Limit fall back to repository
// defaults.
type Filter struct {
	EmployeeIDs []string
	Page        int
	Limit       int
}
