package attendance

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// DateType maps to request_date_type_enum in DB
type DateType string

const (
	DateTypeFullDay DateType = "full_day"
	DateTypeHalfDay DateType = "half_day"
)

// HoursPerDay is the fixed workday convention used to convert an allowance
// stored in days into hours.
const HoursPerDay = 8

// Request is a dated absence request. Time-off and WFH requests share this
// shape and are stored in separate tables; only time-off requests participate
// in balance computation.
type Request struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	// Day-granularity range, inclusive at both ends.
	DateFrom time.Time `json:"date_from"`
	DateTo   time.Time `json:"date_to"`

	DateType DateType `json:"date_type"`

	// TotalHours is caller-supplied and fixed at creation. It is not derived
	// from the date range.
	TotalHours float64 `json:"total_hours"`

	Details      string        `json:"details"`
	AttachedFile *string       `json:"attached_file"`
	Status       RequestStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Joined for listings
	EmployeeName *string `json:"employee_name,omitempty"`
}

// Allowance is a computed balance view, never stored. Units are hours unless
// converted with ToDays.
type Allowance struct {
	Total   float64 `json:"total"`
	Taken   float64 `json:"taken"`
	Balance float64 `json:"balance"`
}

// ToDays converts an hour-denominated allowance to the day view.
func (a Allowance) ToDays() Allowance {
	return Allowance{
		Total:   a.Total / HoursPerDay,
		Taken:   a.Taken / HoursPerDay,
		Balance: a.Balance / HoursPerDay,
	}
}

// VacationBalance pairs an employee with their computed allowance (day view)
// for the admin balance listing.
type VacationBalance struct {
	EmployeeID    string    `json:"employee_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	AllowanceDays float64   `json:"allowance_days"`
	Allowance     Allowance `json:"allowance"`
}

// RequestPage is a listing result. Allowance is populated (day view) only on
// single-owner time-off listings.
type RequestPage struct {
	Items     []Request  `json:"items"`
	Total     int64      `json:"total"`
	Allowance *Allowance `json:"allowance,omitempty"`
}
