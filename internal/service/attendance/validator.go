package attendance

import (
	"time"

	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
)

// DateValidator checks request date ranges at day granularity in UTC. Now is
// injectable for tests; it defaults to time.Now.
type DateValidator struct {
	Now func() time.Time
}

func NewDateValidator() *DateValidator {
	return &DateValidator{Now: time.Now}
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ValidateDateRange enforces the shared date rules: neither bound may be in
// the past, the range must be ordered, and a half-day request must start and
// end on the same day.
func (v *DateValidator) ValidateDateRange(dateFrom, dateTo time.Time, dateType attendance.DateType) error {
	today := truncateToDay(v.Now())
	from := truncateToDay(dateFrom)
	to := truncateToDay(dateTo)

	if from.Before(today) {
		return attendance.ErrDateFromInvalid
	}
	if to.Before(today) {
		return attendance.ErrDateToInvalid
	}
	if to.Before(from) {
		return attendance.ErrDateToBeforeDateFrom
	}
	if dateType == attendance.DateTypeHalfDay && !from.Equal(to) {
		return attendance.ErrInvalidHalfDaySelection
	}

	return nil
}
