package attendance

import "errors"

var (
	ErrDateFromInvalid         = errors.New("date from must be equal to or after the current date")
	ErrDateToInvalid           = errors.New("date to must be equal to or after the current date")
	ErrDateToBeforeDateFrom    = errors.New("date to must be equal to or after the date from")
	ErrInvalidHalfDaySelection = errors.New("cannot select half day if date from and date to are different")
	ErrBalanceZero             = errors.New("current time-off balance is zero")
	ErrDurationExceedsBalance  = errors.New("requested duration is greater than current time-off balance")
	ErrOnlyPendingDeletable    = errors.New("only pending requests can be deleted")
	ErrTimeOffRequestNotFound  = errors.New("time-off request not found")
	ErrWfhRequestNotFound      = errors.New("wfh request not found")
)
