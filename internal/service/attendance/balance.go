package attendance

import (
	"context"
	"fmt"

	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
)

// BalanceCalculator derives an employee's time-off allowance on demand. The
// balance is never stored; every call re-aggregates approved hours so the
// figure reflects the current request set.
type BalanceCalculator struct {
	timeOffRepo attendance.RequestRepository
}

func NewBalanceCalculator(timeOffRepo attendance.RequestRepository) *BalanceCalculator {
	return &BalanceCalculator{timeOffRepo: timeOffRepo}
}

// Allowance returns total, taken and remaining hours for the employee given
// their allowance in days.
func (c *BalanceCalculator) Allowance(ctx context.Context, employeeID string, allowanceDays float64) (attendance.Allowance, error) {
	taken, err := c.timeOffRepo.SumApprovedHours(ctx, employeeID)
	if err != nil {
		return attendance.Allowance{}, fmt.Errorf("sum approved hours: %w", err)
	}

	total := allowanceDays * attendance.HoursPerDay
	return attendance.Allowance{
		Total:   total,
		Taken:   taken,
		Balance: total - taken,
	}, nil
}
