package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nimbushr/hrm-backend-go/internal/domain/attendance"
	"github.com/nimbushr/hrm-backend-go/internal/pkg/database"
)

// requestRepositoryImpl serves one request table. Time-off and WFH requests
// share one schema, so the constructors below only differ in table name and
// not-found error.
type requestRepositoryImpl struct {
	db          *database.DB
	table       string
	errNotFound error
}

func NewTimeOffRequestRepository(db *database.DB) attendance.RequestRepository {
	return &requestRepositoryImpl{
		db:          db,
		table:       "time_off_requests",
		errNotFound: attendance.ErrTimeOffRequestNotFound,
	}
}

func NewWfhRequestRepository(db *database.DB) attendance.RequestRepository {
	return &requestRepositoryImpl{
		db:          db,
		table:       "wfh_requests",
		errNotFound: attendance.ErrWfhRequestNotFound,
	}
}

const requestColumns = `r.id, r.employee_id, r.date_from, r.date_to, r.date_type, r.total_hours,
			   r.details, r.attached_file, r.status, r.created_at, r.updated_at`

func scanRequest(row pgx.Row, withEmployeeName bool) (attendance.Request, error) {
	var req attendance.Request
	dest := []interface{}{
		&req.ID,
		&req.EmployeeID,
		&req.DateFrom,
		&req.DateTo,
		&req.DateType,
		&req.TotalHours,
		&req.Details,
		&req.AttachedFile,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	}
	if withEmployeeName {
		dest = append(dest, &req.EmployeeName)
	}
	err := row.Scan(dest...)
	return req, err
}

func (r *requestRepositoryImpl) Create(ctx context.Context, request attendance.Request) (attendance.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO %s (
			id, employee_id,
			date_from, date_to, date_type, total_hours,
			details, attached_file, status,
			created_at, updated_at
		) VALUES (
			uuidv7(), $1,
			$2, $3, $4, $5,
			$6, $7, $8,
			NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`, r.table)

	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.DateFrom, request.DateTo, request.DateType, request.TotalHours,
		request.Details, request.AttachedFile, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return attendance.Request{}, err
	}

	return request, nil
}

func (r *requestRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT `+requestColumns+`,
			   e.full_name AS employee_name
		FROM %s r
		JOIN employees e ON r.employee_id = e.id
		WHERE r.id = $1
	`, r.table)

	req, err := scanRequest(q.QueryRow(ctx, query, id), true)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Request{}, r.errNotFound
		}
		return attendance.Request{}, err
	}

	return req, nil
}

func (r *requestRepositoryImpl) GetByIDAndEmployee(ctx context.Context, id, employeeID string) (attendance.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT `+requestColumns+`
		FROM %s r
		WHERE r.id = $1 AND r.employee_id = $2
	`, r.table)

	req, err := scanRequest(q.QueryRow(ctx, query, id, employeeID), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Request{}, r.errNotFound
		}
		return attendance.Request{}, err
	}

	return req, nil
}

// buildFilter renders the WHERE clause shared by List's page and count
// queries. The overlap window keeps any request whose range touches the
// window, matching attendance.Overlaps.
func buildFilter(filter attendance.RequestFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if len(filter.EmployeeIDs) > 0 {
		args = append(args, filter.EmployeeIDs)
		conditions = append(conditions, fmt.Sprintf("r.employee_id = ANY($%d)", len(args)))
	}

	if len(filter.Statuses) > 0 {
		args = append(args, filter.Statuses)
		conditions = append(conditions, fmt.Sprintf("r.status = ANY($%d)", len(args)))
	}

	if filter.DateFrom != nil && filter.DateTo != nil {
		args = append(args, *filter.DateFrom)
		fromIdx := len(args)
		args = append(args, *filter.DateTo)
		toIdx := len(args)
		conditions = append(conditions, fmt.Sprintf(`(
			(r.date_from BETWEEN $%[1]d AND $%[2]d)
			OR (r.date_to BETWEEN $%[1]d AND $%[2]d)
			OR (r.date_from < $%[1]d AND r.date_to > $%[2]d)
			OR (r.date_from > $%[1]d AND r.date_to < $%[2]d)
		)`, fromIdx, toIdx))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *requestRepositoryImpl) List(ctx context.Context, filter attendance.RequestFilter) ([]attendance.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	whereClause, args := buildFilter(filter)

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s r
		`+whereClause, r.table)

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT `+requestColumns+`,
			   e.full_name AS employee_name
		FROM %s r
		JOIN employees e ON r.employee_id = e.id
		`+whereClause+`
		ORDER BY r.date_from DESC, r.created_at DESC
	`, r.table)

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		page := filter.Page
		if page < 1 {
			page = 1
		}
		args = append(args, (page-1)*filter.Limit)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []attendance.Request
	for rows.Next() {
		req, err := scanRequest(rows, true)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *requestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status attendance.RequestStatus) (attendance.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s r
		SET status = $2, updated_at = NOW()
		WHERE r.id = $1
		RETURNING `+requestColumns, r.table)

	req, err := scanRequest(q.QueryRow(ctx, query, id, status), false)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Request{}, r.errNotFound
		}
		return attendance.Request{}, err
	}

	return req, nil
}

func (r *requestRepositoryImpl) AttachFile(ctx context.Context, id, fileRef string) error {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE %s
		SET attached_file = $2, updated_at = NOW()
		WHERE id = $1
	`, r.table)

	commandTag, err := q.Exec(ctx, query, id, fileRef)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return r.errNotFound
	}
	return nil
}

func (r *requestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
	`, r.table)

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return r.errNotFound
	}
	return nil
}

func (r *requestRepositoryImpl) SumApprovedHours(ctx context.Context, employeeID string) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(total_hours), 0)
		FROM %s
		WHERE employee_id = $1 AND status = $2
	`, r.table)

	var sum float64
	err := q.QueryRow(ctx, query, employeeID, attendance.RequestStatusApproved).Scan(&sum)
	if err != nil {
		return 0, err
	}

	return sum, nil
}
