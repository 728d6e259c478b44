package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrInvalidToken           = errors.New("invalid token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
)
