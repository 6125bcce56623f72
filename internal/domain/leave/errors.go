package leave

import "errors"

var (
	ErrLeaveTypeNotFound     = errors.New("Leave type not found")
	ErrAllocationNotFound    = errors.New("Leave allocation not found")
	ErrRequestNotFound       = errors.New("Leave request not found")
	ErrRequestAlreadyHandled = errors.New("Leave request already processed")
	ErrInsufficientBalance   = errors.New("Insufficient leave balance")
	ErrInvalidDateRange      = errors.New("Leave date range is invalid")
)
