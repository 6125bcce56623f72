package schedule

import "errors"

var (
	ErrScheduleNotFound = errors.New("Work schedule not found")
)
