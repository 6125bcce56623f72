package contract

import "errors"

var (
	ErrNoOpenContract         = errors.New("No open contract for employee")
	ErrContractNotFound       = errors.New("Contract not found")
	ErrInvalidProbationPeriod = errors.New("Probation period must be between 1 and 6 months")
)
