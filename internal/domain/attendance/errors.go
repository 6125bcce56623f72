package attendance

import "errors"

var ErrInvalidWorkingType = errors.New("Invalid working type")
