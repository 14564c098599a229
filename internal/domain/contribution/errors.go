package contribution

import "errors"

var (
	ErrInvalidTableSet = errors.New("statutory table set is invalid")
	ErrInvalidSalary   = errors.New("monthly salary must be a number")
)
