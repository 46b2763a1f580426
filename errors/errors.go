package errors

import "fmt"

var (
	ErrInvalidInput       = fmt.Errorf("required field is empty")
	ErrDuplicatePhone     = fmt.Errorf("phone number already registered")
	ErrInvalidCredentials = fmt.Errorf("invalid phone or password")
	ErrDanglingReference  = fmt.Errorf("chat references an unknown user")
	ErrStorageUnavailable = fmt.Errorf("durable storage unavailable")
)
