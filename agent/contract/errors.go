package contract

import "errors"

var (
	ErrValidation  = errors.New("validation failed")
	ErrUnknownTool = errors.New("unknown tool")
	ErrBadArgument = errors.New("bad tool argument")
)
