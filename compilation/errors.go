package compilation

import "errors"

var (
	ErrMissingPackage = errors.New("missing package name")
	ErrInvalidName    = errors.New("invalid identifier")
	ErrUnknownType    = errors.New("unknown type expression")
	ErrUnknownEnum    = errors.New("unknown enum")
	ErrUnknownTrait   = errors.New("unknown trait")
	ErrInvalidVerb    = errors.New("invalid http verb")
	ErrPathParam      = errors.New("invalid path parameter")
	ErrDuplicateParam = errors.New("duplicate parameter")
)
