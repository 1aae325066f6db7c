package source

import "errors"

var (
	// ErrInvalidArgument reports a malformed or unimportable type name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState reports an accessor used on a declaration of the
	// wrong kind.
	ErrInvalidState = errors.New("invalid state")

	// ErrIllegalState reports a wildcard import that no registered resolver
	// can serve.
	ErrIllegalState = errors.New("illegal state")
)

const unexpectedBody = "source body was not of the expected type"
