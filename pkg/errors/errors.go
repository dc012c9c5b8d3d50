package errors

import (
	"errors"
	"fmt"
)

var (
	ErrSchemaInvalid         = errors.New("invalid document schema")
	ErrDanglingReference     = errors.New("dangling reference")
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")
	ErrInvalidPlaceholder    = errors.New("invalid placeholder syntax")
	ErrUnknownLevel          = errors.New("unknown level")
	ErrUnknownHandlerClass   = errors.New("unknown handler class")
	ErrUnknownStream         = errors.New("unknown stream")
	ErrInvalidFilter         = errors.New("invalid filter expression")
	ErrInvalidDateFormat     = errors.New("invalid date format")
	ErrUnsupportedFormat     = errors.New("unsupported document format")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrDocumentInvalid       = errors.New("invalid document")
	ErrNotResolved           = errors.New("document not resolved")
	ErrHandlerNotFound       = errors.New("handler not found")
)

func NewSchemaError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrSchemaInvalid, field, reason)
}

func NewDanglingReferenceError(kind string, name string, field string) error {
	return fmt.Errorf("%w: %s %q referenced by %s is not defined", ErrDanglingReference, kind, name, field)
}

func NewUnresolvedPlaceholderError(token string, field string) error {
	return fmt.Errorf("%w: $%s in %s", ErrUnresolvedPlaceholder, token, field)
}

func NewInvalidPlaceholderError(field string, value string) error {
	return fmt.Errorf("%w: %s: %q", ErrInvalidPlaceholder, field, value)
}

func NewLevelError(level string, field string) error {
	return fmt.Errorf("%w: %q in %s", ErrUnknownLevel, level, field)
}

func NewClassError(class string, field string) error {
	return fmt.Errorf("%w: %q in %s", ErrUnknownHandlerClass, class, field)
}

func NewStreamError(stream string, field string) error {
	return fmt.Errorf("%w: %q in %s", ErrUnknownStream, stream, field)
}

func NewFilterError(handler string, err error) error {
	return fmt.Errorf("%w: handler=%s: %v", ErrInvalidFilter, handler, err)
}

func NewDateFormatError(directive string, field string) error {
	return fmt.Errorf("%w: unsupported directive %q in %s", ErrInvalidDateFormat, directive, field)
}

func NewFormatError(path string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

func NewHandlerNotFoundError(name string) error {
	return fmt.Errorf("%w: %s", ErrHandlerNotFound, name)
}
