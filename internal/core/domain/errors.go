package domain

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration    = errors.New("configuration error")
	ErrAuthentication   = errors.New("authentication error")
	ErrClassification   = errors.New("classification error")
	ErrRetrieval        = errors.New("retrieval error")
	ErrSchemaValidation = errors.New("schema validation error")
	ErrUpload           = errors.New("upload error")
	ErrImport           = errors.New("import error")
	ErrTemporary        = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}

// ErrorKind names the first matching taxonomy entry for user-facing output.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrAuthentication):
		return "authentication"
	case errors.Is(err, ErrClassification):
		return "classification"
	case errors.Is(err, ErrRetrieval):
		return "retrieval"
	case errors.Is(err, ErrSchemaValidation):
		return "schema_validation"
	case errors.Is(err, ErrUpload):
		return "upload"
	case errors.Is(err, ErrImport):
		return "import"
	case errors.Is(err, ErrTemporary):
		return "temporary"
	default:
		return "internal"
	}
}
