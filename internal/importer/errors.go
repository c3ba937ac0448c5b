package importer

import (
	"errors"
	"fmt"

	"mediashelf/internal/services"
)

// ErrorKind classifies a failed import.
type ErrorKind string

const (
	KindInvalidCategory ErrorKind = "invalid_category"
	KindInvalidID       ErrorKind = "invalid_id"
	KindNotFound        ErrorKind = "not_found"
	KindFetchFailed     ErrorKind = "fetch_failed"
)

// Sentinels matched by ImportError.Is. A not_found failure matches both
// ErrNotFound and ErrFetchFailed.
var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidID       = errors.New("invalid external id")
	ErrNotFound        = errors.New("item not found")
	ErrFetchFailed     = errors.New("fetch failed")
)

// ImportError is returned whenever Import produces no candidate.
type ImportError struct {
	Kind       ErrorKind
	Category   string
	ExternalID string
	Trace      []string
	Err        error
}

func (e *ImportError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindInvalidCategory:
		return fmt.Sprintf("import: invalid category %q", e.Category)
	case KindInvalidID:
		return "import: external id must not be empty"
	default:
		msg := fmt.Sprintf("import %s/%s: %s", e.Category, e.ExternalID, e.Kind)
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	}
}

func (e *ImportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorKind exposes the failure class for logs and API payloads.
func (e *ImportError) ErrorKind() string {
	if e == nil {
		return ""
	}
	return string(e.Kind)
}

func (e *ImportError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrInvalidCategory:
		return e.Kind == KindInvalidCategory
	case ErrInvalidID:
		return e.Kind == KindInvalidID
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrFetchFailed:
		return e.Kind == KindFetchFailed || e.Kind == KindNotFound
	case services.ErrValidation:
		return e.Kind == KindInvalidCategory || e.Kind == KindInvalidID
	case services.ErrNotFound:
		return e.Kind == KindNotFound
	}
	return false
}

// AsImportError unwraps err into an *ImportError when possible.
func AsImportError(err error) (*ImportError, bool) {
	var importErr *ImportError
	if errors.As(err, &importErr) {
		return importErr, true
	}
	return nil, false
}
