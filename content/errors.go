package content

import (
	"errors"
	"fmt"
)

var (
	ErrKindInvalid      = errors.New("content: unknown content kind")
	ErrTitleRequired    = errors.New("content: title is required")
	ErrSlugRequired     = errors.New("content: slug cannot be determined")
	ErrSlugInvalid      = errors.New("content: slug contains invalid characters")
	ErrRecordIDRequired = errors.New("content: record id required")

	// ErrSecondaryLookup marks failures of the translated-row existence
	// check. The save aborts before any write because insert-vs-update
	// cannot be decided safely.
	ErrSecondaryLookup = errors.New("content: secondary lookup failed")

	// ErrSecondaryWrite marks the partial-failure state: the primary row
	// committed but the translated row did not. The two tables are visibly
	// inconsistent until the item is re-saved.
	ErrSecondaryWrite = errors.New("content: secondary write failed after primary commit")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// LookupError wraps the backend failure behind ErrSecondaryLookup while
// keeping the cause reachable via Unwrap.
type LookupError struct {
	Slug string
	Err  error
}

func (e *LookupError) Error() string {
	if e == nil {
		return ErrSecondaryLookup.Error()
	}
	return fmt.Sprintf("%s: slug=%s: %v", ErrSecondaryLookup.Error(), e.Slug, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }

func (e *LookupError) Is(target error) bool { return target == ErrSecondaryLookup }

// SecondaryWriteError reports which secondary write failed after the primary
// row already committed. Re-saving the item is the recovery path: resolution
// is idempotent and re-runs the slug lookup before writing.
type SecondaryWriteError struct {
	Slug string
	Op   WriteOp
	Err  error
}

func (e *SecondaryWriteError) Error() string {
	if e == nil {
		return ErrSecondaryWrite.Error()
	}
	return fmt.Sprintf("%s: op=%s slug=%s: %v", ErrSecondaryWrite.Error(), e.Op, e.Slug, e.Err)
}

func (e *SecondaryWriteError) Unwrap() error { return e.Err }

func (e *SecondaryWriteError) Is(target error) bool { return target == ErrSecondaryWrite }
