package controller

import (
	"errors"
	"fmt"

	"github.com/meur/pokedex/internal/catalog"
)

// Kind classifies a failure
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Failure is what a controller reports instead of a record. Key names the
// message shown to the user; Err is kept for logs only.
type Failure struct {
	Kind Kind
	Key  string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("%s: %s", f.Kind, f.Key)
	}
	return fmt.Sprintf("%s: %s: %v", f.Kind, f.Key, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Classify maps catalog errors onto failure kinds. Anything unrecognised,
// including an expired deadline, counts as transport.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		return KindValidation
	case errors.Is(err, catalog.ErrNotFound):
		return KindNotFound
	default:
		return KindTransport
	}
}

// AsFailure extracts a *Failure from err
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
