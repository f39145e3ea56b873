package travel

import (
	"errors"
	"fmt"

	"travelbook/models"
)

// Sentinels returned by Store implementations.
var (
	ErrNoDocument       = errors.New("document not found")
	ErrRevisionMismatch = errors.New("document revision changed")
)

type Kind int

const (
	KindNotFound Kind = iota + 1
	KindValidation
	KindConflict
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation_failure"
	case KindConflict:
		return "conflict"
	case KindStore:
		return "store_failure"
	}
	return "unknown"
}

// Targets for errors.Is.
var (
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrValidation = &Error{Kind: KindValidation}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrStore      = &Error{Kind: KindStore}
)

// Entity names used in NotFound errors.
const (
	EntityTravel    = "travel"
	EntityItinerary = "itinerary"
	EntityBooking   = "booking"
	EntityActivity  = "activity"
	EntityDocument  = "document"
)

// Error is the only error type that leaves this package.
type Error struct {
	Kind   Kind
	Entity string
	ID     string
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindNotFound && e.Entity != "":
		return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
	case e.Msg != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	case e.Msg != "":
		return e.Msg
	case e.Err != nil:
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound)
// holds for every NotFound regardless of entity.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Entity == "" || t.Entity == e.Entity)
}

func notFound(entity, id string) error {
	return &Error{Kind: KindNotFound, Entity: entity, ID: id}
}

// NotFoundIn reports whether err is a NotFound for the given entity.
func NotFoundIn(err error, entity string) bool {
	return errors.Is(err, &Error{Kind: KindNotFound, Entity: entity})
}

// classify converts anything returned by models or a Store into an *Error.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return err
	}
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return &Error{Kind: KindValidation, Err: err}
	}
	if errors.Is(err, ErrRevisionMismatch) {
		return &Error{Kind: KindConflict, Msg: op, Err: err}
	}
	return &Error{Kind: KindStore, Msg: op, Err: err}
}
