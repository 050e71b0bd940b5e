package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"slices"

	"github.com/jackc/pgx/v5/pgconn"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when deleting a missing submission
var ErrNotFound = errors.New("submission not found")

type Kind int

const (
	Other Kind = iota
	PermissionDenied
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case PermissionDenied:
		return "permission denied"
	case Unavailable:
		return "unavailable"
	default:
		return "other"
	}
}

// Error is a classified failure of a store operation
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s failed (%s); %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Postgres error codes meaning the role may not do the operation
var permissionCodes = []string{
	"42501", // insufficient_privilege
	"28000", // invalid_authorization_specification
	"28P01", // invalid_password
}

// Classify wraps err in an *Error of the matching kind.
// Nil, ErrNotFound and already classified errors are returned as they are.
func Classify(op string, err error) error {

	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}

	var storeErr *Error
	if errors.As(err, &storeErr) {
		return err
	}

	return &Error{Kind: kindOf(err), Op: op, Err: err}
}

func kindOf(err error) Kind {

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if slices.Contains(permissionCodes, pgErr.Code) {
			return PermissionDenied
		}
		return Other
	}

	// Errors of gRPC backed stores carry a status code
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.PermissionDenied, codes.Unauthenticated:
			return PermissionDenied
		case codes.Unavailable, codes.DeadlineExceeded:
			return Unavailable
		default:
			return Other
		}
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Unavailable
	case errors.As(err, &connectErr):
		return Unavailable
	case errors.As(err, &netErr):
		return Unavailable
	case pgconn.Timeout(err):
		return Unavailable
	}

	return Other
}

// KindOf reports the kind of a classified error, Other for anything else
func KindOf(err error) Kind {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return Other
}

// Message turns a store failure into a human readable message
func Message(err error) string {
	switch KindOf(err) {
	case PermissionDenied:
		return "Access denied. You don't have permission to do that."
	case Unavailable:
		return "Could not reach the database. Check your connection and try again."
	default:
		return "Something went wrong. Please try again."
	}
}
