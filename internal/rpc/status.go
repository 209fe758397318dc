package rpc

import (
	"errors"
	"log"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"healthmate/internal/clinic"
)

// ErrorDomain is the ErrorInfo domain on every error this service returns.
const ErrorDomain = "healthmate"

// ErrorInfo reasons.
const (
	ReasonValidation         = "VALIDATION"
	ReasonDuplicate          = "DUPLICATE"
	ReasonInvalidCredentials = "INVALID_CREDENTIALS"
	ReasonUnauthenticated    = "UNAUTHENTICATED"
	ReasonNotFound           = "NOT_FOUND"
	ReasonProtectedRecord    = "PROTECTED_RECORD"
	ReasonForbidden          = "FORBIDDEN"
	ReasonAlreadyCompleted   = "ALREADY_COMPLETED"
	ReasonInternal           = "INTERNAL"
)

var mapping = []struct {
	err    error
	code   codes.Code
	reason string
}{
	{clinic.ErrValidation, codes.InvalidArgument, ReasonValidation},
	{clinic.ErrDuplicate, codes.AlreadyExists, ReasonDuplicate},
	{clinic.ErrInvalidCredentials, codes.Unauthenticated, ReasonInvalidCredentials},
	{clinic.ErrUnauthenticated, codes.Unauthenticated, ReasonUnauthenticated},
	{clinic.ErrNotFound, codes.NotFound, ReasonNotFound},
	{clinic.ErrProtectedRecord, codes.PermissionDenied, ReasonProtectedRecord},
	{clinic.ErrForbidden, codes.PermissionDenied, ReasonForbidden},
	{clinic.ErrAlreadyCompleted, codes.FailedPrecondition, ReasonAlreadyCompleted},
}

// Error converts a clinic error to a gRPC status error carrying an
// ErrorInfo detail. Errors outside the clinic classes are logged and
// reported as "internal error".
func Error(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	for _, m := range mapping {
		if errors.Is(err, m.err) {
			return withReason(status.New(m.code, err.Error()), m.reason)
		}
	}
	log.Printf("rpc: internal: %v", err)
	return withReason(status.New(codes.Internal, "internal error"), ReasonInternal)
}

// Status builds a status error with code, msg and reason.
func Status(code codes.Code, msg, reason string) error {
	return withReason(status.New(code, msg), reason)
}

func withReason(st *status.Status, reason string) error {
	ds, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: ErrorDomain})
	if err != nil {
		return st.Err()
	}
	return ds.Err()
}

// Reason returns the ErrorInfo reason attached to err, or "".
func Reason(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
