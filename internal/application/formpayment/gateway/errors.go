package gateway

import (
	"errors"
	"fmt"
)

// ErrorKind classifies gateway failures. The reconciler falls back from
// update to create only for KindImmutableViolation and KindNotFound;
// transient failures must never trigger creation of a duplicate plan.
type ErrorKind string

const (
	// KindImmutableViolation: the provider refused to mutate a locked field
	// of a live plan (price, currency, billing cycle).
	KindImmutableViolation ErrorKind = "immutable_violation"
	// KindNotFound: the referenced plan no longer exists at the provider
	// (registry inconsistency).
	KindNotFound ErrorKind = "not_found"
	// KindTransient: timeouts, connection failures, provider 5xx.
	KindTransient ErrorKind = "transient"
	// KindRejected: the provider rejected the request for business reasons
	// other than immutability.
	KindRejected ErrorKind = "rejected"
	// KindMalformedResponse: the provider answered with an unparseable body.
	KindMalformedResponse ErrorKind = "malformed_response"
)

// GatewayError is the structured failure returned by every gateway call.
type GatewayError struct {
	Kind         ErrorKind
	ProviderCode string
	Message      string
	HTTPStatus   int
}

func (e *GatewayError) Error() string {
	if e.ProviderCode != "" {
		return fmt.Sprintf("provider error [%s/%s]: %s", e.Kind, e.ProviderCode, e.Message)
	}
	return fmt.Sprintf("provider error [%s]: %s", e.Kind, e.Message)
}

// NewGatewayError creates a GatewayError with the given kind.
func NewGatewayError(kind ErrorKind, providerCode, message string, httpStatus int) *GatewayError {
	return &GatewayError{
		Kind:         kind,
		ProviderCode: providerCode,
		Message:      message,
		HTTPStatus:   httpStatus,
	}
}

func kindOf(err error) (ErrorKind, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind, true
	}
	return "", false
}

// IsImmutableViolation reports whether err is a locked-field rejection.
func IsImmutableViolation(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindImmutableViolation
}

// IsNotFound reports whether err means the remote plan no longer exists.
func IsNotFound(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindNotFound
}

// IsTransient reports whether err is worth retrying on a later save.
func IsTransient(err error) bool {
	kind, ok := kindOf(err)
	return ok && kind == KindTransient
}
