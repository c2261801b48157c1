package contacts

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// Kind classifies a remote API failure.
type Kind string

const (
	KindUnauthenticated  Kind = "unauthenticated"
	KindPermissionDenied Kind = "permission_denied"
	KindNotFound         Kind = "not_found"
	KindInvalidArgument  Kind = "invalid_argument"
	KindRateLimited      Kind = "rate_limited"
	KindUnavailable      Kind = "unavailable"
	KindTransport        Kind = "transport"
	KindUnknown          Kind = "unknown"
)

// ErrRemoteAPI is the sentinel every *APIError matches with errors.Is.
var ErrRemoteAPI = errors.New("people api error")

// ErrEmptyResourceName is wrapped into an invalid_argument APIError before any call is made.
var ErrEmptyResourceName = errors.New("resourceName is required")

const reauthHint = "authentication token is invalid or expired; re-run `peoplebridge auth`"

// APIError is the single normalized failure returned by every contacts operation.
type APIError struct {
	Kind    Kind
	Status  int // HTTP status reported by the API, 0 when the call never got a response
	Message string
	cause   error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("people api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("people api: %s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.cause }

func (e *APIError) Is(target error) bool { return target == ErrRemoteAPI }

// KindOf returns the Kind of a normalized error, or "" when err is not an *APIError.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// NormalizeError maps any failure from the People client or the OAuth layer onto *APIError.
// nil stays nil and an existing *APIError is returned unchanged.
func NormalizeError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return fromRetrieveError(retrieveErr, err)
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		kind := kindFromStatus(gErr.Code)
		msg := gErr.Message
		if msg == "" {
			msg = http.StatusText(gErr.Code)
		}
		if kind == KindUnauthenticated {
			msg = msg + "; " + reauthHint
		}
		return &APIError{Kind: kind, Status: gErr.Code, Message: msg, cause: err}
	}

	if errors.Is(err, ErrEmptyResourceName) {
		return &APIError{Kind: KindInvalidArgument, Message: err.Error(), cause: err}
	}
	if errors.Is(err, ErrNoCredentials) {
		return &APIError{Kind: KindUnauthenticated, Message: reauthHint, cause: err}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &APIError{Kind: KindTransport, Message: err.Error(), cause: err}
	}

	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) {
		return &APIError{Kind: KindTransport, Message: err.Error(), cause: err}
	}

	return &APIError{Kind: KindUnknown, Message: err.Error(), cause: err}
}

func kindFromStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized:
		return KindUnauthenticated
	case code == http.StatusForbidden:
		return KindPermissionDenied
	case code == http.StatusNotFound, code == http.StatusGone:
		return KindNotFound
	case code == http.StatusBadRequest:
		return KindInvalidArgument
	case code == http.StatusTooManyRequests:
		return KindRateLimited
	case code >= 500:
		return KindUnavailable
	default:
		return KindUnknown
	}
}

// fromRetrieveError treats only rejected grants or clients as a credential problem.
// Any other token endpoint failure is classified by its HTTP status.
func fromRetrieveError(retrieveErr *oauth2.RetrieveError, err error) *APIError {
	status := statusOf(retrieveErr)
	switch retrieveErr.ErrorCode {
	case "invalid_grant", "invalid_client", "unauthorized_client":
		return &APIError{Kind: KindUnauthenticated, Status: status, Message: reauthHint, cause: err}
	}
	if status == http.StatusUnauthorized {
		return &APIError{Kind: KindUnauthenticated, Status: status, Message: reauthHint, cause: err}
	}

	msg := "token endpoint: " + retrieveErr.ErrorCode
	if retrieveErr.ErrorCode == "" {
		msg = "token endpoint: " + http.StatusText(status)
	}
	if retrieveErr.ErrorDescription != "" {
		msg += ": " + retrieveErr.ErrorDescription
	}
	kind := KindUnknown
	if status != 0 {
		kind = kindFromStatus(status)
	}
	return &APIError{Kind: kind, Status: status, Message: msg, cause: err}
}

func statusOf(err *oauth2.RetrieveError) int {
	if err.Response == nil {
		return 0
	}
	return err.Response.StatusCode
}
