// Package apperror defines the client-visible error taxonomy of the news API.
//
// Every failure that reaches the HTTP boundary is either an *Error carrying one
// of the Kind values below, or an arbitrary error that is reported as Internal.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a failure
type Kind string

const (
	KindBadRequest        Kind = "bad_request"
	KindInvalidBody       Kind = "invalid_body"
	KindInvalidSortColumn Kind = "invalid_sort_column"
	KindInvalidOrder      Kind = "invalid_order"
	KindNotFound          Kind = "not_found"
	KindUnknownTopic      Kind = "unknown_topic"
	KindRouteNotFound     Kind = "route_not_found"
	KindInternal          Kind = "internal"
)

// Client-visible messages
const (
	MsgBadRequest        = "Bad request"
	MsgInvalidBody       = "Invalid request body"
	MsgInvalidSortColumn = "Invalid sort_by - no column with that name"
	MsgInvalidOrder      = "Bad order request"
	MsgArticleNotFound   = "No article found with that id"
	MsgUserNotFound      = "No user with that username"
	MsgUnknownTopic      = "No topic with that name"
	MsgRouteNotFound     = "Route not found"
	MsgInternal          = "Internal server error"
)

// Error is a classified failure
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status code for the error's kind
func (e *Error) Status() int {
	return StatusOf(e.Kind)
}

// StatusOf maps a kind to its HTTP status code
func StatusOf(kind Kind) int {
	switch kind {
	case KindBadRequest, KindInvalidBody, KindInvalidSortColumn, KindInvalidOrder:
		return http.StatusBadRequest
	case KindNotFound, KindUnknownTopic, KindRouteNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest reports a malformed id, vote increment or comment body
func BadRequest(cause error) *Error {
	return &Error{Kind: KindBadRequest, Message: MsgBadRequest, Err: cause}
}

// InvalidBody reports a PATCH body with missing or unexpected keys
func InvalidBody() *Error {
	return &Error{Kind: KindInvalidBody, Message: MsgInvalidBody}
}

// InvalidSortColumn reports a sort_by value outside the allowed columns
func InvalidSortColumn() *Error {
	return &Error{Kind: KindInvalidSortColumn, Message: MsgInvalidSortColumn}
}

// InvalidOrder reports an order value other than asc or desc
func InvalidOrder() *Error {
	return &Error{Kind: KindInvalidOrder, Message: MsgInvalidOrder}
}

// NotFound reports an absent entity with a context-specific message
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// ArticleNotFound is NotFound for articles
func ArticleNotFound() *Error {
	return NotFound(MsgArticleNotFound)
}

// UserNotFound is NotFound for users
func UserNotFound() *Error {
	return NotFound(MsgUserNotFound)
}

// UnknownTopic reports a topic filter naming no existing topic
func UnknownTopic() *Error {
	return &Error{Kind: KindUnknownTopic, Message: MsgUnknownTopic}
}

// RouteNotFound reports an unmatched path
func RouteNotFound() *Error {
	return &Error{Kind: KindRouteNotFound, Message: MsgRouteNotFound}
}

// Internal wraps an unclassified failure
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: MsgInternal, Err: cause}
}

// From classifies err. Errors that are not an *Error anywhere in their chain
// become Internal.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsKind reports whether err is an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}
