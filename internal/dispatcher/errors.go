package dispatcher

import (
	"errors"
	"fmt"
)

// Code identifies an error category independently of its message.
type Code string

const (
	CodeNoDialogOpen             Code = "NO_DIALOG_OPEN"
	CodeWidgetNotFound           Code = "WIDGET_NOT_FOUND"
	CodeAmbiguousSelection       Code = "AMBIGUOUS_SELECTION"
	CodeMissingAction            Code = "MISSING_ACTION"
	CodeUnknownAction            Code = "UNKNOWN_ACTION"
	CodeUnsupportedActionForType Code = "UNSUPPORTED_ACTION_FOR_TYPE"
	CodeItemNotFound             Code = "ITEM_NOT_FOUND"
)

const (
	msgNoDialogOpen       = "No dialog is open"
	msgWidgetNotFound     = "Widget not found"
	msgAmbiguousSelection = "Multiple widgets found to act on, try using multicriteria search (label+id+type)"
	msgMissingAction      = "Missing action parameter"
	msgUnknownAction      = "Unknown action"
	msgUnsupported        = "Action is not supported for the selected widget: %s"
)

// detailUnhandledKind marks errors produced for a kind no case listed.
const detailUnhandledKind = "unhandled_kind"

// Error is a dispatch failure. Errors compare equal under errors.Is when
// their codes match.
type Error struct {
	Code    Code
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

// WithDetail attaches diagnostic context.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is.
var (
	ErrNoDialogOpen             = &Error{Code: CodeNoDialogOpen, Message: msgNoDialogOpen}
	ErrWidgetNotFound           = &Error{Code: CodeWidgetNotFound, Message: msgWidgetNotFound}
	ErrAmbiguousSelection       = &Error{Code: CodeAmbiguousSelection, Message: msgAmbiguousSelection}
	ErrMissingAction            = &Error{Code: CodeMissingAction, Message: msgMissingAction}
	ErrUnknownAction            = &Error{Code: CodeUnknownAction, Message: msgUnknownAction}
	ErrUnsupportedActionForType = &Error{Code: CodeUnsupportedActionForType, Message: "action not supported"}
	ErrItemNotFound             = &Error{Code: CodeItemNotFound, Message: "item not found"}
)

// CodeOf returns the code of err, or "" when err is not a dispatch error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
