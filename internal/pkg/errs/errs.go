package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound         = errors.New("object not found")
	ErrValueIsInvalid         = errors.New("value is invalid")
	ErrValueIsOutOfRange      = errors.New("value is out of range")
	ErrValueIsRequired        = errors.New("value is required")
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrInconsistentQueueState = errors.New("inconsistent queue state")
)

// sanitize keeps user supplied values on a single line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a missing entity.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, lo, hi any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: lo, Max: hi}
}

func NewValueIsOutOfRangeErrorWithCause(paramName string, value, lo, hi any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: lo, Max: hi, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError reports a status change that is not permitted
// from the order's current state.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func NewInvalidTransitionErrorWithCause(from, to string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	return withCause(fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To), e.Cause)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConcurrentModificationError reports a transaction conflict. Attempts is the
// number of tries made before the error was surfaced (0 when raised by an adapter).
type ConcurrentModificationError struct {
	Attempts int
	Cause    error
}

func NewConcurrentModificationError(attempts int) *ConcurrentModificationError {
	return &ConcurrentModificationError{Attempts: attempts}
}

func NewConcurrentModificationErrorWithCause(attempts int, cause error) *ConcurrentModificationError {
	return &ConcurrentModificationError{Attempts: attempts, Cause: cause}
}

func (e *ConcurrentModificationError) Error() string {
	msg := ErrConcurrentModification.Error()
	if e.Attempts > 0 {
		msg = fmt.Sprintf("%s: gave up after %d attempts", msg, e.Attempts)
	}
	return withCause(msg, e.Cause)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// InconsistentQueueStateError reports a broken queue ordering detected
// before a write or rejected by the database at commit.
type InconsistentQueueStateError struct {
	Reason string
	Cause  error
}

func NewInconsistentQueueStateError(reason string) *InconsistentQueueStateError {
	return &InconsistentQueueStateError{Reason: sanitize(reason)}
}

func NewInconsistentQueueStateErrorWithCause(reason string, cause error) *InconsistentQueueStateError {
	return &InconsistentQueueStateError{Reason: sanitize(reason), Cause: cause}
}

func (e *InconsistentQueueStateError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrInconsistentQueueState, e.Reason), e.Cause)
}

func (e *InconsistentQueueStateError) Unwrap() error {
	return ErrInconsistentQueueState
}
