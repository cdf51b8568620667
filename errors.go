package doublestate

import (
	"errors"
	"fmt"
)

// Configuration errors, reported by Definition.Validate and Definition.Build
var (
	ErrDuplicateState     = errors.New("state declared more than once")
	ErrUndeclaredState    = errors.New("reference to undeclared state")
	ErrLinearArity        = errors.New("linear state must have exactly one successor")
	ErrNoSuccessors       = errors.New("arbitrary state has no successors")
	ErrTerminalSuccessors = errors.New("terminal state declares successors")
	ErrNoInitial          = errors.New("no initial state defined")
	ErrMultipleInitial    = errors.New("more than one initial state defined")
	ErrLinearEdge         = errors.New("linear edge is not a successor")
	ErrLinearCycle        = errors.New("linear chain never reaches a steady state")
	ErrInvalidKind        = errors.New("invalid state kind")
)

// ErrIllegalTransition is matched by every IllegalTransitionError
var ErrIllegalTransition = errors.New("illegal transition")

// ConfigurationError reports a malformed transition table
type ConfigurationError struct {
	State StateID // Offending state, empty when the problem is table-wide
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.State == "" {
		return fmt.Sprintf("invalid transition table: %v", e.Err)
	}
	return fmt.Sprintf("invalid transition table: state %q: %v", e.State, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configErr(state StateID, err error, format string, args ...any) *ConfigurationError {
	if format != "" {
		err = fmt.Errorf("%w: "+format, append([]any{err}, args...)...)
	}
	return &ConfigurationError{State: state, Err: err}
}

// IllegalTransitionError is returned when a requested target is not a
// successor of the current state
type IllegalTransitionError struct {
	From StateID
	To   StateID
}

func (e *IllegalTransitionError) Error() string {
	if e.To == "" {
		return fmt.Sprintf("illegal transition: state %q has no linear edge", e.From)
	}
	return fmt.Sprintf("illegal transition from %q to %q", e.From, e.To)
}

func (e *IllegalTransitionError) Is(target error) bool {
	return target == ErrIllegalTransition
}

// IsConfigurationError reports whether err is or wraps a ConfigurationError
func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}

// IsIllegalTransition reports whether err is or wraps an IllegalTransitionError
func IsIllegalTransition(err error) bool {
	var e *IllegalTransitionError
	return errors.As(err, &e)
}
