package engine

import (
	"encoding/json"
	"errors"
	"fmt"
)

// StatusKind is the lifecycle state of a module run.
type StatusKind int

const (
	StatusStarted StatusKind = iota
	StatusFinished
	StatusSkipped
	StatusFailed
	StatusFailedWithResult
)

// SkipReason explains why a module did not run.
type SkipReason int

const (
	// AuthenticationNotProvided means the module needs an API key that is not set.
	AuthenticationNotProvided SkipReason = iota + 1
	// SkippedByUser means the module was excluded by the scan filter.
	SkippedByUser
)

func (r SkipReason) String() string {
	switch r {
	case AuthenticationNotProvided:
		return "auth not provided"
	case SkippedByUser:
		return "skipped by user"
	default:
		return "unknown"
	}
}

// ModuleStatus is the recorded outcome of one module run.
type ModuleStatus struct {
	Kind   StatusKind
	Reason SkipReason
	Err    *ModuleError
}

func Started() ModuleStatus          { return ModuleStatus{Kind: StatusStarted} }
func Finished() ModuleStatus         { return ModuleStatus{Kind: StatusFinished} }
func FailedWithResult() ModuleStatus { return ModuleStatus{Kind: StatusFailedWithResult} }

func Skipped(reason SkipReason) ModuleStatus {
	return ModuleStatus{Kind: StatusSkipped, Reason: reason}
}

// Failed records a terminal failure. Errors that are not a *ModuleError are
// wrapped as ErrCustom with their message.
func Failed(err error) ModuleStatus {
	var me *ModuleError
	if !errors.As(err, &me) {
		me = &ModuleError{Kind: ErrCustom, Msg: fmt.Sprint(err), Err: err}
	}
	return ModuleStatus{Kind: StatusFailed, Err: me}
}

// String returns the bare status token used in machine-readable output.
func (s ModuleStatus) String() string {
	switch s.Kind {
	case StatusStarted:
		return "STARTED"
	case StatusFinished:
		return "FINISHED"
	case StatusSkipped:
		return "SKIPPED"
	case StatusFailed, StatusFailedWithResult:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// WithReason returns the token with the skip reason or error attached,
// e.g. "[auth not provided SKIPPED]".
func (s ModuleStatus) WithReason() string {
	switch s.Kind {
	case StatusSkipped:
		return fmt.Sprintf("[%s %s]", s.Reason, s)
	case StatusFailed:
		msg := "unknown error"
		if s.Err != nil {
			msg = s.Err.Error()
		}
		return fmt.Sprintf("[%s %s]", msg, s)
	case StatusFailedWithResult:
		return fmt.Sprintf("[failed with result %s]", s)
	default:
		return fmt.Sprintf("[%s]", s)
	}
}

// Final reports whether the status is a completed state.
func (s ModuleStatus) Final() bool { return s.Kind != StatusStarted }

func (s ModuleStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ErrorKind classifies module failures.
type ErrorKind int

const (
	ErrURLParse ErrorKind = iota + 1
	ErrHTTP
	ErrJSON
	ErrCustom
)

func (k ErrorKind) String() string {
	switch k {
	case ErrURLParse:
		return "url parse error"
	case ErrHTTP:
		return "http request error"
	case ErrJSON:
		return "json parse error"
	default:
		return "custom error"
	}
}

// ModuleError is a classified module failure.
type ModuleError struct {
	Kind ErrorKind
	Msg  string // set for ErrCustom
	Err  error
}

// NewModuleError classifies cause under kind.
func NewModuleError(kind ErrorKind, cause error) *ModuleError {
	return &ModuleError{Kind: kind, Err: cause}
}

// CustomError builds an ErrCustom failure carrying msg.
func CustomError(msg string) *ModuleError {
	return &ModuleError{Kind: ErrCustom, Msg: msg}
}

func (e *ModuleError) Error() string {
	if e.Kind == ErrCustom && e.Msg != "" {
		return e.Msg
	}
	return e.Kind.String()
}

// Detail includes the wrapped cause, for verbose logging.
func (e *ModuleError) Detail() string {
	if e.Err == nil {
		return e.Error()
	}
	return fmt.Sprintf("%s: %v", e.Error(), e.Err)
}

func (e *ModuleError) Unwrap() error { return e.Err }

// Is matches another *ModuleError of the same kind, so callers can write
// errors.Is(err, &engine.ModuleError{Kind: engine.ErrHTTP}).
func (e *ModuleError) Is(target error) bool {
	t, ok := target.(*ModuleError)
	return ok && t.Kind == e.Kind
}
