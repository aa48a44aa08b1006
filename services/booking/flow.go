package booking

import "fmt"

// Step is a position in the booking modal.
type Step string

const (
	StepDate    Step = "date"
	StepTime    Step = "time"
	StepDetails Step = "details"
	StepSignup  Step = "signup"
	StepConfirm Step = "confirm"
	StepSuccess Step = "success"
)

// Event moves the flow one step.
type Event string

const (
	EventNext Event = "next"
	EventBack Event = "back"
)

// MinPasswordLength is the shortest password accepted at the signup step.
const MinPasswordLength = 6

// FlowState is everything the transition guards look at.
type FlowState struct {
	Step            Step
	HasDate         bool
	HasTime         bool
	DetailsComplete bool
	PasswordLength  int
	HasSession      bool
}

// Transition is the pure step function of the booking flow. A rejected
// transition returns the current step and an error wrapping
// ErrTransitionRejected together with the failing guard.
func Transition(s FlowState, ev Event) (Step, error) {
	switch ev {
	case EventNext:
		return next(s)
	case EventBack:
		return back(s)
	}
	return s.Step, fmt.Errorf("%w: unknown event %q", ErrTransitionRejected, ev)
}

func next(s FlowState) (Step, error) {
	switch s.Step {
	case StepDate:
		if !s.HasDate {
			return s.Step, reject(ErrMissingDate)
		}
		return StepTime, nil
	case StepTime:
		if !s.HasTime {
			return s.Step, reject(ErrMissingTime)
		}
		return StepDetails, nil
	case StepDetails:
		if !s.DetailsComplete {
			return s.Step, reject(ErrIncompleteDetails)
		}
		if s.HasSession {
			return StepConfirm, nil
		}
		return StepSignup, nil
	case StepSignup:
		if s.PasswordLength < MinPasswordLength {
			return s.Step, reject(ErrPasswordTooShort)
		}
		return StepConfirm, nil
	}
	// confirm advances only through submission; success is terminal.
	return s.Step, reject(ErrNotReady)
}

func back(s FlowState) (Step, error) {
	switch s.Step {
	case StepTime:
		return StepDate, nil
	case StepDetails:
		return StepTime, nil
	case StepSignup:
		return StepDetails, nil
	case StepConfirm:
		if s.HasSession {
			return StepDetails, nil
		}
		return StepSignup, nil
	}
	return s.Step, fmt.Errorf("%w: no step before %s", ErrTransitionRejected, s.Step)
}

func reject(guard error) error {
	return fmt.Errorf("%w: %w", ErrTransitionRejected, guard)
}

// CanAdvance reports whether the "next" control should be enabled.
func CanAdvance(s FlowState) bool {
	_, err := Transition(s, EventNext)
	return err == nil
}

// CanGoBack reports whether the "back" control should be enabled.
func CanGoBack(s FlowState) bool {
	_, err := Transition(s, EventBack)
	return err == nil
}

// Normalize reconciles a stored step with the current session state. A
// customer who logs in while on the signup step skips straight to confirm,
// and one who lost their session on confirm without a password goes back to
// signup.
func Normalize(s FlowState) Step {
	switch {
	case s.Step == StepSignup && s.HasSession:
		return StepConfirm
	case s.Step == StepConfirm && !s.HasSession && s.PasswordLength < MinPasswordLength:
		return StepSignup
	}
	return s.Step
}
