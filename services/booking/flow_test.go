package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readyState(step Step) FlowState {
	return FlowState{Step: step, HasDate: true, HasTime: true, DetailsComplete: true}
}

func TestTransitionNext(t *testing.T) {
	tests := []struct {
		name  string
		state FlowState
		want  Step
		guard error
	}{
		{"date without selection", FlowState{Step: StepDate}, StepDate, ErrMissingDate},
		{"date to time", FlowState{Step: StepDate, HasDate: true}, StepTime, nil},
		{"time without selection", FlowState{Step: StepTime, HasDate: true}, StepTime, ErrMissingTime},
		{"time to details", FlowState{Step: StepTime, HasDate: true, HasTime: true}, StepDetails, nil},
		{"details incomplete", FlowState{Step: StepDetails, HasDate: true, HasTime: true}, StepDetails, ErrIncompleteDetails},
		{"details to signup without session", readyState(StepDetails), StepSignup, nil},
		{"details to confirm with session", FlowState{Step: StepDetails, HasDate: true, HasTime: true, DetailsComplete: true, HasSession: true}, StepConfirm, nil},
		{"signup short password", FlowState{Step: StepSignup, PasswordLength: 5}, StepSignup, ErrPasswordTooShort},
		{"signup to confirm", FlowState{Step: StepSignup, PasswordLength: 6}, StepConfirm, nil},
		{"confirm does not advance", readyState(StepConfirm), StepConfirm, ErrNotReady},
		{"success is terminal", readyState(StepSuccess), StepSuccess, ErrNotReady},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.state, EventNext)
			assert.Equal(t, tt.want, got)
			if tt.guard == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTransitionRejected)
			assert.ErrorIs(t, err, tt.guard)
		})
	}
}

func TestTransitionBack(t *testing.T) {
	tests := []struct {
		name   string
		state  FlowState
		want   Step
		reject bool
	}{
		{"date has no back", FlowState{Step: StepDate}, StepDate, true},
		{"time to date", FlowState{Step: StepTime}, StepDate, false},
		{"details to time", FlowState{Step: StepDetails}, StepTime, false},
		{"signup to details", FlowState{Step: StepSignup}, StepDetails, false},
		{"confirm to signup without session", FlowState{Step: StepConfirm}, StepSignup, false},
		{"confirm to details with session", FlowState{Step: StepConfirm, HasSession: true}, StepDetails, false},
		{"success has no back", FlowState{Step: StepSuccess}, StepSuccess, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.state, EventBack)
			assert.Equal(t, tt.want, got)
			if tt.reject {
				assert.ErrorIs(t, err, ErrTransitionRejected)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransitionUnknownEvent(t *testing.T) {
	got, err := Transition(FlowState{Step: StepTime}, Event("jump"))
	assert.Equal(t, StepTime, got)
	assert.True(t, errors.Is(err, ErrTransitionRejected))
}

func TestTransitionIsPure(t *testing.T) {
	s := readyState(StepDetails)
	first, _ := Transition(s, EventNext)
	second, _ := Transition(s, EventNext)
	assert.Equal(t, first, second)
	assert.Equal(t, StepDetails, s.Step)
}

func TestCanAdvanceAndGoBack(t *testing.T) {
	assert.False(t, CanAdvance(FlowState{Step: StepDate}))
	assert.True(t, CanAdvance(FlowState{Step: StepDate, HasDate: true}))
	assert.False(t, CanGoBack(FlowState{Step: StepDate}))
	assert.True(t, CanGoBack(FlowState{Step: StepTime}))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, StepConfirm, Normalize(FlowState{Step: StepSignup, HasSession: true}))
	assert.Equal(t, StepSignup, Normalize(FlowState{Step: StepSignup}))
	assert.Equal(t, StepSignup, Normalize(FlowState{Step: StepConfirm, PasswordLength: 0}))
	assert.Equal(t, StepConfirm, Normalize(FlowState{Step: StepConfirm, PasswordLength: 8}))
	assert.Equal(t, StepConfirm, Normalize(FlowState{Step: StepConfirm, HasSession: true}))
	assert.Equal(t, StepTime, Normalize(FlowState{Step: StepTime}))
}
