package shell

import (
	"fmt"

	"herdcl/internal/app"
)

// Stage names the step of a console run that failed.
type Stage string

const (
	StageSetup   Stage = "setup"
	StageAction  Stage = "action"
	StageExecute Stage = "execute"
	StageEncode  Stage = "encode"
	StagePanic   Stage = "panic"
)

// Outcome is the explicit result of Shell.Run.
type Outcome struct {
	// Action is the kind that ran, empty if no action was resolved.
	Action app.Kind
	// Result is the value returned by the action on success.
	Result any
	// JSON is the indented rendering of Result.
	JSON string

	// Stage and Err describe a failure; Err is nil on success.
	Stage Stage
	Err   error
}

// OK reports whether the run succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// RunFailedError is returned by Main when the console run failed, so the
// caller can pick a non-zero exit code.
type RunFailedError struct {
	Outcome Outcome
}

func (e *RunFailedError) Error() string {
	return fmt.Sprintf("run failed during %s: %v", e.Outcome.Stage, e.Outcome.Err)
}

func (e *RunFailedError) Unwrap() error {
	return e.Outcome.Err
}
