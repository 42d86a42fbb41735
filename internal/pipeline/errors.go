package pipeline

import (
	"errors"
	"fmt"
)

// Stage names a step of a generation run.
type Stage string

// Pipeline stages, in execution order.
const (
	StageValidating     Stage = "validating"
	StageAffiliateLinks Stage = "building_affiliate_links"
	StageCollecting     Stage = "collecting_product"
	StageDrafting       Stage = "drafting"
	StageSpellchecking  Stage = "spellchecking"
	StageRendering      Stage = "rendering"
	StageAssembling     Stage = "assembling"
	StageDone           Stage = "done"
)

// ErrNoResult is the cause when a stage reports neither a result nor an error.
var ErrNoResult = errors.New("stage returned no result")

// StageError is the single error a failed run surfaces. Only fatal stages
// produce one; rendering never does.
type StageError struct {
	Stage Stage
	Cause error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Cause)
}

func (e *StageError) Unwrap() error {
	return e.Cause
}

// FailedStage returns the stage of a StageError anywhere in err's chain.
func FailedStage(err error) (Stage, bool) {
	var sErr *StageError
	if errors.As(err, &sErr) {
		return sErr.Stage, true
	}
	return "", false
}
