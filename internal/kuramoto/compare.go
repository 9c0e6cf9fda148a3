package kuramoto

import (
	"context"
	"fmt"
	"sync"

	"spiralsim/internal/analysis"
	"spiralsim/internal/config"
	"spiralsim/internal/engine"
)

// ComparisonResult summarizes an engine run against its matched control
// run. Regulation is the mean absolute first difference of the
// regulation signal, r(t) for the engine and R(t) for the control;
// positive gain means the engine holds its signal steadier.
type ComparisonResult struct {
	CPURatio        float64 `json:"cpu_ratio"`
	RegulationGain  float64 `json:"regulation_gain"`
	EngineMeanStep  float64 `json:"engine_mean_step"`
	ControlMeanStep float64 `json:"control_mean_step"`
	EngineReg       float64 `json:"engine_reg"`
	ControlReg      float64 `json:"control_reg"`
}

// Compare runs the engine and its matched control model concurrently
// and returns the comparison along with both completed runs.
func Compare(ctx context.Context, cfg *config.Config) (*ComparisonResult, *engine.Result, *Result, error) {
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("engine setup: %w", err)
	}
	ctl, err := New(Matched(cfg))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("control setup: %w", err)
	}

	var (
		engRes *engine.Result
		ctlRes *Result
		engErr error
		ctlErr error
		wg     sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		engRes, engErr = eng.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		ctlRes, ctlErr = ctl.Run(ctx)
	}()
	wg.Wait()

	if engErr != nil {
		return nil, nil, nil, fmt.Errorf("engine run: %w", engErr)
	}
	if ctlErr != nil {
		return nil, nil, nil, fmt.Errorf("control run: %w", ctlErr)
	}

	cmp := &ComparisonResult{
		EngineMeanStep:  engRes.MeanStepSeconds(),
		ControlMeanStep: ctlRes.MeanStepSeconds(),
		EngineReg:       analysis.AbsDiffMean(engRes.Trace.Ratio()),
		ControlReg:      analysis.AbsDiffMean(ctlRes.Trace.Signal()),
	}
	if cmp.ControlMeanStep > 0 {
		cmp.CPURatio = cmp.EngineMeanStep / cmp.ControlMeanStep
	}
	if cmp.ControlReg > 1e-12 {
		cmp.RegulationGain = 1 - cmp.EngineReg/cmp.ControlReg
	}
	return cmp, engRes, ctlRes, nil
}
