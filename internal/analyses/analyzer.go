package analyses

import (
	"context"
	"errors"
	"time"

	"elevate-backend/internal/llm"
	"elevate-backend/internal/tier"
)

// Analyzer asks the model for a Record. It never retries.
type Analyzer struct {
	Generator llm.Generator
	Timeout   time.Duration
}

func NewAnalyzer(gen llm.Generator, timeout time.Duration) *Analyzer {
	return &Analyzer{Generator: gen, Timeout: timeout}
}

// Run sends the analysis prompt and normalizes the reply.
func (a *Analyzer) Run(ctx context.Context, resumeText, jobDescription string) Outcome {
	if a == nil || !llm.IsConfigured(a.Generator) {
		return Degraded(ReasonUnconfigured, llm.ErrNotConfigured)
	}

	callCtx := ctx
	if a.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.Timeout)
		defer cancel()
	}

	raw, err := a.Generator.Generate(callCtx, llm.AnalysisPrompt(resumeText, jobDescription))
	if err != nil {
		switch {
		case errors.Is(err, llm.ErrNotConfigured):
			return Degraded(ReasonUnconfigured, err)
		case errors.Is(err, context.DeadlineExceeded), errors.Is(callCtx.Err(), context.DeadlineExceeded):
			return Degraded(ReasonTimeout, err)
		default:
			return Degraded(ReasonUpstreamError, err)
		}
	}

	record, err := Normalize(raw)
	if err != nil {
		return Degraded(ReasonUnparsable, err)
	}
	return Ok(record)
}

// Shape picks the fallback for degraded outcomes and applies the tier policy.
func Shape(o Outcome, t tier.Tier) Record {
	record := o.Record
	if o.IsDegraded() {
		record = MockRecord(t)
	}
	return ApplyTierPolicy(record, t)
}
