package analyses

// Reason names why an AI call did not yield a usable record.
type Reason string

const (
	ReasonUnconfigured  Reason = "unconfigured"
	ReasonUpstreamError Reason = "upstream_error"
	ReasonTimeout       Reason = "timeout"
	ReasonUnparsable    Reason = "unparsable"
)

// Outcome is the result of asking the model for an analysis.
// Exactly one of Record (Ok) or Reason (Degraded) is meaningful.
type Outcome struct {
	Record Record
	Reason Reason
	Err    error
}

func Ok(record Record) Outcome {
	return Outcome{Record: record}
}

func Degraded(reason Reason, err error) Outcome {
	return Outcome{Reason: reason, Err: err}
}

// IsDegraded reports whether the caller must substitute a fallback record.
func (o Outcome) IsDegraded() bool {
	return o.Reason != ""
}
