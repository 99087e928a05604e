package types

// Violation is a single finding produced by a rule check.
// Immutable once the producing check returns.
type Violation struct {
	Level      RiskLevel      `json:"level"`
	Rule       string         `json:"rule"`
	Message    string         `json:"message"`
	Suggestion string         `json:"suggestion,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

// WithDetail attaches a structured detail to the violation and returns it
// for chaining. Intended to be called by the check that created the
// violation, before the result is handed back.
func (v *Violation) WithDetail(key string, value any) *Violation {
	if v.Details == nil {
		v.Details = make(map[string]any)
	}
	v.Details[key] = value
	return v
}

// Signals is the typed side channel checks use to coordinate within a single
// validation call. It is never shared across calls or goroutines.
type Signals struct {
	// EarlyReturn is set when a root-cause violation (an unconditioned
	// physically-paginated query) was already reported, so magnitude checks
	// on the same pagination clause would only restate the symptom.
	EarlyReturn bool
}

// ValidationResult accumulates the violations of one validation call.
type ValidationResult struct {
	Violations []*Violation `json:"violations"`

	// Signals carries inter-check state for the duration of one call.
	Signals Signals `json:"-"`
}

// NewResult returns an empty, passing result.
func NewResult() *ValidationResult {
	return &ValidationResult{}
}

// Pass is a convenience for code paths that skip validation entirely.
func Pass() *ValidationResult {
	return &ValidationResult{}
}

// Add records a violation and returns it so the caller can attach details.
func (r *ValidationResult) Add(level RiskLevel, rule, message, suggestion string) *Violation {
	v := &Violation{
		Level:      level,
		Rule:       rule,
		Message:    message,
		Suggestion: suggestion,
	}
	r.Violations = append(r.Violations, v)
	return v
}

// RiskLevel returns the highest level among the recorded violations,
// RiskSafe when there are none.
func (r *ValidationResult) RiskLevel() RiskLevel {
	max := RiskSafe
	for _, v := range r.Violations {
		if v.Level > max {
			max = v.Level
		}
	}
	return max
}

// Passed reports whether the statement cleared every enabled check.
func (r *ValidationResult) Passed() bool {
	return len(r.Violations) == 0
}
