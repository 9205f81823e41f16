package validation

// Verdict aggregates the outcomes of a full evaluation. CanPost is true when
// no ERROR outcome was produced, the target period accepts postings, and the
// approval requirement is satisfied or bypassed.
type Verdict struct {
	Outcomes []Outcome `json:"outcomes"`
	CanPost  bool      `json:"canPost"`
}

// Evaluate runs the given rules against a candidate entry and collects every
// outcome. It never mutates state, so it serves both as a standalone dry-run
// and as the mandatory gate inside posting.
func Evaluate(c Candidate, rules []Rule) []Outcome {
	var outcomes []Outcome
	for _, rule := range rules {
		outcomes = append(outcomes, rule(c)...)
	}
	return outcomes
}

// HasErrors reports whether any outcome carries ERROR severity.
func HasErrors(outcomes []Outcome) bool {
	for _, o := range outcomes {
		if o.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Assess evaluates the built-in rules plus any extra rules and computes the
// aggregate posting verdict.
func Assess(c Candidate, extra ...Rule) Verdict {
	rules := append(BuiltinRules(), extra...)
	outcomes := Evaluate(c, rules)

	canPost := !HasErrors(outcomes)
	if c.Period == nil || !c.Period.Status.AcceptsPosting() {
		canPost = false
	}
	if !c.Approved && !c.BypassApproval {
		canPost = false
	}

	return Verdict{Outcomes: outcomes, CanPost: canPost}
}
