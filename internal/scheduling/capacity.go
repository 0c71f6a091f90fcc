package scheduling

import "fmt"

// SessionType classifies a program session and selects its capacity policy.
type SessionType string

const (
	SessionTypeKeynote          SessionType = "keynote"
	SessionTypeMain             SessionType = "main"
	SessionTypeSatellite        SessionType = "satellite"
	SessionTypeOralPresentation SessionType = "oral_presentation"
	SessionTypeWorkshop         SessionType = "workshop"
	SessionTypePanel            SessionType = "panel"
	SessionTypePoster           SessionType = "poster"
	SessionTypeBreak            SessionType = "break"
	SessionTypeSpecial          SessionType = "special"
)

// Session duration bounds applied to every type unless its policy narrows them.
const (
	MinSessionMinutes = 15
	MaxSessionMinutes = 480
)

// CapacityPolicy limits how much program a single session may carry.
type CapacityPolicy struct {
	MaxPresentations int
	// MinDurationMinutes / MaxDurationMinutes bound the session itself.
	MinDurationMinutes int
	MaxDurationMinutes int
	// PresentationMinMinutes / PresentationMaxMinutes bound each child
	// presentation; zero means unbounded.
	PresentationMinMinutes int
	PresentationMaxMinutes int
	// DurationHeadroomFraction caps the aggregate child presentation time as
	// a share of the session duration, reserving the rest for transitions.
	DurationHeadroomFraction float64
}

// PolicyTable resolves the capacity policy for a session type.
type PolicyTable map[SessionType]CapacityPolicy

// DefaultPolicies returns the stock policy table. Unknown types fall back to
// the policy returned by PolicyTable.For.
func DefaultPolicies() PolicyTable {
	return PolicyTable{
		SessionTypeKeynote:          {MaxPresentations: 1, MinDurationMinutes: 30, MaxDurationMinutes: MaxSessionMinutes, DurationHeadroomFraction: 0.9},
		SessionTypeMain:             {MaxPresentations: 6, MinDurationMinutes: MinSessionMinutes, MaxDurationMinutes: MaxSessionMinutes, DurationHeadroomFraction: 0.9},
		SessionTypeSatellite:        {MaxPresentations: 4, MinDurationMinutes: MinSessionMinutes, MaxDurationMinutes: MaxSessionMinutes, DurationHeadroomFraction: 0.9},
		SessionTypeOralPresentation: {MaxPresentations: 8, MinDurationMinutes: MinSessionMinutes, MaxDurationMinutes: MaxSessionMinutes, PresentationMinMinutes: 15, PresentationMaxMinutes: 45, DurationHeadroomFraction: 0.9},
		SessionTypeWorkshop:         {MaxPresentations: 3, MinDurationMinutes: MinSessionMinutes, MaxDurationMinutes: MaxSessionMinutes, DurationHeadroomFraction: 0.9},
		SessionTypePanel:            {MaxPresentations: 5, MinDurationMinutes: MinSessionMinutes, MaxDurationMinutes: MaxSessionMinutes, DurationHeadroomFraction: 0.9},
		SessionTypeBreak:            {MaxPresentations: 0, MinDurationMinutes: MinSessionMinutes, MaxDurationMinutes: MaxSessionMinutes, DurationHeadroomFraction: 0.9},
	}
}

// For returns the policy registered for the session type, or the permissive
// default (10 presentations, global duration bounds) when none is registered.
func (t PolicyTable) For(sessionType SessionType) CapacityPolicy {
	if policy, ok := t[sessionType]; ok {
		return policy
	}
	return CapacityPolicy{
		MaxPresentations:         10,
		MinDurationMinutes:       MinSessionMinutes,
		MaxDurationMinutes:       MaxSessionMinutes,
		DurationHeadroomFraction: 0.9,
	}
}

// SessionDurationBounds reports whether a session duration satisfies the
// policy, returning a human-readable reason when it does not.
func (p CapacityPolicy) SessionDurationBounds(durationMinutes int) (bool, string) {
	if durationMinutes < p.MinDurationMinutes {
		return false, fmt.Sprintf("session duration %d min is below the %d min minimum", durationMinutes, p.MinDurationMinutes)
	}
	if p.MaxDurationMinutes > 0 && durationMinutes > p.MaxDurationMinutes {
		return false, fmt.Sprintf("session duration %d min exceeds the %d min maximum", durationMinutes, p.MaxDurationMinutes)
	}
	return true, ""
}

// CapacityCheck is the input to Evaluate: the session's current load plus the
// proposed addition. When updating an existing presentation the caller must
// exclude its previous count and duration from the current figures.
type CapacityCheck struct {
	CurrentPresentationCount int
	CurrentAggregateMinutes  int
	SessionDurationMinutes   int
	ProposedDurationMinutes  int
}

// Evaluate applies the policy to a proposed presentation addition and returns
// the violations it would cause. An empty slice means the addition fits.
func (p CapacityPolicy) Evaluate(check CapacityCheck) []Violation {
	var violations []Violation

	if check.CurrentPresentationCount+1 > p.MaxPresentations {
		violations = append(violations, Violation{
			Code:    CodeCapacityExceeded,
			Message: fmt.Sprintf("session allows at most %d presentations", p.MaxPresentations),
		})
	}

	if p.PresentationMinMinutes > 0 && check.ProposedDurationMinutes < p.PresentationMinMinutes {
		violations = append(violations, Violation{
			Code:    CodeCapacityExceeded,
			Message: fmt.Sprintf("presentation duration %d min is below the %d min minimum for this session type", check.ProposedDurationMinutes, p.PresentationMinMinutes),
		})
	}
	if p.PresentationMaxMinutes > 0 && check.ProposedDurationMinutes > p.PresentationMaxMinutes {
		violations = append(violations, Violation{
			Code:    CodeCapacityExceeded,
			Message: fmt.Sprintf("presentation duration %d min exceeds the %d min maximum for this session type", check.ProposedDurationMinutes, p.PresentationMaxMinutes),
		})
	}

	budget := p.durationBudget(check.SessionDurationMinutes)
	if check.CurrentAggregateMinutes+check.ProposedDurationMinutes > budget {
		violations = append(violations, Violation{
			Code: CodeDurationBudgetExceeded,
			Message: fmt.Sprintf("aggregate presentation time %d min exceeds the %d min budget (%.0f%% of %d min)",
				check.CurrentAggregateMinutes+check.ProposedDurationMinutes, budget, p.DurationHeadroomFraction*100, check.SessionDurationMinutes),
		})
	}

	return violations
}

// DurationBudgetMinutes exposes the aggregate presentation budget for a
// session of the given duration.
func (p CapacityPolicy) DurationBudgetMinutes(sessionDurationMinutes int) int {
	return p.durationBudget(sessionDurationMinutes)
}

func (p CapacityPolicy) durationBudget(sessionDurationMinutes int) int {
	fraction := p.DurationHeadroomFraction
	if fraction <= 0 || fraction > 1 {
		fraction = 0.9
	}
	return int(fraction * float64(sessionDurationMinutes))
}
