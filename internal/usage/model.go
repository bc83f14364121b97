package usage

// Plan names reported in Usage.
const (
	PlanGuest   = "guest"
	PlanFree    = "free"
	PlanPremium = "premium"
)

// Unlimited is the Limit reported for premium accounts.
const Unlimited = -1

// Usage represents a user's plan and consumption snapshot.
type Usage struct {
	Plan            string `json:"plan"`
	Limit           int    `json:"limit"`
	Used            int    `json:"used"`
	Remaining       int    `json:"remaining"`
	CanExport       bool   `json:"canExport"`
	CanSaveCriteria bool   `json:"canSaveCriteria"`
}

// CanSave reports whether one more prompt may be saved.
func (u Usage) CanSave() bool {
	if u.Plan == PlanGuest {
		return false
	}
	return u.Limit == Unlimited || u.Used < u.Limit
}
