package holiday

import (
	"strings"
	"time"

	"github.com/kilianp07/smartbin/core/model"
)

// UnmatchedFactor applies to holidays that match no tier.
const UnmatchedFactor = 0.25

// Tier groups holiday keywords sharing a severity factor.
type Tier struct {
	Name     string
	Keywords []string
	Factor   float64
}

// DefaultTiers returns the tiers in priority order. Major festivals are
// checked before national holidays so a name matching both gets 0.7.
func DefaultTiers() []Tier {
	return []Tier{
		{Name: "major_festival", Factor: 0.7, Keywords: []string{
			"Diwali", "Deepavali", "Holi", "Eid", "Bakrid", "Christmas",
		}},
		{Name: "national", Factor: 0.3, Keywords: []string{
			"Republic Day", "Independence Day", "Gandhi Jayanti",
		}},
		{Name: "moderate_festival", Factor: 0.5, Keywords: []string{
			"Dussehra", "Vijayadashami", "Navratri", "Janmashtami", "Raksha Bandhan",
			"Ganesh Chaturthi", "Durga Puja", "Onam", "Pongal", "Baisakhi",
		}},
		{Name: "minor_religious", Factor: 0.2, Keywords: []string{
			"Mahavir", "Buddha", "Muharram", "Shivaratri", "Ram Navami", "Makar Sankranti",
		}},
	}
}

// Resolver turns a date into a HolidayFactor.
type Resolver struct {
	cal   Calendar
	tiers []Tier
}

// NewResolver returns a Resolver using the given calendar and tiers.
// A nil tier list selects DefaultTiers.
func NewResolver(cal Calendar, tiers []Tier) *Resolver {
	if tiers == nil {
		tiers = DefaultTiers()
	}
	return &Resolver{cal: cal, tiers: tiers}
}

// Resolve returns the holiday factor for the civil date of t.
func (r *Resolver) Resolve(t time.Time) model.HolidayFactor {
	if r == nil || r.cal == nil {
		return model.NoHoliday
	}
	raw, ok := r.cal.Lookup(t)
	if !ok {
		return model.NoHoliday
	}
	name := CleanName(raw)
	factor, _ := r.Classify(name)
	return model.HolidayFactor{Factor: factor, IsHoliday: true, Name: &name}
}

// Classify returns the factor and tier name for a cleaned holiday name.
// The tier name is empty when no keyword matched.
func (r *Resolver) Classify(name string) (float64, string) {
	lower := strings.ToLower(name)
	for _, tier := range r.tiers {
		for _, kw := range tier.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return tier.Factor, tier.Name
			}
		}
	}
	return UnmatchedFactor, ""
}

// CleanName keeps the first label of a comma-separated holiday name.
func CleanName(raw string) string {
	if i := strings.Index(raw, ","); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}
