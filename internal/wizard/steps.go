// Package wizard sequences the product form steps and gates transitions on
// per-step validation.
package wizard

import "fmt"

// Step identifies one page of the product form.
type Step string

const (
	StepBasic       Step = "basic"
	StepPricing     Step = "pricing"
	StepDescription Step = "description"
	StepVariants    Step = "variants"
	StepMedia       Step = "media"
	StepSettings    Step = "settings"
)

var stepOrder = []Step{
	StepBasic,
	StepPricing,
	StepDescription,
	StepVariants,
	StepMedia,
	StepSettings,
}

var stepLabels = map[Step]string{
	StepBasic:       "Basic Info",
	StepPricing:     "Pricing",
	StepDescription: "Description",
	StepVariants:    "Variants",
	StepMedia:       "Media",
	StepSettings:    "Settings",
}

// Steps returns the fixed step order.
func Steps() []Step {
	return append([]Step{}, stepOrder...)
}

// String implements fmt.Stringer.
func (s Step) String() string {
	return string(s)
}

// Label returns the human-readable section name.
func (s Step) Label() string {
	if label, ok := stepLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsValid reports whether the value is a known Step.
func (s Step) IsValid() bool {
	return indexOf(s) >= 0
}

// ParseStep converts raw input into a Step.
func ParseStep(value string) (Step, error) {
	for _, candidate := range stepOrder {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid step %q", value)
}

func indexOf(step Step) int {
	for i, candidate := range stepOrder {
		if candidate == step {
			return i
		}
	}
	return -1
}
