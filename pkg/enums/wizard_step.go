package enums

import "fmt"

// WizardStep names one position in the inspection form wizard. Steps are
// ordered; navigation clamps to the [FactorySelection, Photos] range.
type WizardStep string

const (
	WizardStepFactorySelection WizardStep = "factory_selection"
	WizardStepBasicInfo        WizardStep = "basic_info"
	WizardStepDocuments        WizardStep = "documents"
	WizardStepCategory         WizardStep = "category"
	WizardStepPhotos           WizardStep = "photos"
)

var orderedWizardSteps = []WizardStep{
	WizardStepFactorySelection,
	WizardStepBasicInfo,
	WizardStepDocuments,
	WizardStepCategory,
	WizardStepPhotos,
}

// WizardSteps returns all steps in wizard order.
func WizardSteps() []WizardStep {
	steps := make([]WizardStep, len(orderedWizardSteps))
	copy(steps, orderedWizardSteps)
	return steps
}

// String returns the literal string for the step.
func (s WizardStep) String() string {
	return string(s)
}

// IsValid reports whether the step is known.
func (s WizardStep) IsValid() bool {
	for _, candidate := range orderedWizardSteps {
		if candidate == s {
			return true
		}
	}
	return false
}

// Ordinal returns the step's position, 0 through 4. Unknown steps report -1.
func (s WizardStep) Ordinal() int {
	for i, candidate := range orderedWizardSteps {
		if candidate == s {
			return i
		}
	}
	return -1
}

// WizardStepAt returns the step at the given ordinal, clamped to the wizard
// bounds.
func WizardStepAt(ordinal int) WizardStep {
	if ordinal < 0 {
		return orderedWizardSteps[0]
	}
	if ordinal >= len(orderedWizardSteps) {
		return orderedWizardSteps[len(orderedWizardSteps)-1]
	}
	return orderedWizardSteps[ordinal]
}

// ParseWizardStep converts raw input into a WizardStep.
func ParseWizardStep(value string) (WizardStep, error) {
	for _, candidate := range orderedWizardSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wizard step %q", value)
}
