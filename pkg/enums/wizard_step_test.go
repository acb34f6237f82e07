package enums

import "testing"

func TestWizardStepOrdinalRoundTrip(t *testing.T) {
	for i, step := range WizardSteps() {
		if step.Ordinal() != i {
			t.Fatalf("step %s ordinal = %d, want %d", step, step.Ordinal(), i)
		}
		if WizardStepAt(i) != step {
			t.Fatalf("WizardStepAt(%d) = %s, want %s", i, WizardStepAt(i), step)
		}
	}
	if WizardStep("detour").Ordinal() != -1 {
		t.Fatal("unknown step must report -1")
	}
}

func TestWizardStepAtClamps(t *testing.T) {
	if WizardStepAt(-3) != WizardStepFactorySelection {
		t.Fatalf("negative ordinal clamped to %s", WizardStepAt(-3))
	}
	if WizardStepAt(99) != WizardStepPhotos {
		t.Fatalf("overflow ordinal clamped to %s", WizardStepAt(99))
	}
}

func TestParseWizardStep(t *testing.T) {
	step, err := ParseWizardStep("documents")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if step != WizardStepDocuments {
		t.Fatalf("unexpected step %s", step)
	}

	if _, err := ParseWizardStep("Documents"); err == nil {
		t.Fatal("parse must be case sensitive")
	}
}
