package enums

import "fmt"

// DocumentKey identifies one of the four documents requested during a visit.
type DocumentKey string

const (
	DocumentKeyMasterIngredientList DocumentKey = "masterIngredientList"
	DocumentKeyBlueprint            DocumentKey = "blueprint"
	DocumentKeyFlowchart            DocumentKey = "flowchart"
	DocumentKeyBoilerBlueprint      DocumentKey = "boilerBlueprint"
)

var validDocumentKeys = []DocumentKey{
	DocumentKeyMasterIngredientList,
	DocumentKeyBlueprint,
	DocumentKeyFlowchart,
	DocumentKeyBoilerBlueprint,
}

// DocumentKeys returns the checklist keys in canonical render order.
func DocumentKeys() []DocumentKey {
	keys := make([]DocumentKey, len(validDocumentKeys))
	copy(keys, validDocumentKeys)
	return keys
}

// String returns the literal string for the key.
func (k DocumentKey) String() string {
	return string(k)
}

// IsValid reports whether the key is known.
func (k DocumentKey) IsValid() bool {
	for _, candidate := range validDocumentKeys {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseDocumentKey converts raw input into a DocumentKey.
func ParseDocumentKey(value string) (DocumentKey, error) {
	for _, candidate := range validDocumentKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid document key %q", value)
}
