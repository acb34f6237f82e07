package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// DocumentChecklist tracks which of the four requested documents the factory
// produced during the visit.
type DocumentChecklist struct {
	MasterIngredientList bool `json:"masterIngredientList"`
	Blueprint            bool `json:"blueprint"`
	Flowchart            bool `json:"flowchart"`
	BoilerBlueprint      bool `json:"boilerBlueprint"`
}

// Value implements driver.Valuer, storing the checklist as JSON.
func (c DocumentChecklist) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner.
func (c *DocumentChecklist) Scan(src any) error {
	return scanJSON(src, c, "DocumentChecklist")
}

// DocumentFiles maps a checklist key to the uploaded file references collected
// for it.
type DocumentFiles map[string][]string

// Value implements driver.Valuer.
func (f DocumentFiles) Value() (driver.Value, error) {
	if f == nil {
		return json.Marshal(DocumentFiles{})
	}
	return json.Marshal(f)
}

// Scan implements sql.Scanner.
func (f *DocumentFiles) Scan(src any) error {
	return scanJSON(src, f, "DocumentFiles")
}

// StringList is a JSON-encoded string array column, used for photo and
// attachment references so sqlite and postgres round-trip identically.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(StringList{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l, "StringList")
}

func scanJSON(src, dest any, typeName string) error {
	if src == nil {
		return nil
	}
	switch raw := src.(type) {
	case []byte:
		return json.Unmarshal(raw, dest)
	case string:
		return json.Unmarshal([]byte(raw), dest)
	default:
		return fmt.Errorf("unsupported %s column type %T", typeName, src)
	}
}
