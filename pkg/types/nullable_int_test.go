package types

import (
	"encoding/json"
	"testing"
)

func TestNullableIntUnmarshal(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantValid bool
		wantValue *int
		wantErr   bool
	}{
		{name: "number", body: `{"n":120}`, wantValid: true, wantValue: intPtr(120)},
		{name: "numeric string", body: `{"n":"45"}`, wantValid: true, wantValue: intPtr(45)},
		{name: "padded numeric string", body: `{"n":" 7 "}`, wantValid: true, wantValue: intPtr(7)},
		{name: "empty string", body: `{"n":""}`, wantValid: true},
		{name: "null", body: `{"n":null}`, wantValid: true},
		{name: "absent", body: `{}`},
		{name: "garbage string", body: `{"n":"lots"}`, wantErr: true},
		{name: "float", body: `{"n":1.5}`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var payload struct {
				N NullableInt `json:"n"`
			}
			err := json.Unmarshal([]byte(tc.body), &payload)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected unmarshal error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if payload.N.Valid != tc.wantValid {
				t.Fatalf("valid = %v, want %v", payload.N.Valid, tc.wantValid)
			}
			if tc.wantValue == nil {
				if payload.N.Value != nil {
					t.Fatalf("value = %d, want nil", *payload.N.Value)
				}
				return
			}
			if payload.N.Value == nil || *payload.N.Value != *tc.wantValue {
				t.Fatalf("value = %v, want %d", payload.N.Value, *tc.wantValue)
			}
		})
	}
}

func TestNullableIntPtrCopies(t *testing.T) {
	value := 9
	n := NullableInt{Valid: true, Value: &value}

	ptr := n.Ptr()
	if ptr == nil || *ptr != 9 {
		t.Fatalf("unexpected ptr %v", ptr)
	}
	*ptr = 10
	if *n.Value != 9 {
		t.Fatal("Ptr must not alias the stored value")
	}

	if (NullableInt{Valid: true}).Ptr() != nil {
		t.Fatal("explicit null must yield nil pointer")
	}
	if (NullableInt{}).Ptr() != nil {
		t.Fatal("absent field must yield nil pointer")
	}
}

func TestNullableIntMarshal(t *testing.T) {
	out, err := json.Marshal(NullableInt{Valid: true, Value: intPtr(3)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "3" {
		t.Fatalf("unexpected output %s", out)
	}

	out, err = json.Marshal(NullableInt{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != "null" {
		t.Fatalf("unexpected output %s", out)
	}
}

func intPtr(v int) *int { return &v }
