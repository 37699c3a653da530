package normalization

import "testing"

func TestAsInt(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  int
		ok    bool
	}{
		{name: "json number", input: float64(12), want: 12, ok: true},
		{name: "int", input: 7, want: 7, ok: true},
		{name: "numeric string", input: " 42 ", want: 42, ok: true},
		{name: "junk string", input: "many", ok: false},
		{name: "nil", input: nil, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AsInt(tc.input)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("expected %d/%v, got %d/%v", tc.want, tc.ok, got, ok)
			}
		})
	}
}

func TestAsBool(t *testing.T) {
	if v, ok := AsBool("true"); !ok || !v {
		t.Fatal("expected string true")
	}
	if _, ok := AsBool(1); ok {
		t.Fatal("expected numbers to be rejected")
	}
}

func TestMapFromPayloadUnwrapsData(t *testing.T) {
	payload := map[string]any{"data": map[string]any{"pantryId": " p1 "}}
	got := MapFromPayload(payload)
	if FirstString(got, "missing", "pantryId") != "p1" {
		t.Fatalf("unexpected payload %v", got)
	}
	if MapFromPayload("text") != nil {
		t.Fatal("expected nil for non-map payloads")
	}
}

func TestNormalizeEntity(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Inventory_Items": "inventory",
		" stock ":         "inventory",
		"food-pantries":   "pantry",
		"Schedule":        "hours",
		"notices":         "announcement",
		"default":         "",
		"warehouse_scan":  "warehouse-scan",
	}
	for raw, want := range cases {
		if got := NormalizeEntity(raw); got != want {
			t.Fatalf("NormalizeEntity(%q) = %q, want %q", raw, got, want)
		}
	}
	if !IsKnownEntity("items") || IsKnownEntity("warehouse") || IsKnownEntity("") {
		t.Fatal("unexpected IsKnownEntity result")
	}
}
