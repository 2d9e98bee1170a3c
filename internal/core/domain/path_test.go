package domain

import (
	"encoding/json"
	"testing"
)

func TestPath_BelongsTo(t *testing.T) {
	tests := []struct {
		path    string
		section SectionKey
		want    bool
	}{
		{"equipment", SectionEquipment, true},
		{"equipment.gear", SectionEquipment, true},
		{"equipmentX", SectionEquipment, false},
		{"equipmentX.gear", SectionEquipment, false},
		{"skills.vmatrix", SectionEquipment, false},
	}
	for _, tc := range tests {
		var p Path
		if err := p.UnmarshalText([]byte(tc.path)); err != nil {
			t.Fatalf("unmarshal %q: %v", tc.path, err)
		}
		if got := p.BelongsTo(tc.section); got != tc.want {
			t.Errorf("%q.BelongsTo(%s): expected %v, got %v", tc.path, tc.section, tc.want, got)
		}
	}
}

func TestPath_JSONUsesDottedForm(t *testing.T) {
	errs := []SectionError{
		{Path: SectionPath(SectionUnion), Message: "down"},
		{Path: ModulePath(SectionSkills, ModuleHexaMatrixStat), Message: "boom"},
	}
	raw, err := json.Marshal(errs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"path":"union","message":"down"},{"path":"skills.hexamatrixStat","message":"boom"}]`
	if string(raw) != want {
		t.Fatalf("expected %s, got %s", want, raw)
	}

	var back []SectionError
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back[1].Path != errs[1].Path || !back[0].Path.IsSection() {
		t.Fatalf("unexpected decoded paths %+v", back)
	}
}

func TestPath_UnmarshalEmpty(t *testing.T) {
	var p Path
	if err := p.UnmarshalText(nil); err == nil {
		t.Fatal("expected error for empty path")
	}
}
