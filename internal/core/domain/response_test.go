package domain

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func paths(errs []SectionError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Path.String())
	}
	return out
}

func TestCompositeResponse_Clone(t *testing.T) {
	r := &CompositeResponse{
		Sections: map[SectionKey]json.RawMessage{SectionUnion: json.RawMessage(`{}`)},
		Errors:   []SectionError{{Path: SectionPath(SectionBasic)}},
	}
	c := r.Clone()
	c.Cached = true
	c.Sections[SectionStat] = json.RawMessage(`{}`)
	c.Errors[0].Message = "changed"

	if r.Cached || len(r.Sections) != 1 || r.Errors[0].Message != "" {
		t.Fatalf("clone mutated the original: %+v", r)
	}

	empty := (&CompositeResponse{}).Clone()
	if empty.Sections == nil || empty.Errors == nil {
		t.Fatal("clone must normalize nil collections")
	}
}

func TestCompositeResponse_MergeSection(t *testing.T) {
	r := &CompositeResponse{
		Sections: map[SectionKey]json.RawMessage{
			SectionEquipment: json.RawMessage(`{"symbols":[]}`),
			SectionUnion:     json.RawMessage(`{"union_level":1}`),
		},
		Errors: []SectionError{
			{Path: ModulePath(SectionEquipment, ModuleGear), Message: "old"},
			{Path: SectionPath(SectionStat), Message: "keep"},
		},
	}
	fetchedAt := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	update := &CompositeResponse{
		FetchedAt: fetchedAt,
		Sections:  map[SectionKey]json.RawMessage{SectionEquipment: json.RawMessage(`{"gear":{}}`)},
		Errors:    []SectionError{{Path: ModulePath(SectionEquipment, ModulePets), Message: "new"}},
	}

	if err := r.Merge(update, SectionPath(SectionEquipment)); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if string(r.Sections[SectionEquipment]) != `{"gear":{}}` {
		t.Errorf("section payload not replaced: %s", r.Sections[SectionEquipment])
	}
	if string(r.Sections[SectionUnion]) != `{"union_level":1}` {
		t.Error("other sections must be untouched")
	}
	if got := paths(r.Errors); !reflect.DeepEqual(got, []string{"stat", "equipment.pets"}) {
		t.Errorf("unexpected errors %v", got)
	}
	if !r.FetchedAt.Equal(fetchedAt) {
		t.Error("FetchedAt must follow the update")
	}
}

func TestCompositeResponse_MergeSectionRemovesMissingPayload(t *testing.T) {
	r := &CompositeResponse{
		Sections: map[SectionKey]json.RawMessage{SectionUnion: json.RawMessage(`{}`)},
	}
	update := &CompositeResponse{
		Sections: map[SectionKey]json.RawMessage{},
		Errors:   []SectionError{{Path: SectionPath(SectionUnion), Message: "down"}},
	}
	if err := r.Merge(update, SectionPath(SectionUnion)); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if _, ok := r.Sections[SectionUnion]; ok {
		t.Error("section must be removed when the update has no payload")
	}
	if got := paths(r.Errors); !reflect.DeepEqual(got, []string{"union"}) {
		t.Errorf("unexpected errors %v", got)
	}
}

func TestCompositeResponse_MergeModule(t *testing.T) {
	r := &CompositeResponse{
		Sections: map[SectionKey]json.RawMessage{
			SectionSkills: json.RawMessage(`{"linkSkills":[1],"vmatrix":[2]}`),
		},
		Errors: []SectionError{
			{Path: ModulePath(SectionSkills, ModuleVMatrix), Message: "old"},
			{Path: ModulePath(SectionSkills, ModuleHexaMatrix), Message: "keep"},
			{Path: SectionPath(SectionSkills), Message: "stale"},
		},
	}
	update := &CompositeResponse{
		Sections: map[SectionKey]json.RawMessage{SectionSkills: json.RawMessage(`{"vmatrix":[3]}`)},
	}

	if err := r.Merge(update, ModulePath(SectionSkills, ModuleVMatrix)); err != nil {
		t.Fatalf("merge: %v", err)
	}

	var got map[string]json.RawMessage
	if err := json.Unmarshal(r.Sections[SectionSkills], &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(got["vmatrix"]) != "[3]" || string(got["linkSkills"]) != "[1]" {
		t.Errorf("unexpected merged skills %v", got)
	}
	if p := paths(r.Errors); !reflect.DeepEqual(p, []string{"skills.hexamatrix"}) {
		t.Errorf("unexpected errors %v", p)
	}
}

func TestCompositeResponse_ErrorsFor(t *testing.T) {
	r := &CompositeResponse{Errors: []SectionError{
		{Path: SectionPath(SectionUnion)},
		{Path: ModulePath(SectionEquipment, ModuleGear)},
		{Path: SectionPath(SectionEquipment)},
	}}
	if got := paths(r.ErrorsFor(SectionEquipment)); !reflect.DeepEqual(got, []string{"equipment.gear", "equipment"}) {
		t.Fatalf("unexpected errors %v", got)
	}
}
