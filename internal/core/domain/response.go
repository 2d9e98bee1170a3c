package domain

import (
	"encoding/json"
	"maps"
	"slices"
	"time"
)

// SectionError is one scoped failure inside a composite response.
type SectionError struct {
	Path    Path   `json:"path"`
	Message string `json:"message"`
}

// SectionResult is what a section aggregator settles with: an opaque payload
// (nil when the section has no data) and the errors of its sub-modules.
type SectionResult struct {
	Payload json.RawMessage
	Errors  []SectionError
}

// CompositeResponse is the merged result of one character query.
//
// Sections holds only requested keys; a missing key means "not requested" or
// "legitimately empty", never an error. Errors is a set keyed by path, its order
// carries no meaning.
type CompositeResponse struct {
	CharacterName string                         `json:"characterName"`
	OpaqueID      string                         `json:"ocid"`
	RequestedDate string                         `json:"requestedDate,omitempty"`
	FetchedAt     time.Time                      `json:"fetchedAt"`
	Sections      map[SectionKey]json.RawMessage `json:"sections"`
	Errors        []SectionError                 `json:"errors"`
	Cached        bool                           `json:"cached"`
}

// Clone returns a copy that can be mutated without touching r. Payload bytes are
// shared; they are never written after assembly.
func (r *CompositeResponse) Clone() *CompositeResponse {
	if r == nil {
		return nil
	}
	out := *r
	out.Sections = maps.Clone(r.Sections)
	if out.Sections == nil {
		out.Sections = map[SectionKey]json.RawMessage{}
	}
	out.Errors = slices.Clone(r.Errors)
	if out.Errors == nil {
		out.Errors = []SectionError{}
	}
	return &out
}

// ErrorsFor returns the errors that belong to section.
func (r *CompositeResponse) ErrorsFor(section SectionKey) []SectionError {
	var out []SectionError
	for _, e := range r.Errors {
		if e.Path.BelongsTo(section) {
			out = append(out, e)
		}
	}
	return out
}

// Merge folds a narrowed refetch into r.
//
// With a section scope the section's payload is replaced (or removed) and every
// error belonging to the section is swapped for the update's. With a module
// scope only that module's key inside the section object is replaced, and only
// the module's errors plus the bare section error are swapped. Other sections
// are left untouched.
func (r *CompositeResponse) Merge(update *CompositeResponse, scope Path) error {
	if update == nil {
		return nil
	}
	if r.Sections == nil {
		r.Sections = map[SectionKey]json.RawMessage{}
	}
	if r.OpaqueID == "" {
		r.OpaqueID = update.OpaqueID
	}
	r.FetchedAt = update.FetchedAt

	if scope.IsSection() {
		if payload, ok := update.Sections[scope.Section]; ok {
			r.Sections[scope.Section] = payload
		} else {
			delete(r.Sections, scope.Section)
		}
		r.Errors = slices.DeleteFunc(r.Errors, func(e SectionError) bool {
			return e.Path.BelongsTo(scope.Section)
		})
		r.Errors = append(r.Errors, update.ErrorsFor(scope.Section)...)
		return nil
	}

	merged, err := mergeModule(r.Sections[scope.Section], update.Sections[scope.Section], scope.Module)
	if err != nil {
		return err
	}
	r.Sections[scope.Section] = merged

	r.Errors = slices.DeleteFunc(r.Errors, func(e SectionError) bool {
		return e.Path == scope || e.Path == SectionPath(scope.Section)
	})
	for _, e := range update.Errors {
		if e.Path == scope || e.Path == SectionPath(scope.Section) {
			r.Errors = append(r.Errors, e)
		}
	}
	return nil
}

func mergeModule(current, update json.RawMessage, module ModuleKey) (json.RawMessage, error) {
	base := map[string]json.RawMessage{}
	if len(current) > 0 {
		if err := json.Unmarshal(current, &base); err != nil {
			return nil, err
		}
	}
	fresh := map[string]json.RawMessage{}
	if len(update) > 0 {
		if err := json.Unmarshal(update, &fresh); err != nil {
			return nil, err
		}
	}

	if v, ok := fresh[string(module)]; ok {
		base[string(module)] = v
	} else {
		delete(base, string(module))
	}
	return json.Marshal(base)
}
