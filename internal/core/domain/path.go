package domain

import (
	"fmt"
	"strings"
)

// Path attributes an error to a section or to a module inside a section.
// Its text form is "section" or "section.module".
type Path struct {
	Section SectionKey
	Module  ModuleKey // empty for section-level errors
}

// SectionPath returns the path of a whole-section failure.
func SectionPath(section SectionKey) Path {
	return Path{Section: section}
}

// ModulePath returns the path of a single module failure.
func ModulePath(section SectionKey, module ModuleKey) Path {
	return Path{Section: section, Module: module}
}

func (p Path) String() string {
	if p.Module == "" {
		return string(p.Section)
	}
	return string(p.Section) + "." + string(p.Module)
}

// IsSection reports whether p is a whole-section path.
func (p Path) IsSection() bool {
	return p.Module == ""
}

// BelongsTo reports whether p is the section's own key or one of its modules,
// i.e. an exact match on "section" or a "section." prefix match.
func (p Path) BelongsTo(section SectionKey) bool {
	return p.Section == section
}

// MarshalText encodes the path in its dotted form.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a dotted path. Unknown section names are kept as-is so
// stale cache entries and foreign payloads still round-trip.
func (p *Path) UnmarshalText(text []byte) error {
	s := string(text)
	if s == "" {
		return fmt.Errorf("path: empty")
	}
	section, module, _ := strings.Cut(s, ".")
	p.Section = SectionKey(section)
	p.Module = ModuleKey(module)
	return nil
}
