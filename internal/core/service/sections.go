package service

import "github.com/mapledash/character-api/internal/core/domain"

// moduleSpec binds a module to its upstream endpoint. A required module takes
// the whole section down when it fails.
type moduleSpec struct {
	Key      domain.ModuleKey
	Path     string
	Required bool
}

// sectionSpec describes how a section is assembled. A single section has
// exactly one required module whose payload is the section payload itself.
type sectionSpec struct {
	Key     domain.SectionKey
	Modules []moduleSpec
	Single  bool
}

var sectionCatalog = map[domain.SectionKey]sectionSpec{
	domain.SectionBasic: {
		Key: domain.SectionBasic,
		Modules: []moduleSpec{
			{Key: domain.ModuleProfile, Path: "/character/basic", Required: true},
			{Key: domain.ModulePopularity, Path: "/character/popularity"},
			{Key: domain.ModuleDojang, Path: "/character/dojang"},
		},
	},
	domain.SectionStat: {
		Key: domain.SectionStat,
		Modules: []moduleSpec{
			{Key: domain.ModuleOverview, Path: "/character/stat", Required: true},
			{Key: domain.ModuleHyperStat, Path: "/character/hyper-stat"},
			{Key: domain.ModulePropensity, Path: "/character/propensity"},
			{Key: domain.ModuleAbility, Path: "/character/ability"},
		},
	},
	domain.SectionEquipment: {
		Key: domain.SectionEquipment,
		Modules: []moduleSpec{
			{Key: domain.ModuleGear, Path: "/character/item-equipment"},
			{Key: domain.ModuleCash, Path: "/character/cashitem-equipment"},
			{Key: domain.ModuleSymbols, Path: "/character/symbol-equipment"},
			{Key: domain.ModuleSetEffects, Path: "/character/set-effect"},
			{Key: domain.ModuleBeauty, Path: "/character/beauty-equipment"},
			{Key: domain.ModuleAndroid, Path: "/character/android-equipment"},
			{Key: domain.ModulePets, Path: "/character/pet-equipment"},
		},
	},
	domain.SectionSkills: {
		Key: domain.SectionSkills,
		Modules: []moduleSpec{
			{Key: domain.ModuleLinkSkills, Path: "/character/link-skill"},
			{Key: domain.ModuleVMatrix, Path: "/character/vmatrix"},
			{Key: domain.ModuleHexaMatrix, Path: "/character/hexamatrix"},
			{Key: domain.ModuleHexaMatrixStat, Path: "/character/hexamatrix-stat"},
		},
	},
	domain.SectionUnion: {
		Key:    domain.SectionUnion,
		Single: true,
		Modules: []moduleSpec{
			{Path: "/user/union", Required: true},
		},
	},
}

// modules returns the section's module list narrowed to only, in catalog
// order. An empty filter selects every module.
func (s sectionSpec) modules(only []domain.ModuleKey) []moduleSpec {
	if len(only) == 0 {
		return s.Modules
	}
	out := make([]moduleSpec, 0, len(only))
	for _, m := range s.Modules {
		for _, want := range only {
			if m.Key == want {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
