package domain

// SectionKey identifies one of the top-level character data categories.
type SectionKey string

const (
	SectionBasic     SectionKey = "basic"
	SectionStat      SectionKey = "stat"
	SectionEquipment SectionKey = "equipment"
	SectionSkills    SectionKey = "skills"
	SectionUnion     SectionKey = "union"
)

// AllSections lists every section in canonical order. It is the default
// section set when a request does not name one.
var AllSections = []SectionKey{
	SectionBasic,
	SectionStat,
	SectionEquipment,
	SectionSkills,
	SectionUnion,
}

// ModuleKey identifies an independently fetchable sub-category of a section.
type ModuleKey string

const (
	ModuleProfile    ModuleKey = "profile"
	ModulePopularity ModuleKey = "popularity"
	ModuleDojang     ModuleKey = "dojang"

	ModuleOverview   ModuleKey = "overview"
	ModuleHyperStat  ModuleKey = "hyperStat"
	ModulePropensity ModuleKey = "propensity"
	ModuleAbility    ModuleKey = "ability"

	ModuleGear       ModuleKey = "gear"
	ModuleCash       ModuleKey = "cash"
	ModuleSymbols    ModuleKey = "symbols"
	ModuleSetEffects ModuleKey = "setEffects"
	ModuleBeauty     ModuleKey = "beauty"
	ModuleAndroid    ModuleKey = "android"
	ModulePets       ModuleKey = "pets"

	ModuleLinkSkills     ModuleKey = "linkSkills"
	ModuleVMatrix        ModuleKey = "vmatrix"
	ModuleHexaMatrix     ModuleKey = "hexamatrix"
	ModuleHexaMatrixStat ModuleKey = "hexamatrixStat"
)

// SkillModules is the selectable module set of the skills section.
var SkillModules = []ModuleKey{
	ModuleLinkSkills,
	ModuleVMatrix,
	ModuleHexaMatrix,
	ModuleHexaMatrixStat,
}

// ParseSectionKey reports whether s names a known section.
func ParseSectionKey(s string) (SectionKey, bool) {
	for _, k := range AllSections {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// ParseSkillModule reports whether s names a selectable skills module.
func ParseSkillModule(s string) (ModuleKey, bool) {
	for _, m := range SkillModules {
		if string(m) == s {
			return m, true
		}
	}
	return "", false
}
