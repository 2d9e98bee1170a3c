package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.English

	message.SetString(lang, CharacterNotFoundKey, "Character %q was not found. Check that the name is spelled exactly as in game.")
	message.SetString(lang, MissingNameKey, "Missing characterName query parameter.")
	message.SetString(lang, UnknownSectionKey, "Unknown section %q.")
	message.SetString(lang, ModuleSectionKey, "skillModule is only valid with section=skills.")
	message.SetString(lang, UnknownModuleKey, "Unknown skill module %q.")
	message.SetString(lang, FetchFailedKey, "Failed to fetch character data.")
}
