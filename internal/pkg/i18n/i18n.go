// Package i18n holds the user-facing message catalog.
//
// Messages are registered with golang.org/x/text/message per locale in the
// messages_*.go files. Traditional Chinese (Taiwan) is the default locale since
// the upstream serves the TW region.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys.
const (
	CharacterNotFoundKey = "character.not_found"
	MissingNameKey       = "request.missing_character_name"
	UnknownSectionKey    = "request.unknown_section"
	ModuleSectionKey     = "request.module_requires_skills"
	UnknownModuleKey     = "request.unknown_module"
	FetchFailedKey       = "request.fetch_failed"
)

// DefaultLanguage is used when no preference matches.
var DefaultLanguage = language.MustParse("zh-TW")

var supported = []language.Tag{
	DefaultLanguage,
	language.English,
}

var matcher = language.NewMatcher(supported)

// Parse returns the supported tag closest to s, falling back to DefaultLanguage.
func Parse(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLanguage
	}
	_, idx, _ := matcher.Match(tag)
	return supported[idx]
}

// Match picks the supported tag for an Accept-Language header value.
// An empty or unparsable header yields fallback.
func Match(acceptLanguage string, fallback language.Tag) language.Tag {
	if acceptLanguage == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return supported[idx]
}

// Sprintf formats the message registered under key for tag.
func Sprintf(tag language.Tag, key string, args ...any) string {
	return message.NewPrinter(tag).Sprintf(key, args...)
}
