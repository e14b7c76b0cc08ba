// Package validation holds the platform rules shared by the schema builder
// and the definition loader: name charset and length, description length,
// option/choice limits and supported locales.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
)

const (
	MaxNameLength        = 32
	MaxDescriptionLength = 100
	MaxOptions           = 25
	MaxChoices           = 25
	MaxChoiceNameLength  = 100
	MaxChoiceValueLength = 100
	MaxStringLength      = 6000
	MaxCommandDepth      = 2
)

var namePattern = regexp.MustCompile(`^[-_\p{L}\p{N}\p{Devanagari}\p{Thai}]{1,32}$`)

// Name validates a command, subcommand or option name.
func Name(name string) error {
	n := utf8.RuneCountInString(name)
	switch {
	case n == 0:
		return fmt.Errorf("name is empty")
	case n > MaxNameLength:
		return fmt.Errorf("name %q is %d characters, limit is %d", name, n, MaxNameLength)
	case !namePattern.MatchString(name):
		return fmt.Errorf("name %q contains characters outside [-_, letters, digits]", name)
	case strings.ToLower(name) != name:
		return fmt.Errorf("name %q must be lowercase", name)
	}
	return nil
}

// Description validates a command or option description.
func Description(desc string) error {
	return boundedText("description", desc, MaxDescriptionLength)
}

// ChoiceName validates the display name of a choice.
func ChoiceName(name string) error {
	return boundedText("choice name", name, MaxChoiceNameLength)
}

// ChoiceStringValue validates the literal of a string choice.
func ChoiceStringValue(v string) error {
	if n := utf8.RuneCountInString(v); n > MaxChoiceValueLength {
		return fmt.Errorf("choice value is %d characters, limit is %d", n, MaxChoiceValueLength)
	}
	return nil
}

func boundedText(what, s string, limit int) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%s is empty", what)
	}
	if n := utf8.RuneCountInString(s); n > limit {
		return fmt.Errorf("%s is %d characters, limit is %d", what, n, limit)
	}
	return nil
}

// supportedLocales lists the locales the platform accepts as localization
// keys, in canonical BCP 47 form.
var supportedLocales = map[string]struct{}{
	"id": {}, "da": {}, "de": {}, "en-GB": {}, "en-US": {}, "es-ES": {},
	"es-419": {}, "fr": {}, "hr": {}, "it": {}, "lt": {}, "hu": {},
	"nl": {}, "no": {}, "pl": {}, "pt-BR": {}, "ro": {}, "fi": {},
	"sv-SE": {}, "vi": {}, "tr": {}, "cs": {}, "el": {}, "bg": {},
	"ru": {}, "uk": {}, "hi": {}, "th": {}, "zh-CN": {}, "ja": {},
	"zh-TW": {}, "ko": {},
}

// Locale parses a localization key and returns its canonical spelling.
// Keys must be well-formed BCP 47 tags and one of the supported locales.
func Locale(key string) (string, error) {
	tag, err := language.Raw.Parse(key)
	if err != nil {
		return "", fmt.Errorf("locale %q is not a valid language tag: %w", key, err)
	}
	canonical := tag.String()
	if _, ok := supportedLocales[canonical]; !ok {
		return "", fmt.Errorf("locale %q is not supported", key)
	}
	return canonical, nil
}
