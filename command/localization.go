package command

import (
	"maps"
	"sort"
	"strings"

	"github.com/ggoodman/slashcmd-go/internal/validation"
)

// Localizations is a fallback text plus per-locale overrides.
type Localizations struct {
	Fallback string
	Locales  map[string]string
}

// Localize builds Localizations from a fallback and a locale map.
func Localize(fallback string, locales map[string]string) Localizations {
	return Localizations{Fallback: fallback, Locales: maps.Clone(locales)}
}

// IsZero reports whether no text has been set.
func (l Localizations) IsZero() bool { return l.Fallback == "" && len(l.Locales) == 0 }

// Merge layers override on top of l. A non-empty override fallback replaces
// l's, and override locales replace l's entries key by key.
func (l Localizations) Merge(override Localizations) Localizations {
	out := Localizations{Fallback: l.Fallback}
	if override.Fallback != "" {
		out.Fallback = override.Fallback
	}
	if len(l.Locales)+len(override.Locales) > 0 {
		out.Locales = make(map[string]string, len(l.Locales)+len(override.Locales))
		maps.Copy(out.Locales, l.Locales)
		maps.Copy(out.Locales, override.Locales)
	}
	return out
}

func (l Localizations) clone() Localizations {
	return Localizations{Fallback: l.Fallback, Locales: maps.Clone(l.Locales)}
}

// checkLocales canonicalizes locale keys and checks each value with check.
// Keys are visited in sorted order so problem lists are stable.
func checkLocales(locales map[string]string, check func(string) error, report func(attr, msg string), attr string) map[string]string {
	if len(locales) == 0 {
		return nil
	}
	keys := make([]string, 0, len(locales))
	for k := range locales {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(map[string]string, len(locales))
	for _, k := range keys {
		tag, err := validation.Locale(k)
		if err != nil {
			report(attr, err.Error())
			continue
		}
		if _, dup := out[tag]; dup {
			report(attr, "locale "+tag+" given more than once")
			continue
		}
		v := locales[k]
		if err := check(v); err != nil {
			report(attr, "locale "+tag+": "+err.Error())
			continue
		}
		out[tag] = v
	}
	return out
}

func checkHelp(help string, report func(attr, msg string)) {
	if help != "" && strings.TrimSpace(help) == "" {
		report("help", "must not be blank")
	}
}
