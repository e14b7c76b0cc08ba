package command

import "testing"

func TestLocalizationsMerge(t *testing.T) {
	base := Localize("Default text", map[string]string{"fr": "Texte", "de": "Text"})
	merged := base.Merge(Localize("", map[string]string{"fr": "Texte explicite"}))
	if merged.Fallback != "Default text" || merged.Locales["fr"] != "Texte explicite" || merged.Locales["de"] != "Text" {
		t.Fatalf("unexpected merge %+v", merged)
	}
	if base.Locales["fr"] != "Texte" {
		t.Fatalf("merge mutated its receiver")
	}
	if got := base.Merge(Localizations{Fallback: "Override"}); got.Fallback != "Override" {
		t.Fatalf("override fallback lost: %+v", got)
	}
	if !(Localizations{}).IsZero() || base.IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}
