package layout

import (
	"strings"

	"golang.org/x/text/language"
)

// rtlBases are the language families rendered right-to-left by default.
var rtlBases = map[string]bool{
	"he":  true, // Hebrew
	"ar":  true, // Arabic
	"yi":  true, // Yiddish
	"fa":  true, // Persian
	"ur":  true, // Urdu
	"iw":  true, // legacy Hebrew tag
	"arc": true, // Aramaic
}

// ResolveRTL decides the document base direction. An explicit base direction
// ("L" or "R") wins; otherwise the language tag is consulted; with neither,
// left-to-right is assumed.
func ResolveRTL(baseDir, lang string) bool {
	switch baseDir {
	case "R":
		return true
	case "L":
		return false
	}
	return LanguageRTL(lang)
}

// LanguageRTL reports whether the given BCP 47 language tag names a
// right-to-left script language.
func LanguageRTL(lang string) bool {
	if lang == "" {
		return false
	}
	tag, err := language.Parse(lang)
	if err == nil {
		if base, conf := tag.Base(); conf > language.No {
			return rtlBases[base.String()]
		}
	}
	// Fall back to a prefix check for tags the matcher cannot place.
	lower := strings.ToLower(lang)
	for base := range rtlBases {
		if strings.HasPrefix(lower, base) {
			return true
		}
	}
	return false
}

// BaseDirLabel converts an "L"/"R" base direction to the annotation format's
// "ltr"/"rtl" vocabulary, resolving from the language when unset. Returns the
// empty string when no direction can be resolved.
func BaseDirLabel(baseDir, lang string) string {
	switch baseDir {
	case "L":
		return "ltr"
	case "R":
		return "rtl"
	}
	if LanguageRTL(lang) {
		return "rtl"
	}
	return ""
}
