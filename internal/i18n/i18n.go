package i18n

import (
	"golang.org/x/text/language"
)

// Supported lists the languages the app ships content for. English is the
// fallback and must stay first: the matcher prefers earlier entries on ties.
var Supported = []language.Tag{
	language.English,
	language.Hindi,
	language.Tamil,
	language.Telugu,
	language.Bengali,
}

var matcher = language.NewMatcher(Supported)

// Match resolves a user-supplied language preference (a BCP-47 tag or an
// Accept-Language header value) to a supported tag, falling back to English
// for anything unrecognized.
func Match(preferred string) language.Tag {
	if preferred == "" {
		return language.English
	}
	tags, _, err := language.ParseAcceptLanguage(preferred)
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := matcher.Match(tags...)
	return Supported[idx]
}

// DisplayNames maps supported tags to their native display names, used by
// the language selector.
var DisplayNames = map[language.Tag]string{
	language.English: "English",
	language.Hindi:   "हिन्दी",
	language.Tamil:   "தமிழ்",
	language.Telugu:  "తెలుగు",
	language.Bengali: "বাংলা",
}
