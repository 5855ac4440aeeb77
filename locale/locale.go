// Package locale resolves long month names for the moment formatter's LM
// token. Names are keyed by BCP 47 language tags and matched with the
// golang.org/x/text matcher, so regional variants ("de-AT", "fr-CA") resolve
// to their base language. Unsupported languages fall back to English.
package locale

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var monthNames = map[language.Tag][12]string{
	language.English:    {"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"},
	language.German:     {"januar", "februar", "märz", "april", "mai", "juni", "juli", "august", "september", "oktober", "november", "dezember"},
	language.French:     {"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
	language.Spanish:    {"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
	language.Italian:    {"gennaio", "febbraio", "marzo", "aprile", "maggio", "giugno", "luglio", "agosto", "settembre", "ottobre", "novembre", "dicembre"},
	language.Dutch:      {"januari", "februari", "maart", "april", "mei", "juni", "juli", "augustus", "september", "oktober", "november", "december"},
	language.Portuguese: {"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"},
}

// matcher order determines fallback priority; English first so it wins when
// nothing matches.
var supported = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
	language.Italian,
	language.Dutch,
	language.Portuguese,
}

var matcher = language.NewMatcher(supported)

// Names renders month names for one resolved language.
type Names struct {
	tag   language.Tag
	title cases.Caser
}

// For returns the Names for the language best matching tag.
func For(tag language.Tag) *Names {
	_, i, _ := matcher.Match(tag)
	resolved := supported[i]
	return &Names{tag: resolved, title: cases.Title(resolved)}
}

// ForString is For applied to a parsed BCP 47 tag string. Malformed tags
// resolve to English rather than failing; name lookup is a rendering
// concern and never blocks an operation.
func ForString(s string) *Names {
	tag, err := language.Parse(s)
	if err != nil {
		return For(language.English)
	}
	return For(tag)
}

// English returns the default Names.
func English() *Names {
	return For(language.English)
}

// Tag returns the resolved language tag.
func (n *Names) Tag() language.Tag {
	return n.tag
}

// MonthName returns the capitalized long name of month in the resolved
// language. The year parameter exists for calendar systems where the name
// set depends on the year; the Gregorian names ignore it.
func (n *Names) MonthName(year int, month time.Month) string {
	names := monthNames[n.tag]
	return n.title.String(names[month-1])
}
