package style

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Mode identifies the advice profile a user has selected.
//
// ModeNone means no profile has been chosen yet; a photo cannot be
// analyzed until the user picks one of the concrete modes.
type Mode string

const (
	ModeNone         Mode = ""
	ModeProfessional Mode = "professional"
	ModeStudent      Mode = "student"
	ModeFashion      Mode = "fashion"
	ModeSpecialEvent Mode = "special_event"

	// ModeGeneral is the fallback label stored on a favorite saved
	// before any mode was selected. It is never a selectable mode.
	ModeGeneral Mode = "general"
)

// ParseMode maps a callback payload to a selectable mode.
// Returns ModeNone and false for anything that is not a concrete mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeProfessional, ModeStudent, ModeFashion, ModeSpecialEvent:
		return Mode(s), true
	}
	return ModeNone, false
}

// Selectable reports whether m is one of the concrete user-selectable modes.
func (m Mode) Selectable() bool {
	_, ok := ParseMode(string(m))
	return ok
}

var titleCaser = cases.Title(language.English)

// Title returns the display form of the mode, e.g. "Special Event".
func (m Mode) Title() string {
	if m == ModeNone {
		return "None"
	}
	s := string(m)
	for i := range s {
		if s[i] == '_' {
			s = s[:i] + " " + s[i+1:]
		}
	}
	return titleCaser.String(s)
}
