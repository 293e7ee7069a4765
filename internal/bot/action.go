package bot

import "github.com/stylemate/stylemate/internal/style"

// Action enumerates every callback payload the bot understands. Callback
// data arrives as free-form strings; parsing up front into a closed set
// means the dispatch switch can be exhaustive and an unrecognized payload
// is an explicit ActionUnknown instead of a silently ignored branch.
type Action int

const (
	ActionUnknown Action = iota
	ActionSelectProfessional
	ActionSelectStudent
	ActionSelectFashion
	ActionSelectSpecialEvent
	ActionDeleteAllFavorites
	ActionPrevFavorites
	ActionNextFavorites
	ActionQuickSave
	ActionSaveFavorite
	ActionNewAnalysis
	ActionChangeMode
	ActionShowModes
	ActionShowTips
)

var actionNames = map[string]Action{
	"professional":         ActionSelectProfessional,
	"student":              ActionSelectStudent,
	"fashion":              ActionSelectFashion,
	"special_event":        ActionSelectSpecialEvent,
	"delete_all_favorites": ActionDeleteAllFavorites,
	"prev_favorites":       ActionPrevFavorites,
	"next_favorites":       ActionNextFavorites,
	"quick_save":           ActionQuickSave,
	"save_favorite":        ActionSaveFavorite,
	"new_analysis":         ActionNewAnalysis,
	"change_mode":          ActionChangeMode,
	"show_modes":           ActionShowModes,
	"show_tips":            ActionShowTips,
}

// ParseAction maps a callback payload to its Action.
// Anything outside the known set is ActionUnknown.
func ParseAction(data string) Action {
	return actionNames[data]
}

// String returns the wire payload for the action, "" for ActionUnknown.
func (a Action) String() string {
	for name, action := range actionNames {
		if action == a {
			return name
		}
	}
	return ""
}

// Mode returns the style mode a selection action stands for, and whether
// the action is a mode selection at all.
func (a Action) Mode() (style.Mode, bool) {
	switch a {
	case ActionSelectProfessional:
		return style.ModeProfessional, true
	case ActionSelectStudent:
		return style.ModeStudent, true
	case ActionSelectFashion:
		return style.ModeFashion, true
	case ActionSelectSpecialEvent:
		return style.ModeSpecialEvent, true
	}
	return style.ModeNone, false
}
