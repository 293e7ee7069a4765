package bot

import (
	"fmt"
	"strings"

	"github.com/stylemate/stylemate/internal/style"
	"github.com/stylemate/stylemate/internal/telegram"
)

// maxMessageLen is the Bot API limit for a single message text.
const maxMessageLen = 4096

// favoritesPerPage keeps one full analysis per page; analyses run to
// several kilobytes, so more than one rarely fits a message anyway.
const favoritesPerPage = 1

const welcomeMessage = "Hello! I'm your personal style assistant. 👋\n\n" +
	"How can I help you?\n\n" +
	"📸 For photo shooting tips: /tips\n" +
	"❓ For frequently asked questions: /faq\n" +
	"ℹ️ For help: /help\n\n" +
	"Let's begin! Please select the most suitable profile for you:"

const helpText = "🤖 Style Assistant - Help Menu\n\n" +
	"Available commands:\n" +
	"/start - Start the style assistant\n" +
	"/help - Show this help menu\n" +
	"/finish - End conversation\n" +
	"/favorites - View your favorite outfits\n" +
	"/save - Save last analysis\n" +
	"/last - Show last analysis\n\n" +
	"📸 How to use:\n" +
	"1. Start the bot with /start command\n" +
	"2. Select a mode (Business, Budget, Trend, or Special Event)\n" +
	"3. If you chose Special Event, specify your event (wedding, graduation, etc.)\n" +
	"4. Send a photo of the outfit for analysis\n" +
	"5. Get personalized outfit suggestions\n" +
	"6. Optionally change mode for new suggestions\n" +
	"7. Use /finish command to end the conversation"

const photoTips = "📸 Photo Shooting Tips:\n\n" +
	"1. Good Lighting:\n" +
	"   • Prefer natural daylight\n" +
	"   • Avoid creating shadows\n\n" +
	"2. Right Angle:\n" +
	"   • Choose an angle that shows the entire outfit\n" +
	"   • Take close-up shots\n\n" +
	"3. Clear Image:\n" +
	"   • Keep the camera steady\n" +
	"   • Focus correctly\n\n" +
	"4. Background:\n" +
	"   • Choose a simple background\n" +
	"   • Avoid clutter"

const faqText = "❓ Frequently Asked Questions:\n\n" +
	"1. How does the bot work?\n" +
	"   • Analyzes your photo with AI\n" +
	"   • Provides suggestions based on your selected mode\n\n" +
	"2. What modes can I use?\n" +
	"   • Business Wardrobe Assistant\n" +
	"   • Budget Style Guide\n" +
	"   • Trend Analyst\n" +
	"   • Special Event Consultant\n\n" +
	"3. How can I use favorites?\n" +
	"   • Use /save command to save an outfit\n" +
	"   • Use /favorites to view your saved outfits\n\n" +
	"4. How can I change the mode?\n" +
	"   • Use the \"Change Mode\" button\n" +
	"   • or use /start to begin again"

const modeSelectionText = "Please select a new mode:\n\n" +
	"👔 Business Wardrobe: Professional looks and office outfits\n" +
	"💰 Budget Style: Affordable and stylish combinations\n" +
	"🎯 Trend Analyst: Latest fashion trends and style tips\n" +
	"🎉 Special Event: Suggestions for weddings, graduations, and other events"

// Soft-failure copy. The core yields error kinds; these are the generic
// user-facing renderings.
const (
	msgDatabaseError = "❌ A database error occurred. Please try again later."
	msgAPIError      = "❌ An error occurred while processing your request. Please try again."
	msgPhotoError    = "❌ An error occurred while processing your photo. Please try again."
	msgGeneralError  = "❌ An error occurred. Please try again later."
	msgNotActive     = "Sorry, you need to start the bot first with /start command. 🙏\n" +
		"For help, use the /help command."
)

var modeMessages = map[style.Mode]string{
	style.ModeProfessional: "👔 You've selected Business Wardrobe Assistant mode.\n\n" +
		"I can suggest professional and elegant business outfits.\n" +
		"Please send a photo of the outfit you'd like me to analyze.",
	style.ModeStudent: "💰 You've selected Budget Style Guide mode.\n\n" +
		"I can suggest affordable and stylish combinations.\n" +
		"Please send a photo of the outfit you'd like me to analyze.",
	style.ModeFashion: "🎯 You've selected Trend Analyst mode.\n\n" +
		"I can suggest outfits based on the latest trends.\n" +
		"Please send a photo of the outfit you'd like me to analyze.",
}

func modeKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{
				{Text: "👔 Business Wardrobe", CallbackData: "professional"},
				{Text: "💰 Budget Style", CallbackData: "student"},
			},
			{{Text: "🎯 Trend Analyst", CallbackData: "fashion"}},
			{{Text: "🎉 Special Event", CallbackData: "special_event"}},
		},
	}
}

func quickActionsKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "⭐ Quick Save", CallbackData: "quick_save"}},
			{{Text: "🔄 Change Mode", CallbackData: "change_mode"}},
		},
	}
}

func lastAnalysisKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			{{Text: "⭐ Quick Save", CallbackData: "quick_save"}},
			{{Text: "🔄 New Analysis", CallbackData: "new_analysis"}},
		},
	}
}

// renderFavoritesPage formats one page of the user's favorites. The page
// argument is clamped into range; the clamped value is returned alongside
// the text and total page count.
func renderFavoritesPage(favorites []style.Favorite, page int) (text string, clamped, totalPages int) {
	totalPages = (len(favorites) + favoritesPerPage - 1) / favoritesPerPage
	if page > totalPages {
		page = 1
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * favoritesPerPage
	end := start + favoritesPerPage
	if end > len(favorites) {
		end = len(favorites)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🌟 Your Favorite Outfits (Page %d/%d):\n\n", page, totalPages)
	for i := start; i < end; i++ {
		f := favorites[i]
		fmt.Fprintf(&b, "Favorite #%d (ID: %d)\n", i+1, f.ID)
		fmt.Fprintf(&b, "Date: %s\n", f.CreatedAt.Format("2006-01-02 15:04:05"))
		fmt.Fprintf(&b, "Mode: %s\n", f.Mode.Title())
		fmt.Fprintf(&b, "Analysis:\n%s\n", f.Analysis)
		b.WriteString(strings.Repeat("─", 30) + "\n")
	}
	b.WriteString("\nTo delete a favorite:\n")
	b.WriteString("/delete_favorite <favorite_id>\n")
	b.WriteString("Example: /delete_favorite 1")

	return b.String(), page, totalPages
}

// favoritesKeyboard builds the delete-all row plus navigation when the
// list spans multiple pages.
func favoritesKeyboard(page, totalPages int) *telegram.InlineKeyboardMarkup {
	keyboard := [][]telegram.InlineKeyboardButton{
		{{Text: "🗑️ Delete All", CallbackData: "delete_all_favorites"}},
	}

	if totalPages > 1 {
		var nav []telegram.InlineKeyboardButton
		if page > 1 {
			nav = append(nav, telegram.InlineKeyboardButton{Text: "⬅️ Previous", CallbackData: "prev_favorites"})
		}
		if page < totalPages {
			nav = append(nav, telegram.InlineKeyboardButton{Text: "Next ➡️", CallbackData: "next_favorites"})
		}
		keyboard = append(keyboard, nav)
	}

	return &telegram.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

// splitMessage chunks text at the Bot API message length limit.
func splitMessage(text string) []string {
	if len(text) <= maxMessageLen {
		return []string{text}
	}
	var chunks []string
	runes := []rune(text)
	for len(runes) > 0 {
		n := maxMessageLen
		if n > len(runes) {
			n = len(runes)
		}
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}
	return chunks
}

func botCommands() []telegram.BotCommand {
	return []telegram.BotCommand{
		{Command: "start", Description: "Start the style assistant 👋"},
		{Command: "help", Description: "Show help menu ℹ️"},
		{Command: "tips", Description: "Photo shooting tips 📸"},
		{Command: "faq", Description: "Frequently asked questions ❓"},
		{Command: "favorites", Description: "Your favorite outfits 🌟"},
		{Command: "save", Description: "Save last analysis ⭐"},
		{Command: "last", Description: "Show last analysis 🔍"},
		{Command: "finish", Description: "End conversation 👋"},
	}
}
