// Package bot wires Telegram updates to the session, favorites, and
// advisor subsystems. It owns no domain logic of its own: handlers guard,
// delegate, and render.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/stylemate/stylemate/internal/advisor"
	"github.com/stylemate/stylemate/internal/favorites"
	"github.com/stylemate/stylemate/internal/session"
	"github.com/stylemate/stylemate/internal/style"
	"github.com/stylemate/stylemate/internal/telegram"
)

// API is the outbound slice of the Bot API the dispatcher uses.
// Satisfied by *telegram.Client; tests substitute a recording fake.
type API interface {
	SendMessage(ctx context.Context, chatID int64, text string, keyboard *telegram.InlineKeyboardMarkup) (*telegram.Message, error)
	EditMessageText(ctx context.Context, chatID, messageID int64, text string, keyboard *telegram.InlineKeyboardMarkup) error
	DeleteMessage(ctx context.Context, chatID, messageID int64) error
	AnswerCallbackQuery(ctx context.Context, callbackID string) error
	SetMyCommands(ctx context.Context, commands []telegram.BotCommand) error
	GetFile(ctx context.Context, fileID string) (telegram.File, error)
	DownloadFile(ctx context.Context, filePath string) ([]byte, error)
}

// UpdateSource produces inbound updates, normally via long polling.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]telegram.Update, error)
}

// Bot dispatches updates to handlers. Each update runs in its own
// goroutine; shared state is limited to the favorites pagination map.
type Bot struct {
	api      API
	source   UpdateSource
	sessions *session.Manager
	ledger   *favorites.Ledger
	analyzer advisor.Analyzer
	log      *slog.Logger

	pollTimeout int

	mu    sync.Mutex
	pages map[int64]int // userID -> current favorites page
}

// Options configures a Bot beyond its required collaborators.
type Options struct {
	// PollTimeout is the long-poll timeout in seconds. Zero means 30.
	PollTimeout int
}

// New creates a Bot over the given collaborators.
func New(api API, source UpdateSource, sessions *session.Manager, ledger *favorites.Ledger, analyzer advisor.Analyzer, log *slog.Logger, opts Options) *Bot {
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 30
	}
	return &Bot{
		api:         api,
		source:      source,
		sessions:    sessions,
		ledger:      ledger,
		analyzer:    analyzer,
		log:         log,
		pollTimeout: opts.PollTimeout,
		pages:       make(map[int64]int),
	}
}

// Run polls for updates until ctx is cancelled. Each update is handled in
// its own goroutine; Run waits for in-flight handlers before returning.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.api.SetMyCommands(ctx, botCommands()); err != nil {
		b.log.Warn("set commands failed", "error", err)
	}

	var wg sync.WaitGroup
	defer wg.Wait()

	var offset int64
	for {
		updates, err := b.source.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.log.Error("get updates failed", "error", err)
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			update := u
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.handleUpdate(ctx, update)
			}()
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update telegram.Update) {
	log := b.log.With("request_id", requestID(), "update_id", update.UpdateID)

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, log, update.CallbackQuery)
	case update.Message != nil && len(update.Message.Photo) > 0:
		b.handlePhoto(ctx, log, update.Message)
	case update.Message != nil && strings.HasPrefix(update.Message.Text, "/"):
		b.handleCommand(ctx, log, update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.handleText(ctx, log, update.Message)
	}
}

// requestID yields a time-ordered correlation token for one update.
func requestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}

// send delivers text, chunked at the message length limit. The keyboard,
// if any, is attached to the final chunk. Delivery failures are logged,
// not surfaced; there is nobody upstream to report them to.
func (b *Bot) send(ctx context.Context, log *slog.Logger, chatID int64, text string, keyboard *telegram.InlineKeyboardMarkup) {
	chunks := splitMessage(text)
	for i, chunk := range chunks {
		var kb *telegram.InlineKeyboardMarkup
		if i == len(chunks)-1 {
			kb = keyboard
		}
		if _, err := b.api.SendMessage(ctx, chatID, chunk, kb); err != nil {
			log.Error("send message failed", "chat_id", chatID, "error", err)
			return
		}
	}
}

func (b *Bot) handleCommand(ctx context.Context, log *slog.Logger, msg *telegram.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	fields := strings.Fields(msg.Text)
	command := fields[0]
	// Group chats suffix commands with the bot's username.
	if i := strings.Index(command, "@"); i >= 0 {
		command = command[:i]
	}
	log = log.With("user_id", userID, "command", command)

	switch command {
	case "/start":
		if err := b.sessions.Activate(ctx, userID); err != nil {
			log.Error("activate failed", "error", err)
			b.send(ctx, log, chatID, msgDatabaseError, nil)
			return
		}
		b.send(ctx, log, chatID, welcomeMessage, modeKeyboard())

	case "/help":
		b.send(ctx, log, chatID, helpText, nil)

	case "/tips":
		b.send(ctx, log, chatID, photoTips, nil)

	case "/faq":
		b.send(ctx, log, chatID, faqText, nil)

	case "/favorites":
		b.setPage(userID, 1)
		b.showFavorites(ctx, log, chatID, userID, 0)

	case "/save":
		b.saveLastAnalysis(ctx, log, chatID, userID)

	case "/last":
		analysis, err := b.sessions.Cache().Get(ctx, userID)
		if err != nil {
			log.Error("last analysis failed", "error", err)
			b.send(ctx, log, chatID, msgDatabaseError, nil)
			return
		}
		if analysis == "" {
			b.send(ctx, log, chatID, "🔍 No previous analysis found.\nSend a photo to analyze an outfit first.", nil)
			return
		}
		b.send(ctx, log, chatID, "🔍 Your last analysis:\n\n"+analysis, lastAnalysisKeyboard())

	case "/delete_favorite":
		if len(fields) != 2 {
			b.send(ctx, log, chatID, "Usage: /delete_favorite <favorite_id>\nExample: /delete_favorite 1", nil)
			return
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			b.send(ctx, log, chatID, "❌ Invalid favorite ID. Please provide a number.", nil)
			return
		}
		if b.ledger.DeleteOne(ctx, id, userID) {
			b.send(ctx, log, chatID, "🗑️ Favorite deleted.", nil)
		} else {
			b.send(ctx, log, chatID, "❌ Favorite not found.", nil)
		}

	case "/finish":
		if err := b.sessions.End(ctx, userID); err != nil {
			log.Error("end session incomplete", "error", err)
		}
		b.setPage(userID, 0)
		b.send(ctx, log, chatID, "👋 Conversation ended. Thank you for using the style assistant!\nUse /start to begin again.", nil)

	case "/cancel":
		snap, err := b.sessions.State(ctx, userID)
		if err != nil {
			log.Error("state read failed", "error", err)
			b.send(ctx, log, chatID, msgDatabaseError, nil)
			return
		}
		if snap.Active {
			b.send(ctx, log, chatID, modeSelectionText, modeKeyboard())
		} else {
			b.send(ctx, log, chatID, "Nothing to cancel. Use /start to begin.", nil)
		}

	default:
		b.send(ctx, log, chatID, "Unknown command. Use /help to see available commands.", nil)
	}
}

// handleText handles free-form text. The only text the bot consumes is
// the event description while the user is awaiting event entry; anything
// else gets a usage hint.
func (b *Bot) handleText(ctx context.Context, log *slog.Logger, msg *telegram.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	log = log.With("user_id", userID)

	snap, err := b.sessions.State(ctx, userID)
	if err != nil {
		log.Error("state read failed", "error", err)
		b.send(ctx, log, chatID, msgDatabaseError, nil)
		return
	}

	awaitingEvent := snap.Active && snap.Mode == style.ModeSpecialEvent && snap.Event == ""
	if !awaitingEvent {
		b.send(ctx, log, chatID, "Send a photo to analyze an outfit, or use /help to see commands.", nil)
		return
	}

	if err := b.sessions.SetEvent(ctx, userID, msg.Text); err != nil {
		switch {
		case errors.Is(err, session.ErrEmptyEvent):
			b.send(ctx, log, chatID, "Please enter a valid event name (wedding, graduation, job interview, etc.).", nil)
		case errors.Is(err, session.ErrNotActive):
			b.send(ctx, log, chatID, msgNotActive, nil)
		default:
			log.Error("set event failed", "error", err)
			b.send(ctx, log, chatID, msgDatabaseError, nil)
		}
		return
	}

	event := strings.TrimSpace(msg.Text)
	b.send(ctx, log, chatID,
		"🎉 Great! I'll prepare outfit suggestions for: "+event+"\n\n"+
			"Please send a photo of the outfit you'd like me to analyze.", nil)
}

func (b *Bot) handlePhoto(ctx context.Context, log *slog.Logger, msg *telegram.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID
	log = log.With("user_id", userID)

	snap, err := b.sessions.State(ctx, userID)
	if err != nil {
		log.Error("state read failed", "error", err)
		b.send(ctx, log, chatID, msgDatabaseError, nil)
		return
	}
	switch {
	case !snap.Active:
		b.send(ctx, log, chatID, msgNotActive, nil)
		return
	case snap.Mode == style.ModeNone:
		b.send(ctx, log, chatID, "Please select a mode first:", modeKeyboard())
		return
	case snap.Mode == style.ModeSpecialEvent && snap.Event == "":
		b.send(ctx, log, chatID, "🎉 Please tell me which event you'll attend first (wedding, graduation, etc.).", nil)
		return
	}

	// Variants are ordered smallest first; the last is the original.
	photo := msg.Photo[len(msg.Photo)-1]
	if photo.FileSize > advisor.MaxPhotoBytes {
		b.send(ctx, log, chatID, "❌ Photo is too large. Please send a photo smaller than 5MB.", nil)
		return
	}

	processing, err := b.api.SendMessage(ctx, chatID, "🔍 Analyzing your outfit... Please wait.", nil)
	if err != nil {
		log.Error("send processing message failed", "error", err)
	}
	removeProcessing := func() {
		if processing == nil {
			return
		}
		if err := b.api.DeleteMessage(ctx, chatID, processing.MessageID); err != nil {
			log.Warn("delete processing message failed", "error", err)
		}
	}

	file, err := b.api.GetFile(ctx, photo.FileID)
	if err != nil {
		log.Error("get file failed", "error", err)
		removeProcessing()
		b.send(ctx, log, chatID, msgAPIError, nil)
		return
	}
	data, err := b.api.DownloadFile(ctx, file.FilePath)
	if err != nil {
		log.Error("download file failed", "error", err)
		removeProcessing()
		b.send(ctx, log, chatID, msgAPIError, nil)
		return
	}

	prepared, err := advisor.PrepareImage(data)
	if err != nil {
		log.Error("prepare image failed", "error", err)
		removeProcessing()
		if errors.Is(err, advisor.ErrPhotoTooLarge) {
			b.send(ctx, log, chatID, "❌ Photo is too large. Please send a photo smaller than 5MB.", nil)
		} else {
			b.send(ctx, log, chatID, msgPhotoError, nil)
		}
		return
	}

	// The session may have been ended or the mode changed while the photo
	// downloaded; re-check the guard right before spending an analysis call.
	ok, err := b.sessions.CanAnalyze(ctx, userID)
	if err != nil {
		log.Error("analyze guard failed", "error", err)
		removeProcessing()
		b.send(ctx, log, chatID, msgDatabaseError, nil)
		return
	}
	if !ok {
		removeProcessing()
		b.send(ctx, log, chatID, msgNotActive, nil)
		return
	}

	prompt := advisor.BuildPrompt(snap.Mode, snap.Event)
	analysis, err := b.analyzer.Analyze(ctx, prepared, prompt)
	removeProcessing()
	if err != nil {
		log.Error("analysis failed", "mode", snap.Mode, "error", err)
		b.send(ctx, log, chatID, msgAPIError, nil)
		return
	}

	if err := b.sessions.Cache().Put(ctx, userID, analysis); err != nil {
		// The in-memory copy is already visible; losing the durable write
		// only costs persistence across restart.
		log.Error("cache analysis failed", "error", err)
	}

	b.send(ctx, log, chatID, analysis, quickActionsKeyboard())
}

func (b *Bot) handleCallback(ctx context.Context, log *slog.Logger, cb *telegram.CallbackQuery) {
	userID := cb.From.ID
	log = log.With("user_id", userID, "action", cb.Data)

	if err := b.api.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		log.Warn("answer callback failed", "error", err)
	}

	if cb.Message == nil {
		log.Warn("callback without message")
		return
	}
	chatID := cb.Message.Chat.ID

	action := ParseAction(cb.Data)
	switch action {
	case ActionSelectProfessional, ActionSelectStudent, ActionSelectFashion, ActionSelectSpecialEvent:
		mode, _ := action.Mode()
		b.selectMode(ctx, log, chatID, userID, mode)

	case ActionQuickSave, ActionSaveFavorite:
		b.saveLastAnalysis(ctx, log, chatID, userID)

	case ActionDeleteAllFavorites:
		count := b.ledger.DeleteAll(ctx, userID)
		b.setPage(userID, 0)
		if count == 0 {
			b.send(ctx, log, chatID, "You have no favorites to delete.", nil)
			return
		}
		b.send(ctx, log, chatID, "🗑️ Deleted "+strconv.FormatInt(count, 10)+" favorite(s).", nil)

	case ActionPrevFavorites:
		b.showFavorites(ctx, log, chatID, userID, -1)

	case ActionNextFavorites:
		b.showFavorites(ctx, log, chatID, userID, +1)

	case ActionNewAnalysis:
		b.send(ctx, log, chatID, "📸 Please send a new photo of the outfit you'd like me to analyze.", nil)

	case ActionChangeMode, ActionShowModes:
		b.send(ctx, log, chatID, modeSelectionText, modeKeyboard())

	case ActionShowTips:
		b.send(ctx, log, chatID, photoTips, nil)

	case ActionUnknown:
		log.Warn("unknown callback action")
	}
}

func (b *Bot) selectMode(ctx context.Context, log *slog.Logger, chatID, userID int64, mode style.Mode) {
	if err := b.sessions.SelectMode(ctx, userID, mode); err != nil {
		switch {
		case errors.Is(err, session.ErrNotActive):
			b.send(ctx, log, chatID, msgNotActive, nil)
		case errors.Is(err, session.ErrInvalidMode):
			log.Warn("invalid mode selection", "mode", mode)
			b.send(ctx, log, chatID, msgGeneralError, nil)
		default:
			log.Error("select mode failed", "mode", mode, "error", err)
			b.send(ctx, log, chatID, msgDatabaseError, nil)
		}
		return
	}

	if mode == style.ModeSpecialEvent {
		b.send(ctx, log, chatID,
			"🎉 You've selected Special Event Consultant mode.\n\n"+
				"Which event will you attend? (wedding, graduation, job interview, etc.)\n"+
				"Please type the event name.", nil)
		return
	}
	b.send(ctx, log, chatID, modeMessages[mode], nil)
}

func (b *Bot) saveLastAnalysis(ctx context.Context, log *slog.Logger, chatID, userID int64) {
	analysis, err := b.sessions.Cache().Get(ctx, userID)
	if err != nil {
		log.Error("read last analysis failed", "error", err)
		b.send(ctx, log, chatID, msgDatabaseError, nil)
		return
	}
	if analysis == "" {
		b.send(ctx, log, chatID, "❌ No analysis found to save. Please analyze an outfit first.", nil)
		return
	}

	snap, err := b.sessions.State(ctx, userID)
	if err != nil {
		log.Error("state read failed", "error", err)
		b.send(ctx, log, chatID, msgDatabaseError, nil)
		return
	}

	if !b.ledger.Add(ctx, userID, analysis, snap.Mode) {
		b.send(ctx, log, chatID, msgDatabaseError, nil)
		return
	}
	b.send(ctx, log, chatID, "⭐ Analysis saved to your favorites!\nUse /favorites to view your saved outfits.", nil)
}

// showFavorites renders the user's favorites page, moved by delta
// (-1 previous, +1 next, 0 stay) from the remembered position.
func (b *Bot) showFavorites(ctx context.Context, log *slog.Logger, chatID, userID int64, delta int) {
	list := b.ledger.List(ctx, userID)
	if len(list) == 0 {
		b.setPage(userID, 0)
		b.send(ctx, log, chatID,
			"🌟 You don't have any favorite outfits yet.\n"+
				"After analyzing an outfit, use the ⭐ Quick Save button or /save to add one.", nil)
		return
	}

	page := b.page(userID) + delta
	text, page, totalPages := renderFavoritesPage(list, page)
	b.setPage(userID, page)
	b.send(ctx, log, chatID, text, favoritesKeyboard(page, totalPages))
}

func (b *Bot) page(userID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pages[userID]
}

func (b *Bot) setPage(userID int64, page int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if page <= 0 {
		delete(b.pages, userID)
		return
	}
	b.pages[userID] = page
}
