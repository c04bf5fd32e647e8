package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/example/espbot/internal/ai"
	"github.com/example/espbot/internal/catalog"
	"github.com/example/espbot/internal/notifier"
	"github.com/example/espbot/internal/progress"
	"github.com/example/espbot/internal/quiz"
	"github.com/example/espbot/internal/scheduler"
	"github.com/example/espbot/internal/speech"
	"github.com/example/espbot/internal/srs"
	"github.com/example/espbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MenuButton represents a button in the menu
type MenuButton struct {
	Text         string
	CallbackData string
}

// createKeyboard creates a keyboard from menu buttons
func createKeyboard(buttons [][]MenuButton) tgbotapi.InlineKeyboardMarkup {
	var keyboard [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var keyboardRow []tgbotapi.InlineKeyboardButton
		for _, button := range row {
			keyboardRow = append(keyboardRow, tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData))
		}
		keyboard = append(keyboard, keyboardRow)
	}
	return tgbotapi.NewInlineKeyboardMarkup(keyboard...)
}

// mismatchedPairDelay is how long a mismatched pair stays visible
const mismatchedPairDelay = 1 * time.Second

// chatSession is the per-chat practice state. At most one practice mode is
// active at a time.
type chatSession struct {
	mode      quiz.Mode
	choice    *quiz.MultipleChoice
	listening *quiz.Listening
	pairs     *quiz.MatchPairs
	timed     *quiz.TimeChallenge

	// Flashcard review flow
	reviewQueue []*models.Flashcard
	reviewIdx   int

	boardMsgID int // message holding the match pairs board, edited in place

	// Pending timers. Both must be cancelled when the session is torn down
	// so a stale tick cannot mutate a finished session.
	concealTimer *time.Timer
	expireTimer  *time.Timer
}

func (s *chatSession) stopTimers() {
	if s.concealTimer != nil {
		s.concealTimer.Stop()
		s.concealTimer = nil
	}
	if s.expireTimer != nil {
		s.expireTimer.Stop()
		s.expireTimer = nil
	}
}

// Bot represents the Telegram bot application
type Bot struct {
	api   *tgbotapi.BotAPI
	token string

	catalog  *catalog.Catalog
	reviewer *srs.Scheduler
	store    *progress.Store
	popups   *notifier.Notifier

	speaker       speech.Speaker
	recognizer    speech.Recognizer
	speechEnabled bool

	chatGPT       *ai.ChatGPT
	openAiEnabled bool

	schedulerEnabled bool
	scheduler        *scheduler.Scheduler

	adminUserIDs map[int64]bool

	// mu guards sessions and loginDone. It is held for the whole handling
	// of an update and by every timer callback.
	mu        sync.Mutex
	sessions  map[int64]*chatSession
	loginDone map[int64]string // chat -> last date the streak check ran

	// popupMu guards the achievement popup state separately, because the
	// notifier calls back while mu may be held.
	popupMu    sync.Mutex
	activeChat int64
	popupMsgID int
}

// New creates a new bot instance
func New(cat *catalog.Catalog, reviewer *srs.Scheduler, store *progress.Store, popups *notifier.Notifier) (*Bot, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	b := &Bot{
		token:            token,
		catalog:          cat,
		reviewer:         reviewer,
		store:            store,
		popups:           popups,
		speaker:          speech.Disabled{},
		recognizer:       speech.Disabled{},
		schedulerEnabled: os.Getenv("ENABLE_SCHEDULER") != "false",
		adminUserIDs:     make(map[int64]bool),
		sessions:         make(map[int64]*chatSession),
		loginDone:        make(map[int64]string),
	}

	if client, err := speech.NewClient(); err == nil {
		b.speaker = client
		b.recognizer = client
		b.speechEnabled = true
	} else {
		log.Printf("Speech capability disabled: %v", err)
	}

	if chatGPT, err := ai.New(); err == nil {
		b.chatGPT = chatGPT
		b.openAiEnabled = true
	}

	adminIDs := os.Getenv("ADMIN_USER_IDS")
	if adminIDs != "" {
		for _, idStr := range strings.Split(adminIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
			if err != nil {
				log.Printf("Warning: Invalid admin user ID: %s", idStr)
				continue
			}
			b.adminUserIDs[id] = true
		}
	}

	popups.OnChange = b.onPopupChange

	return b, nil
}

// Start initializes the Telegram API client and runs the update loop until
// the context is cancelled. Updates are handled sequentially: all state is
// owned by a single user session.
func (b *Bot) Start(ctx context.Context) error {
	botAPI, err := tgbotapi.NewBotAPI(b.token)
	if err != nil {
		return fmt.Errorf("unable to create bot: %v", err)
	}

	b.api = botAPI
	log.Printf("Authorized on account %s", botAPI.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	if b.schedulerEnabled {
		b.scheduler = scheduler.New(b.catalog, b.reviewer, b)
		b.scheduler.Start()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

// Stop gracefully stops the bot
func (b *Bot) Stop(ctx context.Context) error {
	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	b.popups.Stop()

	b.mu.Lock()
	for _, session := range b.sessions {
		session.stopTimers()
	}
	b.mu.Unlock()

	if b.api != nil {
		b.api.StopReceivingUpdates()
	}
	log.Println("Bot stopped")
	return nil
}

// reminderChatID returns the chat the reminder job should write to:
// REMINDER_CHAT_ID if set, otherwise the chat the user last wrote from.
func (b *Bot) reminderChatID() int64 {
	if idStr := os.Getenv("REMINDER_CHAT_ID"); idStr != "" {
		if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
			return id
		}
	}
	b.popupMu.Lock()
	defer b.popupMu.Unlock()
	return b.activeChat
}

// SendReminder implements scheduler.Notifier
func (b *Bot) SendReminder(dueCount int) error {
	chatID := b.reminderChatID()
	if chatID == 0 || b.api == nil {
		return nil
	}
	text := fmt.Sprintf("📚 You have %d card(s) due for review. Send /review to practice!", dueCount)
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (b *Bot) isAdmin(userID int64) bool {
	return b.adminUserIDs[userID]
}

// session returns the chat's practice session, creating it if needed
func (b *Bot) session(chatID int64) *chatSession {
	s, ok := b.sessions[chatID]
	if !ok {
		s = &chatSession{}
		b.sessions[chatID] = s
	}
	return s
}

// resetSession tears down any active practice in the chat, cancelling
// pending timers so they cannot fire into the next session
func (b *Bot) resetSession(chatID int64) {
	if s, ok := b.sessions[chatID]; ok {
		s.stopTimers()
	}
	b.sessions[chatID] = &chatSession{}
}

// markActive remembers the chat the user last wrote from, so popups and
// reminders have somewhere to go
func (b *Bot) markActive(chatID int64) {
	b.popupMu.Lock()
	b.activeChat = chatID
	b.popupMu.Unlock()
}

// onPopupChange is installed as the achievement notifier's change hook: it
// posts the popup message and removes it again on dismissal or expiry.
func (b *Bot) onPopupChange(a *models.Achievement) {
	b.popupMu.Lock()
	defer b.popupMu.Unlock()

	if b.api == nil || b.activeChat == 0 {
		return
	}
	if b.popupMsgID != 0 {
		b.api.Request(tgbotapi.NewDeleteMessage(b.activeChat, b.popupMsgID))
		b.popupMsgID = 0
	}
	if a == nil {
		return
	}

	text := fmt.Sprintf("🏆 Achievement unlocked: %s\n%s", a.Name, a.Description)
	msg := tgbotapi.NewMessage(b.activeChat, text)
	msg.ReplyMarkup = createKeyboard([][]MenuButton{{{Text: "Dismiss", CallbackData: "popup_dismiss"}}})
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Failed to send achievement popup: %v", err)
		return
	}
	b.popupMsgID = sent.MessageID
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, buttons [][]MenuButton) int {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = createKeyboard(buttons)
	sent, err := b.api.Send(msg)
	if err != nil {
		log.Printf("Failed to send message: %v", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) editKeyboard(chatID int64, messageID int, text string, buttons [][]MenuButton) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, createKeyboard(buttons))
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message: %v", err)
	}
}

// showMainMenu displays the top-level menu
func (b *Bot) showMainMenu(chatID int64) {
	b.sendWithKeyboard(chatID, "What would you like to do?", b.mainMenuButtons())
}

func (b *Bot) mainMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "📖 Review due cards", CallbackData: "review"}},
		{{Text: "🎯 Practice modes", CallbackData: "practice"}},
		{{Text: "📊 My stats", CallbackData: "stats"}},
		{{Text: "🏆 Achievements", CallbackData: "achievements"}},
	}
}

func (b *Bot) practiceMenuButtons() [][]MenuButton {
	return [][]MenuButton{
		{{Text: "🧠 Multiple Choice", CallbackData: "mode_choice"}},
		{{Text: "🔊 Listen & Speak", CallbackData: "mode_listen"}},
		{{Text: "🃏 Match Pairs", CallbackData: "mode_pairs"}},
		{{Text: "⚡ Time Challenge", CallbackData: "mode_time"}},
		{{Text: "« Back", CallbackData: "menu"}},
	}
}
