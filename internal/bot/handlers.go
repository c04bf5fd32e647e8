package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/espbot/internal/excel"
	"github.com/example/espbot/internal/quiz"
	"github.com/example/espbot/internal/speech"
	"github.com/example/espbot/pkg/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// listeningSessionCards caps how many cards a listening session walks through
const listeningSessionCards = 10

// handleUpdate dispatches one incoming update. It holds the session lock for
// the whole dispatch; the bot serves a single user, so there is nothing to
// run concurrently.
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	b.markActive(chatID)
	b.checkDailyStreak(chatID, time.Now())

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}
	if message.Voice != nil {
		b.handleVoice(ctx, message)
		return
	}

	// Plain text doubles as a typed transcript for the listening quiz
	session := b.session(chatID)
	if session.mode == quiz.ModeListening && session.listening != nil {
		b.submitTranscript(ctx, chatID, message.Text)
		return
	}

	b.showMainMenu(chatID)
}

// checkDailyStreak runs the store's daily streak check once per calendar day
// per chat
func (b *Bot) checkDailyStreak(chatID int64, now time.Time) {
	today := now.Format(models.DateLayout)
	if b.loginDone[chatID] == today {
		return
	}
	b.loginDone[chatID] = today
	if err := b.store.CheckDailyStreak(now); err != nil {
		log.Printf("Failed to update daily streak: %v", err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	switch message.Command() {
	case "start":
		b.resetSession(chatID)
		b.send(chatID, "¡Hola! I am your Spanish vocabulary trainer.\nPractice flashcards, play quiz modes and keep your streak alive.")
		b.showMainMenu(chatID)
	case "help":
		b.handleHelp(message)
	case "stats":
		b.sendStats(chatID)
	case "achievements":
		b.sendAchievements(chatID)
	case "review":
		b.startReview(chatID)
	case "practice":
		b.sendWithKeyboard(chatID, "Choose a practice mode:", b.practiceMenuButtons())
	case "example":
		b.handleExampleCommand(message)
	case "import":
		b.handleImportCommand(message)
	default:
		b.send(chatID, "Unknown command. Send /help to see what I can do.")
	}
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Available commands:
/review - review cards that are due
/practice - choose a practice mode
/stats - your level, XP and streak
/achievements - your achievements
/example <word> - an AI-generated example sentence
/import <path> - load cards from a spreadsheet (admin)
/help - this message`
	if !b.openAiEnabled {
		help += "\n\n(/example is disabled: no OPENAI_API_KEY configured)"
	}
	b.send(message.Chat.ID, help)
}

// handleExampleCommand generates a fresh example sentence for a card
func (b *Bot) handleExampleCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !b.openAiEnabled {
		b.send(chatID, "Example generation is not available: no OPENAI_API_KEY configured.")
		return
	}

	query := strings.ToLower(strings.TrimSpace(message.CommandArguments()))
	if query == "" {
		b.send(chatID, "Usage: /example <spanish or english word>")
		return
	}

	for _, card := range b.catalog.All() {
		if strings.ToLower(card.Spanish) == query || strings.ToLower(card.English) == query {
			example := b.chatGPT.GenerateExampleWithFallback(card)
			b.send(chatID, fmt.Sprintf("%s\n%s", example.Spanish, example.English))
			return
		}
	}
	b.send(chatID, fmt.Sprintf("I don't know the word '%s' yet.", query))
}

// handleImportCommand loads extra flashcards from an Excel or CSV file on the
// bot host. Admin only.
func (b *Bot) handleImportCommand(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if message.From == nil || !b.isAdmin(message.From.ID) {
		b.send(chatID, "This command is only available to administrators.")
		return
	}

	path := strings.TrimSpace(message.CommandArguments())
	if path == "" {
		b.send(chatID, "Usage: /import <path to .xlsx or .csv file>")
		return
	}

	result, err := excel.ImportCards(excel.DefaultImportConfig(path))
	if err != nil {
		b.send(chatID, fmt.Sprintf("Import failed: %v", err))
		return
	}

	now := time.Now()
	nextID := b.catalog.NextID()
	for i := range result.Cards {
		result.Cards[i].ID = nextID + i
	}
	if err := b.catalog.Merge(result.Cards, now); err != nil {
		b.send(chatID, fmt.Sprintf("Import failed: %v", err))
		return
	}

	summary := fmt.Sprintf("Imported %d cards (%d rows processed, %d skipped).",
		len(result.Cards), result.TotalProcessed, result.Skipped)
	if len(result.Errors) > 0 {
		summary += fmt.Sprintf("\n%d rows had problems, e.g.: %s", len(result.Errors), result.Errors[0])
	}
	b.send(chatID, summary)
}

func (b *Bot) sendStats(chatID int64) {
	stats := b.store.Stats()
	due := len(b.reviewer.DueFirst(b.catalog.All(), time.Now(), 0))

	text := fmt.Sprintf(
		"📊 Your progress\n\n"+
			"Level: %d (%d / %d XP)\n"+
			"Day streak: %d 🔥\n"+
			"Daily goal: %d%%\n"+
			"Cards learned: %d\n"+
			"Cards due for review: %d",
		stats.Level, stats.XP, stats.NextLevel,
		stats.Streak,
		stats.DailyGoal,
		stats.TotalCardsLearned,
		due,
	)
	if len(stats.WeakestCategories) > 0 {
		text += "\nWeakest categories: " + strings.Join(stats.WeakestCategories, ", ")
	}
	if len(stats.StrongestCategories) > 0 {
		text += "\nStrongest categories: " + strings.Join(stats.StrongestCategories, ", ")
	}
	b.send(chatID, text)
}

func (b *Bot) sendAchievements(chatID int64) {
	var sb strings.Builder
	sb.WriteString("🏆 Achievements\n")
	for _, a := range b.store.Achievements() {
		mark := "🔒"
		if a.Achieved {
			mark = "✅"
		}
		fmt.Fprintf(&sb, "\n%s %s — %s", mark, a.Name, a.Description)
	}
	b.send(chatID, sb.String())
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Acknowledge the button press so the client stops its spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("Failed to answer callback: %v", err)
	}
	if callback.Message == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	b.markActive(chatID)
	b.checkDailyStreak(chatID, time.Now())
	data := callback.Data

	switch {
	case data == "menu":
		b.resetSession(chatID)
		b.showMainMenu(chatID)
	case data == "practice":
		b.sendWithKeyboard(chatID, "Choose a practice mode:", b.practiceMenuButtons())
	case data == "stats":
		b.sendStats(chatID)
	case data == "achievements":
		b.sendAchievements(chatID)
	case data == "popup_dismiss":
		b.popups.Dismiss()
	case data == "review":
		b.startReview(chatID)
	case data == "rev_show":
		b.showReviewAnswer(chatID)
	case data == "rev_ok" || data == "rev_no":
		b.applyReview(chatID, data == "rev_ok")
	case data == "mode_choice":
		b.startMultipleChoice(chatID)
	case data == "mode_listen":
		b.startListening(ctx, chatID)
	case data == "mode_pairs":
		b.startMatchPairs(chatID)
	case data == "mode_time":
		b.startTimeChallenge(chatID)
	case strings.HasPrefix(data, "mc_ans_"):
		b.handleChoiceAnswer(chatID, strings.TrimPrefix(data, "mc_ans_"))
	case strings.HasPrefix(data, "tc_ans_"):
		b.handleTimeChallengeAnswer(chatID, strings.TrimPrefix(data, "tc_ans_"))
	case strings.HasPrefix(data, "tile_"):
		b.handleTileReveal(chatID, strings.TrimPrefix(data, "tile_"))
	case data == "listen_play":
		b.playCurrentCard(ctx, chatID)
	case data == "listen_skip":
		b.submitTranscript(ctx, chatID, "")
	}
}

// --- Flashcard review flow ---

// startReview begins reviewing due cards, most overdue first
func (b *Bot) startReview(chatID int64) {
	b.resetSession(chatID)

	due := b.reviewer.DueFirst(b.catalog.All(), time.Now(), 0)
	if len(due) == 0 {
		b.send(chatID, "🎉 Nothing is due right now. Try a practice mode instead!")
		return
	}

	session := b.session(chatID)
	session.reviewQueue = due
	session.reviewIdx = 0
	b.showReviewCard(chatID)
}

func (b *Bot) showReviewCard(chatID int64) {
	session := b.session(chatID)
	if session.reviewIdx >= len(session.reviewQueue) {
		b.send(chatID, "✅ Review finished. ¡Bien hecho!")
		b.resetSession(chatID)
		b.showMainMenu(chatID)
		return
	}

	card := session.reviewQueue[session.reviewIdx]
	text := fmt.Sprintf("Card %d of %d\n\n🇪🇸 %s\n(%s)", session.reviewIdx+1, len(session.reviewQueue), card.Spanish, card.Pronunciation)
	b.sendWithKeyboard(chatID, text, [][]MenuButton{
		{{Text: "Show answer", CallbackData: "rev_show"}},
		{{Text: "« Menu", CallbackData: "menu"}},
	})
}

func (b *Bot) showReviewAnswer(chatID int64) {
	session := b.session(chatID)
	if session.reviewIdx >= len(session.reviewQueue) {
		return
	}
	card := session.reviewQueue[session.reviewIdx]

	text := fmt.Sprintf("🇪🇸 %s\n🇬🇧 %s", card.Spanish, card.English)
	for _, example := range card.Examples {
		text += fmt.Sprintf("\n\n_%s_\n%s", example.Spanish, example.English)
	}
	if len(card.CommonMistakes) > 0 {
		text += "\n\n⚠️ Common mistakes: " + strings.Join(card.CommonMistakes, "; ")
	}
	b.sendWithKeyboard(chatID, text, [][]MenuButton{
		{{Text: "✅ Knew it", CallbackData: "rev_ok"}, {Text: "❌ Didn't know", CallbackData: "rev_no"}},
	})
}

// applyReview feeds the outcome to the spaced repetition scheduler and the
// progress store, then moves on
func (b *Bot) applyReview(chatID int64, wasCorrect bool) {
	session := b.session(chatID)
	if session.reviewIdx >= len(session.reviewQueue) {
		return
	}
	card := session.reviewQueue[session.reviewIdx]
	now := time.Now()

	outcome := models.ReviewOutcome{CardID: card.ID, WasCorrect: wasCorrect, Timestamp: now}
	b.reviewer.Apply(card, outcome)
	if err := b.store.ApplyCardReview(outcome); err != nil {
		log.Printf("Failed to apply card review: %v", err)
	}

	next := card.NextReview.Format("Jan 2")
	if wasCorrect {
		b.send(chatID, fmt.Sprintf("Nice! Next review: %s", next))
	} else {
		b.send(chatID, fmt.Sprintf("It was '%s'. You'll see it again tomorrow.", card.English))
	}

	session.reviewIdx++
	b.showReviewCard(chatID)
}

// --- Multiple choice ---

func (b *Bot) startMultipleChoice(chatID int64) {
	b.resetSession(chatID)

	session := b.session(chatID)
	mc, err := quiz.NewMultipleChoice(b.catalog.All(), time.Now())
	if err != nil {
		b.send(chatID, "No cards available for a quiz.")
		return
	}
	session.mode = quiz.ModeMultipleChoice
	session.choice = mc
	b.askChoiceQuestion(chatID)
}

func (b *Bot) askChoiceQuestion(chatID int64) {
	session := b.session(chatID)
	question, ok := session.choice.Current()
	if !ok {
		b.finishSession(chatID, session.choice)
		return
	}

	header := fmt.Sprintf("Question %d of %d  ·  ❤️ %d  ·  Score %d",
		session.choice.QuestionNumber(), session.choice.TotalQuestions(),
		session.choice.Lives(), session.choice.Score())
	if session.choice.Multiplier() > 1 {
		header += fmt.Sprintf("  🔥 x%d", session.choice.Multiplier())
	}

	var rows [][]MenuButton
	for i, option := range question.Options {
		rows = append(rows, []MenuButton{{Text: option, CallbackData: "mc_ans_" + strconv.Itoa(i)}})
	}
	rows = append(rows, []MenuButton{{Text: "« Quit", CallbackData: "menu"}})

	text := fmt.Sprintf("%s\n\nWhat does \"%s\" mean?", header, question.Card.Spanish)
	b.sendWithKeyboard(chatID, text, rows)
}

func (b *Bot) handleChoiceAnswer(chatID int64, arg string) {
	session := b.session(chatID)
	if session.choice == nil {
		return
	}
	question, ok := session.choice.Current()
	if !ok {
		return
	}
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 || idx >= len(question.Options) {
		return
	}

	correct, err := session.choice.Submit(question.Options[idx], time.Now())
	if err != nil {
		return
	}
	if correct {
		b.send(chatID, "✅ ¡Correcto!")
	} else {
		b.send(chatID, fmt.Sprintf("❌ It was \"%s\".", question.Card.English))
	}

	if session.choice.Complete(time.Now()) {
		b.finishSession(chatID, session.choice)
		return
	}
	b.askChoiceQuestion(chatID)
}

// --- Listening / speaking ---

func (b *Bot) startListening(ctx context.Context, chatID int64) {
	b.resetSession(chatID)

	if !b.speechEnabled {
		b.send(chatID, "🔇 Listen & Speak needs a speech backend and none is configured. The other practice modes still work!")
		return
	}

	cards := b.catalog.All()
	if len(cards) > listeningSessionCards {
		cards = cards[:listeningSessionCards]
	}
	listening, err := quiz.NewListening(cards, time.Now())
	if err != nil {
		b.send(chatID, "No cards available for a listening session.")
		return
	}

	session := b.session(chatID)
	session.mode = quiz.ModeListening
	session.listening = listening
	b.askListeningCard(ctx, chatID)
}

func (b *Bot) askListeningCard(ctx context.Context, chatID int64) {
	session := b.session(chatID)
	card, ok := session.listening.Current()
	if !ok {
		b.finishSession(chatID, session.listening)
		return
	}

	text := fmt.Sprintf("Card %d of %d\n\n🇬🇧 %s\n\nListen and say it in Spanish — send a voice message or type it.",
		session.listening.QuestionNumber(), session.listening.TotalQuestions(), card.English)
	b.sendWithKeyboard(chatID, text, [][]MenuButton{
		{{Text: "🔊 Play again", CallbackData: "listen_play"}, {Text: "Skip", CallbackData: "listen_skip"}},
		{{Text: "« Quit", CallbackData: "menu"}},
	})
	b.playCurrentCard(ctx, chatID)
}

// playCurrentCard synthesizes the Spanish text and sends it as a voice note
func (b *Bot) playCurrentCard(ctx context.Context, chatID int64) {
	session := b.session(chatID)
	if session.listening == nil {
		return
	}
	card, ok := session.listening.Current()
	if !ok {
		return
	}

	audio, err := b.speaker.Speak(ctx, card.Spanish, speech.LangSpanish)
	if err != nil {
		if errors.Is(err, speech.ErrUnavailable) {
			b.send(chatID, "🔇 Text-to-speech is unavailable; read the pronunciation hint instead: "+card.Pronunciation)
		} else {
			log.Printf("Failed to synthesize speech: %v", err)
		}
		return
	}

	voice := tgbotapi.NewVoice(chatID, tgbotapi.FileBytes{Name: "card.ogg", Bytes: audio})
	if _, err := b.api.Send(voice); err != nil {
		log.Printf("Failed to send voice message: %v", err)
	}
}

// handleVoice downloads a voice reply and runs it through the recognizer
func (b *Bot) handleVoice(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	session := b.session(chatID)
	if session.mode != quiz.ModeListening || session.listening == nil {
		return
	}

	url, err := b.api.GetFileDirectURL(message.Voice.FileID)
	if err != nil {
		log.Printf("Failed to resolve voice file: %v", err)
		return
	}
	audio, err := downloadFile(ctx, url)
	if err != nil {
		log.Printf("Failed to download voice file: %v", err)
		return
	}

	transcript, err := b.recognizer.Recognize(ctx, audio, speech.LangSpanish)
	switch {
	case errors.Is(err, speech.ErrUnavailable):
		b.send(chatID, "🔇 Speech recognition is unavailable; type your answer instead.")
		return
	case errors.Is(err, speech.ErrNoSpeech):
		b.send(chatID, "I couldn't hear anything — try again.")
		return
	case err != nil:
		log.Printf("Failed to recognize speech: %v", err)
		b.send(chatID, "Something went wrong understanding you; try again or type the answer.")
		return
	}

	b.send(chatID, fmt.Sprintf("I heard: \"%s\"", transcript))
	b.submitTranscript(ctx, chatID, transcript)
}

func (b *Bot) submitTranscript(ctx context.Context, chatID int64, transcript string) {
	session := b.session(chatID)
	if session.listening == nil {
		return
	}
	card, ok := session.listening.Current()
	if !ok {
		return
	}

	correct, err := session.listening.SubmitTranscript(transcript, time.Now())
	if err != nil {
		return
	}
	if correct {
		b.send(chatID, "✅ ¡Perfecto!")
	} else {
		b.send(chatID, fmt.Sprintf("❌ The correct answer was: %s (%s)", card.Spanish, card.Pronunciation))
	}

	if session.listening.Complete(time.Now()) {
		b.finishSession(chatID, session.listening)
		return
	}
	b.askListeningCard(ctx, chatID)
}

func downloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// --- Match pairs ---

func (b *Bot) startMatchPairs(chatID int64) {
	b.resetSession(chatID)

	pairs, err := quiz.NewMatchPairs(b.catalog.All(), time.Now())
	if err != nil {
		b.send(chatID, "No cards available for match pairs.")
		return
	}

	session := b.session(chatID)
	session.mode = quiz.ModeMatchPairs
	session.pairs = pairs
	session.boardMsgID = b.sendWithKeyboard(chatID, b.boardText(session), b.boardButtons(session))
}

func (b *Bot) boardText(session *chatSession) string {
	return fmt.Sprintf("🃏 Match the Spanish words with their translations.\nPairs found: %d of %d",
		session.pairs.Score(), session.pairs.Pairs())
}

func (b *Bot) boardButtons(session *chatSession) [][]MenuButton {
	tiles := session.pairs.Tiles()
	var rows [][]MenuButton
	var row []MenuButton
	for _, tile := range tiles {
		label := "❓"
		if tile.Matched {
			label = "✅ " + tile.Text
		} else if session.pairs.Revealed(tile.ID) {
			label = tile.Text
		}
		row = append(row, MenuButton{Text: label, CallbackData: "tile_" + strconv.Itoa(tile.ID)})
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []MenuButton{{Text: "« Quit", CallbackData: "menu"}})
	return rows
}

func (b *Bot) redrawBoard(chatID int64) {
	session := b.session(chatID)
	if session.pairs == nil || session.boardMsgID == 0 {
		return
	}
	b.editKeyboard(chatID, session.boardMsgID, b.boardText(session), b.boardButtons(session))
}

func (b *Bot) handleTileReveal(chatID int64, arg string) {
	session := b.session(chatID)
	if session.pairs == nil {
		return
	}
	tileID, err := strconv.Atoi(arg)
	if err != nil {
		return
	}

	outcome, err := session.pairs.Reveal(tileID, time.Now())
	if err != nil {
		return
	}

	switch outcome {
	case quiz.TurnIgnored:
		return
	case quiz.TurnRevealed, quiz.TurnMatched:
		b.redrawBoard(chatID)
	case quiz.TurnMismatched:
		b.redrawBoard(chatID)
		// Hide the pair again after the fixed reveal delay; the timer is
		// cancelled if the session is torn down first.
		session.concealTimer = time.AfterFunc(mismatchedPairDelay, func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			current := b.session(chatID)
			if current != session || current.pairs == nil {
				return
			}
			current.pairs.Conceal()
			b.redrawBoard(chatID)
		})
	}

	if session.pairs.Complete(time.Now()) {
		b.finishSession(chatID, session.pairs)
	}
}

// --- Time challenge ---

func (b *Bot) startTimeChallenge(chatID int64) {
	b.resetSession(chatID)

	timed, err := quiz.NewTimeChallenge(b.catalog.All(), time.Now())
	if err != nil {
		b.send(chatID, "No cards available for a time challenge.")
		return
	}

	session := b.session(chatID)
	session.mode = quiz.ModeTimeChallenge
	session.timed = timed

	// Close the session when the clock runs out, even if the user stops
	// answering. Cancelled on teardown so it cannot outlive the session.
	session.expireTimer = time.AfterFunc(timed.Remaining(time.Now()), func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		current := b.session(chatID)
		if current != session || current.timed == nil {
			return
		}
		b.finishSession(chatID, current.timed)
	})

	b.send(chatID, "⚡ Time Challenge: translate as many words as you can in 60 seconds!")
	b.askTimeChallengeQuestion(chatID)
}

func (b *Bot) askTimeChallengeQuestion(chatID int64) {
	session := b.session(chatID)
	now := time.Now()
	card, options, ok := session.timed.Current(now)
	if !ok {
		b.finishSession(chatID, session.timed)
		return
	}

	var rows [][]MenuButton
	for i, option := range options {
		rows = append(rows, []MenuButton{{Text: option, CallbackData: "tc_ans_" + strconv.Itoa(i)}})
	}
	rows = append(rows, []MenuButton{{Text: "« Quit", CallbackData: "menu"}})

	text := fmt.Sprintf("⏱ %ds left  ·  Score %d\n\n\"%s\"",
		int(session.timed.Remaining(now)/time.Second), session.timed.Score(), card.Spanish)
	b.sendWithKeyboard(chatID, text, rows)
}

func (b *Bot) handleTimeChallengeAnswer(chatID int64, arg string) {
	session := b.session(chatID)
	if session.timed == nil {
		return
	}
	now := time.Now()
	card, options, ok := session.timed.Current(now)
	if !ok {
		b.finishSession(chatID, session.timed)
		return
	}
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 0 || idx >= len(options) {
		return
	}

	correct, err := session.timed.Submit(options[idx], now)
	if err != nil {
		// The budget ran out while the answer was in flight
		b.finishSession(chatID, session.timed)
		return
	}
	if !correct {
		b.send(chatID, fmt.Sprintf("❌ \"%s\" is \"%s\"", card.Spanish, card.English))
	}
	b.askTimeChallengeQuestion(chatID)
}

// --- Session completion ---

// finishSession finalizes any completed engine, feeds the result to the
// progress store and shows the summary
func (b *Bot) finishSession(chatID int64, session quiz.Session) {
	now := time.Now()
	result, err := session.Finalize(now)
	if err != nil {
		// Already finalized, e.g. a stale expiry timer racing a quit
		return
	}
	mode := session.Mode()
	b.resetSession(chatID)

	if err := b.store.ApplySessionResult(mode, result, now); err != nil {
		log.Printf("Failed to apply session result: %v", err)
	}

	stats := b.store.Stats()
	text := fmt.Sprintf("🏁 Session over!\n\nScore: %d / %d\nTime: %ds\nXP: %d (level %d)",
		result.Score, result.TotalQuestions, result.ElapsedSeconds, stats.XP, stats.Level)
	if result.Score == result.TotalQuestions {
		text += "\n\n🌟 Perfect score!"
	}
	b.send(chatID, text)
	b.showMainMenu(chatID)
}
