package handler

import (
	"fmt"
	"strconv"
	"strings"

	"idiomastery/internal/domain"
	"idiomastery/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// quizLengths are the offered question counts, filtered down to what
// the user's dictionary can support
var quizLengths = []int{5, 10, 15, 30, 50}

// handleQuizMenu offers the question counts the dictionary can support
func (h *Handler) handleQuizMenu(c tele.Context) error {
	userID := c.Sender().ID
	h.ResetState(userID)
	h.stopActiveSessions(userID)

	count, err := h.dictionaryService.Count(userID)
	if err != nil {
		h.logger.Error("Failed to count entries", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Something went wrong. Please try again later.", mainMenuMarkup())
	}

	var available []int
	for _, n := range quizLengths {
		if count >= n {
			available = append(available, n)
		}
	}

	if len(available) == 0 {
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(btnLearn), menu.Row(btnMainMenu))
		return h.editOrSend(c,
			fmt.Sprintf("You need at least %d saved words for a quiz (you have %d). Learn some first! 📖",
				quizLengths[0], count),
			menu)
	}

	menu := &tele.ReplyMarkup{}
	var row tele.Row
	for _, n := range available {
		row = append(row, menu.Data(strconv.Itoa(n), "qnum", strconv.Itoa(n)))
	}
	menu.Inline(menu.Row(row...), menu.Row(btnMainMenu))

	return h.editOrSend(c, "❓ *Quiz*\n\nHow many questions?", tele.ModeMarkdown, menu)
}

// handleQuizLength stores the chosen count and asks for a direction
func (h *Handler) handleQuizLength(c tele.Context, data string) error {
	userID := c.Sender().ID

	n, err := strconv.Atoi(data)
	if err != nil || n <= 0 {
		return c.Send("Something went wrong. Please try again.", mainMenuMarkup())
	}

	h.sessionMux.Lock()
	h.quizSetups[userID] = n
	h.sessionMux.Unlock()

	return h.editOrSend(c, "Which direction?", modeMarkup("qmode"))
}

// handleQuizStart builds the session and shows the first question
func (h *Handler) handleQuizStart(c tele.Context, data string) error {
	userID := c.Sender().ID

	mode, err := domain.ParseMode(data)
	if err != nil {
		return c.Send("Something went wrong. Please try again.", mainMenuMarkup())
	}

	h.sessionMux.Lock()
	numQuestions := h.quizSetups[userID]
	delete(h.quizSetups, userID)
	h.sessionMux.Unlock()

	if numQuestions == 0 {
		return h.handleQuizMenu(c)
	}

	entries, err := h.dictionaryService.Entries(userID)
	if err != nil {
		h.logger.Error("Failed to load entries", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Something went wrong. Please try again later.", mainMenuMarkup())
	}

	session, err := h.quizService.NewSession(userID, entries, numQuestions, mode)
	if err != nil {
		h.logger.Warn("Failed to start quiz",
			zap.Int64("user_id", userID),
			zap.Int("questions", numQuestions),
			zap.Error(err),
		)
		return c.Send("Could not start the quiz. Learn a few more words and try again!", mainMenuMarkup())
	}

	h.setQuizSession(userID, session)
	return h.sendQuestion(c, session)
}

// sendQuestion renders the current question with its answer buttons
func (h *Handler) sendQuestion(c tele.Context, session *service.QuizSession) error {
	question := session.Current()
	if question == nil {
		return h.sendQuizResults(c, session)
	}

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for i, option := range question.Options {
		rows = append(rows, menu.Row(menu.Data(option, "ans", strconv.Itoa(i))))
	}
	rows = append(rows, menu.Row(btnMainMenu))
	menu.Inline(rows...)

	text := fmt.Sprintf(
		"❓ Question %d/%d\n\nTranslate: *%s*",
		session.Index+1, len(session.Questions), question.Word,
	)
	return h.editOrSend(c, text, tele.ModeMarkdown, menu)
}

// handleQuizAnswer scores the picked option and moves on
func (h *Handler) handleQuizAnswer(c tele.Context, data string) error {
	userID := c.Sender().ID

	session := h.getQuizSession(userID)
	if session == nil {
		return h.handleStart(c)
	}

	question := session.Current()
	if question == nil {
		return h.sendQuizResults(c, session)
	}

	idx, err := strconv.Atoi(data)
	if err != nil || idx < 0 || idx >= len(question.Options) {
		return c.Respond(&tele.CallbackResponse{Text: "Please pick one of the options."})
	}
	answer := question.Options[idx]

	correct := answer == question.CorrectTranslation
	finished := h.quizService.Answer(session, answer)

	feedback := "Correct! ✅"
	if !correct {
		feedback = fmt.Sprintf("Wrong ❌ It was: %s", question.CorrectTranslation)
	}
	if err := c.Respond(&tele.CallbackResponse{Text: feedback}); err != nil {
		h.logger.Warn("Failed to answer callback", zap.Error(err))
	}

	if finished {
		return h.sendQuizResults(c, session)
	}
	return h.sendQuestion(c, session)
}

// sendQuizResults shows the final score and clears the session
func (h *Handler) sendQuizResults(c tele.Context, session *service.QuizSession) error {
	userID := c.Sender().ID
	h.setQuizSession(userID, nil)

	total := len(session.Questions)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏁 *Quiz finished!*\n\nScore: *%d/%d*\n", session.Score, total))

	switch {
	case session.Score == total:
		sb.WriteString("\nPerfect! 🌟")
	case session.Score*2 >= total:
		sb.WriteString("\nNice work, keep it up! 💪")
	default:
		sb.WriteString("\nKeep practicing, you'll get there! 📖")
	}

	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnQuiz), menu.Row(btnMainMenu))
	return h.editOrSend(c, sb.String(), tele.ModeMarkdown, menu)
}

// modeMarkup builds a keyboard of translation directions with the
// given callback prefix
func modeMarkup(unique string) *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, mode := range domain.Modes {
		rows = append(rows, menu.Row(menu.Data(modeLabel(mode), unique, string(mode))))
	}
	rows = append(rows, menu.Row(btnMainMenu))
	menu.Inline(rows...)
	return menu
}

func modeLabel(mode domain.Mode) string {
	return fmt.Sprintf("%s → %s", languageLabel(mode.Source()), languageLabel(mode.Target()))
}

func languageLabel(lang domain.Language) string {
	switch lang {
	case domain.Polish:
		return "🇵🇱 Polish"
	case domain.English:
		return "🇬🇧 English"
	case domain.Spanish:
		return "🇪🇸 Spanish"
	}
	return string(lang)
}
