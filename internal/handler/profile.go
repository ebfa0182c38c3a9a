package handler

import (
	"fmt"
	"strings"

	"idiomastery/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleProfile shows the dashboard: word count, streak and best games
func (h *Handler) handleProfile(c tele.Context) error {
	userID := c.Sender().ID
	h.ResetState(userID)

	stats, err := h.statsService.Dashboard(userID)
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not load your profile. Please try again.", mainMenuMarkup())
	}

	user, err := h.authService.User(userID)
	if err != nil {
		h.logger.Warn("Failed to load user", zap.Int64("user_id", userID), zap.Error(err))
	}

	var sb strings.Builder
	name := "learner"
	if user != nil && user.DisplayName != "" {
		name = user.DisplayName
	}
	sb.WriteString(fmt.Sprintf("👤 *%s*\n\n", name))
	sb.WriteString(fmt.Sprintf("📚 Words saved: *%d*\n", stats.TotalEntries))
	sb.WriteString(fmt.Sprintf("🔥 Streak: *%d* day(s)\n\n", stats.CurrentStreak))

	sb.WriteString(fmt.Sprintf("❓ Quizzes taken: *%d*\n", stats.QuizzesTaken))
	if stats.QuizzesTaken > 0 {
		sb.WriteString(fmt.Sprintf("🏅 Best quiz: *%d/%d*\n", stats.BestScore, stats.BestTotal))
	}
	sb.WriteString(fmt.Sprintf("\n🃏 Matches played: *%d*\n", stats.MatchesPlayed))
	if stats.MatchesPlayed > 0 {
		sb.WriteString(fmt.Sprintf("🏅 Best combo: *%d*\n", stats.HighestCombo))
	}

	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnSetName),
		menu.Row(btnDeleteAccount),
		menu.Row(btnMainMenu),
	)
	return h.editOrSend(c, sb.String(), tele.ModeMarkdown, menu)
}

// handleSetName starts the display name flow
func (h *Handler) handleSetName(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingDisplayName})
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return h.editOrSend(c, "✏️ Send me your new display name:", menu)
}

// handleDeleteAccount asks for the password before deleting anything
func (h *Handler) handleDeleteAccount(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingDeletePassword})
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return h.editOrSend(c,
		"⚠️ This deletes your account and every saved word.\n\nEnter the access password to confirm:",
		menu)
}
