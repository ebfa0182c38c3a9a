package handler

import (
	"idiomastery/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart greets the user, asking for the password when they are
// not yet authorized. Also serves as the "main menu" target, tearing
// down any game in progress.
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.stopActiveSessions(userID)
	h.ResetState(userID)

	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}

	if !authorized {
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingPassword})
		return c.Send("Welcome to IdioMastery! 🌍\nPlease enter the access password:")
	}

	text := "Welcome back to IdioMastery! 🌍\nWhat would you like to do?"
	if c.Callback() != nil {
		if err := h.handleEditError(c.Edit(text, mainMenuMarkup()), c, userID); err == nil {
			return nil
		}
	}
	return c.Send(text, mainMenuMarkup())
}

// handleCancel aborts whatever flow the user is in
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.stopActiveSessions(userID)
	h.ResetState(userID)

	return h.handleStart(c)
}
