package handler

import (
	"strings"
	"unicode"

	"idiomastery/internal/domain"
	"idiomastery/internal/repository/postgres"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	// If message is not modified, it means it was already edited by another callback
	// Just acknowledge and return nil - don't send new message
	if strings.Contains(errStr, "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// editOrSend edits the message behind the callback, falling back to a
// fresh message when editing fails. Plain messages are always sent.
func (h *Handler) editOrSend(c tele.Context, what interface{}, opts ...interface{}) error {
	if c.Callback() == nil {
		return c.Send(what, opts...)
	}
	if err := h.handleEditError(c.Edit(what, opts...), c, c.Sender().ID); err != nil {
		return c.Send(what, opts...)
	}
	return nil
}

// storeErrorMessage translates a storage error into a user-facing reply
func (h *Handler) storeErrorMessage(err error) string {
	return postgres.UserMessage(err)
}

// handleCallback handles the dynamic callback queries the static button
// handlers don't cover
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	unique := callback.Unique

	// Raw payloads carry the "\funique|data" form when telebot didn't
	// split them for us
	if unique == "" && strings.Contains(data, "|") {
		parts := strings.SplitN(data, "|", 2)
		unique, data = parts[0], parts[1]
	}

	h.logger.Debug("Processing callback",
		zap.String("unique", unique),
		zap.String("data", data),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch unique {
	case "topic":
		return h.fetchTopic(c, data)
	case "del":
		return h.handleDeleteWord(c, data)
	case "cat":
		return h.showDictionary(c, data)
	case "qnum":
		return h.handleQuizLength(c, data)
	case "qmode":
		return h.handleQuizStart(c, data)
	case "ans":
		return h.handleQuizAnswer(c, data)
	case "mmode":
		return h.handleMatchStart(c, data)
	case "card_l":
		return h.handleMatchPick(c, domain.SideLeft, data)
	case "card_r":
		return h.handleMatchPick(c, domain.SideRight, data)
	case "noop":
		return h.handleNoop(c)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("unique", unique),
		zap.String("data", data),
		zap.Int64("user_id", c.Sender().ID),
	)
	return c.Respond(&tele.CallbackResponse{})
}
