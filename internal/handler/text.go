package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"idiomastery/internal/domain"
	"idiomastery/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText routes free-form messages through the user's state machine
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingPassword:
		return h.handlePasswordInput(c, text)
	case domain.StateWaitingWord:
		return h.handleWordInput(c, text)
	case domain.StateWaitingTranslation:
		return h.handleTranslationInput(c, state, text)
	case domain.StateWaitingTopic:
		return h.handleTopicInput(c, text)
	case domain.StateWaitingDisplayName:
		return h.handleDisplayNameInput(c, text)
	case domain.StateWaitingDeletePassword:
		return h.handleDeletePasswordInput(c, text)
	}

	return c.Send("I didn't catch that. Use the menu below 👇", mainMenuMarkup())
}

func (h *Handler) handlePasswordInput(c tele.Context, password string) error {
	userID := c.Sender().ID

	if !h.authService.CheckPassword(password) {
		return c.Send("Wrong password, try again:")
	}

	if err := h.authService.AuthorizeUser(userID); err != nil {
		h.logger.Error("Failed to authorize user", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Something went wrong. Please try again later.")
	}

	h.ResetState(userID)
	return c.Send("You're in! 🎉", mainMenuMarkup())
}

func (h *Handler) handleWordInput(c tele.Context, word string) error {
	userID := c.Sender().ID

	if word == "" {
		return c.Send("Please send the English word:")
	}

	h.SetState(userID, &domain.StateData{
		State:       domain.StateWaitingTranslation,
		CurrentWord: word,
	})
	return c.Send(fmt.Sprintf("Got it: *%s*\nNow send the Spanish translation:", word), tele.ModeMarkdown)
}

func (h *Handler) handleTranslationInput(c tele.Context, state *domain.StateData, translation string) error {
	userID := c.Sender().ID

	if translation == "" {
		return c.Send("Please send the Spanish translation:")
	}

	_, err := h.dictionaryService.SaveEntry(domain.Entry{
		UserID:   userID,
		Category: "general",
		Translations: domain.Translations{
			English: state.CurrentWord,
			Spanish: translation,
		},
	})
	if err != nil {
		h.logger.Error("Failed to save entry",
			zap.Int64("user_id", userID),
			zap.String("word", state.CurrentWord),
			zap.Error(err),
		)
		return c.Send(h.storeErrorMessage(err), mainMenuMarkup())
	}

	h.ResetState(userID)
	return c.Send(
		fmt.Sprintf("Saved: *%s* → *%s* ✅", state.CurrentWord, translation),
		tele.ModeMarkdown, mainMenuMarkup(),
	)
}

func (h *Handler) handleTopicInput(c tele.Context, topic string) error {
	return h.fetchTopic(c, topic)
}

func (h *Handler) handleDisplayNameInput(c tele.Context, name string) error {
	userID := c.Sender().ID

	if err := h.authService.UpdateProfile(userID, name, ""); err != nil {
		h.logger.Error("Failed to update profile", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not update your profile. Please try again.", mainMenuMarkup())
	}

	h.ResetState(userID)
	return c.Send(fmt.Sprintf("Nice to meet you, %s! ✅", name), mainMenuMarkup())
}

func (h *Handler) handleDeletePasswordInput(c tele.Context, password string) error {
	userID := c.Sender().ID

	if err := h.authService.DeleteAccount(userID, password); err != nil {
		h.ResetState(userID)
		h.logger.Warn("Account deletion refused", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Password confirmation failed. Your account was NOT deleted.", mainMenuMarkup())
	}

	h.stopActiveSessions(userID)
	h.ResetState(userID)
	h.logger.Info("Account deleted", zap.Int64("user_id", userID))
	return c.Send("Your account and all saved words have been deleted. Goodbye! 👋")
}

// describeWindow renders a cooldown duration for user-facing text
func describeWindow(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return fmt.Sprintf("%d seconds", int(d.Seconds()))
}

// fetchTopic pulls generated vocabulary for a topic into the user's
// dictionary, honoring the per-user cooldown
func (h *Handler) fetchTopic(c tele.Context, topic string) error {
	userID := c.Sender().ID
	h.ResetState(userID)

	if err := c.Send(fmt.Sprintf("Fetching words about *%s*… ⏳", topic), tele.ModeMarkdown); err != nil {
		return err
	}

	entries, err := h.dictionaryService.FetchFromAPI(userID, topic, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrFetchCooldown) {
			return c.Send(
				fmt.Sprintf("You can only fetch words once every %s. Try again soon!",
					describeWindow(h.opts.FetchCooldown)),
				mainMenuMarkup(),
			)
		}
		h.logger.Error("Failed to fetch vocabulary",
			zap.Int64("user_id", userID),
			zap.String("topic", topic),
			zap.Error(err),
		)
		return c.Send("Could not fetch the words. Please try again.", mainMenuMarkup())
	}

	return c.Send(
		fmt.Sprintf("Added %d new words about *%s* to your dictionary! 🎉", len(entries), topic),
		tele.ModeMarkdown, mainMenuMarkup(),
	)
}
