package handler

import (
	"fmt"
	"strings"

	"idiomastery/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// learnTopics are the suggested topics for generated vocabulary
var learnTopics = []string{
	"food", "travel", "family", "emotions",
	"technology", "sports", "nature", "daily routine",
}

const dictionaryPageSize = 15

// handleLearn shows the ways to grow the dictionary: generated topic
// packs, manual entry and the bundled starter list
func (h *Handler) handleLearn(c tele.Context) error {
	userID := c.Sender().ID
	h.ResetState(userID)

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for i := 0; i < len(learnTopics); i += 2 {
		row := tele.Row{menu.Data("🔹 "+learnTopics[i], "topic", learnTopics[i])}
		if i+1 < len(learnTopics) {
			row = append(row, menu.Data("🔹 "+learnTopics[i+1], "topic", learnTopics[i+1]))
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		menu.Row(btnCustomTopic),
		menu.Row(btnAddWord),
		menu.Row(btnImportCSV),
		menu.Row(btnMainMenu),
	)
	menu.Inline(rows...)

	text := "📖 *Learn new words*\n\nPick a topic to fetch a fresh word pack, or add words yourself:"
	return h.editOrSend(c, text, tele.ModeMarkdown, menu)
}

// handleDictionary lists the user's saved words with delete buttons
func (h *Handler) handleDictionary(c tele.Context) error {
	return h.showDictionary(c, "")
}

func (h *Handler) showDictionary(c tele.Context, category string) error {
	userID := c.Sender().ID
	h.ResetState(userID)

	entries, err := h.dictionaryService.EntriesByCategory(userID, category)
	if err != nil {
		h.logger.Error("Failed to load dictionary", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not load your dictionary. Please try again.", mainMenuMarkup())
	}

	if len(entries) == 0 {
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(btnLearn), menu.Row(btnMainMenu))
		return h.editOrSend(c, "Your dictionary is empty. Let's learn some words! 📖", menu)
	}

	categories, err := h.dictionaryService.Categories(userID)
	if err != nil {
		h.logger.Warn("Failed to load categories", zap.Int64("user_id", userID), zap.Error(err))
	}

	var sb strings.Builder
	title := "📚 *Your dictionary*"
	if category != "" && category != "All" {
		title = fmt.Sprintf("📚 *Your dictionary: %s*", category)
	}
	sb.WriteString(fmt.Sprintf("%s (%d words)\n\n", title, len(entries)))

	shown := entries
	if len(shown) > dictionaryPageSize {
		shown = shown[:dictionaryPageSize]
	}

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for _, entry := range shown {
		sb.WriteString(fmt.Sprintf("• *%s* → %s\n", entry.Translations.English, entry.Translations.Spanish))
		rows = append(rows, menu.Row(menu.Data(
			"🗑 "+entry.Translations.English, "del", entry.ID,
		)))
	}
	if len(entries) > dictionaryPageSize {
		sb.WriteString(fmt.Sprintf("\n…and %d more.\n", len(entries)-dictionaryPageSize))
	}

	if len(categories) > 1 {
		var catRow tele.Row
		catRow = append(catRow, menu.Data("📂 All", "cat", "All"))
		for _, cat := range categories {
			if len(catRow) == 3 {
				rows = append(rows, catRow)
				catRow = nil
			}
			catRow = append(catRow, menu.Data("📂 "+cat, "cat", cat))
		}
		if len(catRow) > 0 {
			rows = append(rows, catRow)
		}
	}

	rows = append(rows, menu.Row(btnMainMenu))
	menu.Inline(rows...)

	return h.editOrSend(c, sb.String(), tele.ModeMarkdown, menu)
}

// handleDeleteWord removes a single entry by id
func (h *Handler) handleDeleteWord(c tele.Context, entryID string) error {
	userID := c.Sender().ID

	if err := h.dictionaryService.Remove(userID, entryID); err != nil {
		h.logger.Error("Failed to delete entry",
			zap.Int64("user_id", userID),
			zap.String("entry_id", entryID),
			zap.Error(err),
		)
		return c.Send("Could not delete the word. Please try again.")
	}

	if err := c.Respond(&tele.CallbackResponse{Text: "Deleted ✅"}); err != nil {
		h.logger.Warn("Failed to answer callback", zap.Error(err))
	}
	return h.showDictionary(c, "")
}

// handleCustomTopic asks for a free-form topic to fetch words about
func (h *Handler) handleCustomTopic(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingTopic})
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return h.editOrSend(c, "💬 What topic would you like to learn words about?", menu)
}

// handleAddWord starts the manual two-step add flow
func (h *Handler) handleAddWord(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingWord})
	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnCancel))
	return h.editOrSend(c, "✍️ Send me the English word:", menu)
}

// handleImportCSV loads the bundled starter word list
func (h *Handler) handleImportCSV(c tele.Context) error {
	userID := c.Sender().ID
	h.ResetState(userID)

	imported, err := h.dictionaryService.ImportCSV(userID)
	if err != nil {
		h.logger.Error("Failed to import starter list", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not import the starter list. Please try again.", mainMenuMarkup())
	}

	return c.Send(
		fmt.Sprintf("Imported %d starter words into your dictionary! 🎉", imported),
		mainMenuMarkup(),
	)
}
