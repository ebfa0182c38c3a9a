package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"idiomastery/internal/domain"
	"idiomastery/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// matchResolveDelay is how long a picked pair stays highlighted before
// the board redraws
const matchResolveDelay = 400 * time.Millisecond

// handleMatchMenu asks for a direction before dealing a board
func (h *Handler) handleMatchMenu(c tele.Context) error {
	userID := c.Sender().ID
	h.ResetState(userID)
	h.stopActiveSessions(userID)

	count, err := h.dictionaryService.Count(userID)
	if err != nil {
		h.logger.Error("Failed to count entries", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Something went wrong. Please try again later.", mainMenuMarkup())
	}
	if count < domain.MatchSlots {
		menu := &tele.ReplyMarkup{}
		menu.Inline(menu.Row(btnLearn), menu.Row(btnMainMenu))
		return h.editOrSend(c,
			fmt.Sprintf("You need at least %d saved words for the match game (you have %d). Learn some first! 📖",
				domain.MatchSlots, count),
			menu)
	}

	return h.editOrSend(c, "🃏 *Match game*\n\nWhich direction?", tele.ModeMarkdown, modeMarkup("mmode"))
}

// handleMatchStart deals a board and starts the countdown. Stale or
// replayed direction buttons must not leave a second session running.
func (h *Handler) handleMatchStart(c tele.Context, data string) error {
	userID := c.Sender().ID
	chat := c.Chat()

	h.stopActiveSessions(userID)

	mode, err := domain.ParseMode(data)
	if err != nil {
		return c.Send("Something went wrong. Please try again.", mainMenuMarkup())
	}

	entries, err := h.dictionaryService.Entries(userID)
	if err != nil {
		h.logger.Error("Failed to load entries", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Something went wrong. Please try again later.", mainMenuMarkup())
	}

	var session *service.MatchSession
	session, err = h.matchService.NewSession(userID, entries, mode, service.MatchConfig{
		TimeLimit:    h.opts.MatchTimeLimit,
		ResolveDelay: matchResolveDelay,
		OnResolve: func(bool) {
			h.redrawBoard(userID, session)
		},
		OnEnd: func(scores domain.MatchScores) {
			h.clearMatchSession(userID, session)
			h.sendMatchResults(chat, scores)
		},
	})
	if err != nil {
		h.logger.Warn("Failed to start match", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send("Could not start the game. Learn a few more words and try again!", mainMenuMarkup())
	}

	h.setMatchSession(userID, session)
	session.Start()

	return h.renderBoard(c, session)
}

// renderBoard draws the two columns as an inline keyboard and remembers
// the message so resolve callbacks can redraw it
func (h *Handler) renderBoard(c tele.Context, session *service.MatchSession) error {
	text, menu := boardView(session)

	if err := h.editOrSend(c, text, menu); err != nil {
		return err
	}

	if msg := c.Message(); msg != nil {
		h.sessionMux.Lock()
		h.matchBoards[c.Sender().ID] = msg
		h.sessionMux.Unlock()
	}
	return nil
}

// redrawBoard refreshes the board message after a deferred pair
// resolution, as long as the session is still the active one
func (h *Handler) redrawBoard(userID int64, session *service.MatchSession) {
	h.sessionMux.Lock()
	current := h.matchSessions[userID]
	msg := h.matchBoards[userID]
	h.sessionMux.Unlock()

	if current != session || msg == nil || session.State() != service.MatchRunning {
		return
	}

	text, menu := boardView(session)
	if _, err := h.bot.Edit(msg, text, menu); err != nil {
		if !strings.Contains(err.Error(), "message is not modified") {
			h.logger.Warn("Failed to redraw match board", zap.Int64("user_id", userID), zap.Error(err))
		}
	}
}

// boardView renders the board and score line for the current state
func boardView(session *service.MatchSession) (string, *tele.ReplyMarkup) {
	left, right := session.Board()
	selectedLeft, selectedRight := session.Selected()
	scores := session.Scores()

	menu := &tele.ReplyMarkup{}
	var rows []tele.Row
	for i := 0; i < domain.MatchSlots; i++ {
		rows = append(rows, menu.Row(
			boardButton(menu, left[i], selectedLeft, "card_l", i),
			boardButton(menu, right[i], selectedRight, "card_r", i),
		))
	}
	rows = append(rows, menu.Row(btnEndMatch))
	menu.Inline(rows...)

	text := fmt.Sprintf(
		"🃏 Match the pairs!\n⏱ %ds left  |  ✅ %d  ❌ %d  🔥 combo %d",
		session.TimeLeft(), scores.Correct, scores.Wrong, scores.Combo,
	)
	return text, menu
}

func boardButton(menu *tele.ReplyMarkup, card *domain.Card, selectedID, unique string, slot int) tele.Btn {
	if card == nil {
		return menu.Data("✔️", "noop", "")
	}
	text := card.Text
	if selectedID != "" && card.EntryID == selectedID {
		text = "▶️ " + text
	}
	return menu.Data(text, unique, strconv.Itoa(slot))
}

// handleMatchPick applies a card click and redraws the board
func (h *Handler) handleMatchPick(c tele.Context, side domain.Side, data string) error {
	userID := c.Sender().ID

	session := h.getMatchSession(userID)
	if session == nil {
		return h.handleStart(c)
	}

	slot, err := strconv.Atoi(data)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{})
	}

	if !session.Select(side, slot) {
		return c.Respond(&tele.CallbackResponse{})
	}

	if err := c.Respond(&tele.CallbackResponse{}); err != nil {
		h.logger.Warn("Failed to answer callback", zap.Error(err))
	}
	return h.renderBoard(c, session)
}

// handleEndMatch finishes the game early, keeping the score
func (h *Handler) handleEndMatch(c tele.Context) error {
	userID := c.Sender().ID

	session := h.getMatchSession(userID)
	if session == nil {
		return h.handleStart(c)
	}

	session.End()
	return c.Respond(&tele.CallbackResponse{})
}

// sendMatchResults posts the final score once the session ends, from
// the countdown goroutine or an explicit end
func (h *Handler) sendMatchResults(chat *tele.Chat, scores domain.MatchScores) {
	text := fmt.Sprintf(
		"🏁 Time's up!\n\n✅ Correct: %d\n❌ Wrong: %d\n🔥 Best combo: %d",
		scores.Correct, scores.Wrong, scores.HighestCombo,
	)

	menu := &tele.ReplyMarkup{}
	menu.Inline(menu.Row(btnMatch), menu.Row(btnMainMenu))
	if _, err := h.bot.Send(chat, text, menu); err != nil {
		h.logger.Warn("Failed to send match results", zap.Error(err))
	}
}

// handleNoop answers clicks on empty board slots
func (h *Handler) handleNoop(c tele.Context) error {
	return c.Respond(&tele.CallbackResponse{})
}
