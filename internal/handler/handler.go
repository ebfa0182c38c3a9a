package handler

import (
	"sync"
	"time"

	"idiomastery/internal/domain"
	"idiomastery/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Options carries the game tunables the handler needs
type Options struct {
	MatchTimeLimit int
	FetchCooldown  time.Duration
}

// Handler manages all bot interactions
type Handler struct {
	bot               *tele.Bot
	authService       *service.AuthService
	dictionaryService *service.DictionaryService
	quizService       *service.QuizService
	matchService      *service.MatchService
	statsService      *service.StatsService
	opts              Options
	logger            *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Active game sessions, one of each kind per user
	quizSessions  map[int64]*service.QuizSession
	quizSetups    map[int64]int // chosen question count while picking a mode
	matchSessions map[int64]*service.MatchSession
	matchBoards   map[int64]*tele.Message // the message showing the match board
	sessionMux    sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	dictionaryService *service.DictionaryService,
	quizService *service.QuizService,
	matchService *service.MatchService,
	statsService *service.StatsService,
	opts Options,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:               bot,
		authService:       authService,
		dictionaryService: dictionaryService,
		quizService:       quizService,
		matchService:      matchService,
		statsService:      statsService,
		opts:              opts,
		logger:            logger,
		states:            make(map[int64]*domain.StateData),
		quizSessions:      make(map[int64]*service.QuizSession),
		quizSetups:        make(map[int64]int),
		matchSessions:     make(map[int64]*service.MatchSession),
		matchBoards:       make(map[int64]*tele.Message),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnLearn, h.handleLearn)
	h.bot.Handle(&btnDictionary, h.handleDictionary)
	h.bot.Handle(&btnQuiz, h.handleQuizMenu)
	h.bot.Handle(&btnMatch, h.handleMatchMenu)
	h.bot.Handle(&btnProfile, h.handleProfile)
	h.bot.Handle(&btnAddWord, h.handleAddWord)
	h.bot.Handle(&btnCustomTopic, h.handleCustomTopic)
	h.bot.Handle(&btnImportCSV, h.handleImportCSV)
	h.bot.Handle(&btnEndMatch, h.handleEndMatch)
	h.bot.Handle(&btnSetName, h.handleSetName)
	h.bot.Handle(&btnDeleteAccount, h.handleDeleteAccount)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

func (h *Handler) getQuizSession(userID int64) *service.QuizSession {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	return h.quizSessions[userID]
}

func (h *Handler) setQuizSession(userID int64, session *service.QuizSession) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	if session == nil {
		delete(h.quizSessions, userID)
	} else {
		h.quizSessions[userID] = session
	}
}

func (h *Handler) getMatchSession(userID int64) *service.MatchSession {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()
	return h.matchSessions[userID]
}

func (h *Handler) setMatchSession(userID int64, session *service.MatchSession) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	// A replaced session must not keep counting down in the background
	if old, ok := h.matchSessions[userID]; ok && old != session {
		old.Stop()
	}

	if session == nil {
		delete(h.matchSessions, userID)
		delete(h.matchBoards, userID)
	} else {
		h.matchSessions[userID] = session
	}
}

// clearMatchSession removes the user's match session only when it is
// still the given one, so a finished orphan cannot evict its successor
func (h *Handler) clearMatchSession(userID int64, session *service.MatchSession) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	if h.matchSessions[userID] == session {
		delete(h.matchSessions, userID)
		delete(h.matchBoards, userID)
	}
}

// stopActiveSessions tears down any running games, releasing the match
// countdown timer without recording a result
func (h *Handler) stopActiveSessions(userID int64) {
	h.sessionMux.Lock()
	defer h.sessionMux.Unlock()

	if session, ok := h.matchSessions[userID]; ok {
		session.Stop()
		delete(h.matchSessions, userID)
	}
	delete(h.matchBoards, userID)
	delete(h.quizSessions, userID)
	delete(h.quizSetups, userID)
}

// Inline keyboard buttons
var (
	btnLearn = tele.Btn{
		Unique: "learn",
		Text:   "📖 Learn new words",
	}
	btnDictionary = tele.Btn{
		Unique: "dictionary",
		Text:   "📚 My dictionary",
	}
	btnQuiz = tele.Btn{
		Unique: "quiz",
		Text:   "❓ Quiz",
	}
	btnMatch = tele.Btn{
		Unique: "match",
		Text:   "🃏 Match game",
	}
	btnProfile = tele.Btn{
		Unique: "profile",
		Text:   "👤 Profile",
	}
	btnAddWord = tele.Btn{
		Unique: "add_word",
		Text:   "✍️ Add a word",
	}
	btnCustomTopic = tele.Btn{
		Unique: "custom_topic",
		Text:   "💬 Custom topic",
	}
	btnImportCSV = tele.Btn{
		Unique: "import_csv",
		Text:   "📄 Import starter list",
	}
	btnEndMatch = tele.Btn{
		Unique: "end_match",
		Text:   "🏁 End game",
	}
	btnSetName = tele.Btn{
		Unique: "set_name",
		Text:   "✏️ Change display name",
	}
	btnDeleteAccount = tele.Btn{
		Unique: "delete_account",
		Text:   "🗑 Delete account",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnLearn),
		menu.Row(btnDictionary),
		menu.Row(btnQuiz, btnMatch),
		menu.Row(btnProfile),
	)
	return menu
}
