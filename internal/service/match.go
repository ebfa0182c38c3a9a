package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"idiomastery/internal/domain"
	"idiomastery/internal/repository"

	"go.uber.org/zap"
)

// MatchState is the lifecycle phase of a match session
type MatchState string

const (
	MatchIdle    MatchState = "idle"
	MatchRunning MatchState = "running"
	MatchEnded   MatchState = "ended"
)

// MatchConfig tunes one match session
type MatchConfig struct {
	TimeLimit int // seconds

	// ResolveDelay is how long a picked pair stays highlighted before
	// the board updates. Zero resolves synchronously.
	ResolveDelay time.Duration

	OnTick    func(timeLeft int)
	OnResolve func(correct bool)
	OnEnd     func(scores domain.MatchScores)

	// Rand overrides the session's randomness source (tests)
	Rand *rand.Rand
}

// MatchService runs timed matching sessions and records their results
type MatchService struct {
	resultRepo repository.ResultRepository
	streaks    *StreakService
	logger     *zap.Logger
}

// NewMatchService creates a new match service
func NewMatchService(resultRepo repository.ResultRepository, streaks *StreakService, logger *zap.Logger) *MatchService {
	return &MatchService{
		resultRepo: resultRepo,
		streaks:    streaks,
		logger:     logger,
	}
}

// MatchSession is a two-column matching game over a fixed time budget.
// All methods are safe for concurrent use.
type MatchSession struct {
	userID  int64
	entries []domain.Entry
	mode    domain.Mode
	svc     *MatchService

	mu            sync.Mutex
	state         MatchState
	timeLeft      int
	leftSlots     [domain.MatchSlots]*domain.Card
	rightSlots    [domain.MatchSlots]*domain.Card
	selectedLeft  *domain.Card
	selectedRight *domain.Card
	pending       map[string]struct{}
	pendingIDs    map[string]int
	scores        domain.MatchScores

	rng          *rand.Rand
	resolveDelay time.Duration
	onTick       func(int)
	onResolve    func(bool)
	onEnd        func(domain.MatchScores)
	done         chan struct{}
	endOnce      sync.Once
}

// NewSession deals a board from the entry pool. The pool must hold at
// least MatchSlots entries. The session is Idle until Start is called.
func (s *MatchService) NewSession(userID int64, entries []domain.Entry, mode domain.Mode, cfg MatchConfig) (*MatchSession, error) {
	if len(entries) < domain.MatchSlots {
		return nil, fmt.Errorf("not enough saved words: have %d, need %d", len(entries), domain.MatchSlots)
	}
	if cfg.TimeLimit <= 0 {
		return nil, fmt.Errorf("time limit must be positive")
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m := &MatchSession{
		userID:       userID,
		entries:      entries,
		mode:         mode,
		svc:          s,
		state:        MatchIdle,
		timeLeft:     cfg.TimeLimit,
		pending:      make(map[string]struct{}),
		pendingIDs:   make(map[string]int),
		rng:          rng,
		resolveDelay: cfg.ResolveDelay,
		onTick:       cfg.OnTick,
		onResolve:    cfg.OnResolve,
		onEnd:        cfg.OnEnd,
		done:         make(chan struct{}),
	}
	m.deal()

	return m, nil
}

// deal picks MatchSlots entries and lays out the two columns, the
// right one shuffled independently so pairs don't line up
func (m *MatchSession) deal() {
	source := m.mode.Source()
	target := m.mode.Target()

	picked := make([]domain.Entry, len(m.entries))
	copy(picked, m.entries)
	m.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	picked = picked[:domain.MatchSlots]

	for i, e := range picked {
		m.leftSlots[i] = &domain.Card{
			Text:    e.Translations.Get(source),
			EntryID: e.ID,
			Side:    domain.SideLeft,
			Slot:    i,
		}
	}

	m.rng.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	for i, e := range picked {
		m.rightSlots[i] = &domain.Card{
			Text:    e.Translations.Get(target),
			EntryID: e.ID,
			Side:    domain.SideRight,
			Slot:    i,
		}
	}
}

// Start begins the countdown. Calling it on a non-idle session is a
// no-op.
func (m *MatchSession) Start() {
	m.mu.Lock()
	if m.state != MatchIdle {
		m.mu.Unlock()
		return
	}
	m.state = MatchRunning
	m.mu.Unlock()

	go m.countdown()
}

func (m *MatchSession) countdown() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.mu.Lock()
			m.timeLeft--
			timeLeft := m.timeLeft
			m.mu.Unlock()

			if m.onTick != nil {
				m.onTick(timeLeft)
			}
			if timeLeft <= 0 {
				m.End()
				return
			}
		}
	}
}

// Select picks the card at the given side and slot. When it completes
// a left/right pair the pair is scored immediately and the board
// update is deferred by the resolve delay. Returns false when the
// click was ignored.
func (m *MatchSession) Select(side domain.Side, slot int) bool {
	m.mu.Lock()

	if m.state != MatchRunning || slot < 0 || slot >= domain.MatchSlots {
		m.mu.Unlock()
		return false
	}

	var card *domain.Card
	if side == domain.SideLeft {
		card = m.leftSlots[slot]
	} else {
		card = m.rightSlots[slot]
	}
	if card == nil {
		m.mu.Unlock()
		return false
	}

	// Ignore clicks on cards that are part of a resolving pair, and
	// any click while both sides are already chosen
	if m.pendingIDs[card.EntryID] > 0 || (m.selectedLeft != nil && m.selectedRight != nil) {
		m.mu.Unlock()
		return false
	}

	if side == domain.SideLeft {
		if m.selectedLeft != nil && m.selectedLeft.EntryID == card.EntryID {
			m.mu.Unlock()
			return false
		}
		m.selectedLeft = card
	} else {
		if m.selectedRight != nil && m.selectedRight.EntryID == card.EntryID {
			m.mu.Unlock()
			return false
		}
		m.selectedRight = card
	}

	left, right := m.selectedLeft, m.selectedRight
	if left == nil || right == nil {
		m.mu.Unlock()
		return true
	}

	// Each unordered pair resolves at most once
	key := left.EntryID + "-" + right.EntryID
	if _, inFlight := m.pending[key]; inFlight {
		m.mu.Unlock()
		return true
	}
	m.pending[key] = struct{}{}
	m.pendingIDs[left.EntryID]++
	m.pendingIDs[right.EntryID]++

	correct := m.isCorrectPair(left, right)
	if correct {
		m.scores.Correct++
		m.scores.Combo++
		if m.scores.Combo > m.scores.HighestCombo {
			m.scores.HighestCombo = m.scores.Combo
		}
	} else {
		m.scores.Wrong++
		m.scores.Combo = 0
	}

	delay := m.resolveDelay
	m.mu.Unlock()

	finish := func() {
		m.resolvePair(left, right, correct, key)
		if m.onResolve != nil {
			m.onResolve(correct)
		}
	}
	if delay > 0 {
		time.AfterFunc(delay, finish)
	} else {
		finish()
	}

	return true
}

// isCorrectPair checks the right card's text against the left card's
// entry in the target language. Card ids are entry ids, so this is id
// equality in practice.
func (m *MatchSession) isCorrectPair(left, right *domain.Card) bool {
	target := m.mode.Target()
	for _, e := range m.entries {
		if e.ID == left.EntryID {
			return e.Translations.Get(target) == right.Text
		}
	}
	return false
}

func (m *MatchSession) resolvePair(left, right *domain.Card, correct bool, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.pending, key)
	if m.pendingIDs[left.EntryID]--; m.pendingIDs[left.EntryID] <= 0 {
		delete(m.pendingIDs, left.EntryID)
	}
	if m.pendingIDs[right.EntryID]--; m.pendingIDs[right.EntryID] <= 0 {
		delete(m.pendingIDs, right.EntryID)
	}

	if m.state != MatchEnded && correct {
		m.replaceMatchedPair(left, right)
	}

	m.selectedLeft = nil
	m.selectedRight = nil
}

// replaceMatchedPair fills the two matched slots with an entry not
// currently visible in either column, or empties them when the pool is
// exhausted. Caller holds the lock.
func (m *MatchSession) replaceMatchedPair(left, right *domain.Card) {
	visible := make(map[string]bool, 2*domain.MatchSlots)
	for _, c := range m.leftSlots {
		if c != nil {
			visible[c.EntryID] = true
		}
	}
	for _, c := range m.rightSlots {
		if c != nil {
			visible[c.EntryID] = true
		}
	}

	var remaining []domain.Entry
	for _, e := range m.entries {
		if !visible[e.ID] {
			remaining = append(remaining, e)
		}
	}

	if len(remaining) == 0 {
		m.leftSlots[left.Slot] = nil
		m.rightSlots[right.Slot] = nil
		return
	}

	next := remaining[m.rng.Intn(len(remaining))]
	m.leftSlots[left.Slot] = &domain.Card{
		Text:    next.Translations.Get(m.mode.Source()),
		EntryID: next.ID,
		Side:    domain.SideLeft,
		Slot:    left.Slot,
	}
	m.rightSlots[right.Slot] = &domain.Card{
		Text:    next.Translations.Get(m.mode.Target()),
		EntryID: next.ID,
		Side:    domain.SideRight,
		Slot:    right.Slot,
	}
}

// End finishes the session exactly once: the countdown stops, final
// counts are snapshotted and persisted, and the completion callback
// fires. Safe to call from the timer and externally.
func (m *MatchSession) End() {
	m.endOnce.Do(func() {
		close(m.done)

		m.mu.Lock()
		m.state = MatchEnded
		if m.timeLeft < 0 {
			m.timeLeft = 0
		}
		scores := m.scores
		m.mu.Unlock()

		m.svc.saveResult(m.userID, scores)

		if m.onEnd != nil {
			m.onEnd(scores)
		}
	})
}

// Stop tears the session down without persisting anything. Used when
// the user navigates away mid-game; the countdown timer is always
// released.
func (m *MatchSession) Stop() {
	m.endOnce.Do(func() {
		close(m.done)

		m.mu.Lock()
		m.state = MatchEnded
		m.mu.Unlock()
	})
}

// State returns the session's lifecycle phase
func (m *MatchSession) State() MatchState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// TimeLeft returns the remaining seconds
func (m *MatchSession) TimeLeft() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timeLeft
}

// Scores returns a snapshot of the running score
func (m *MatchSession) Scores() domain.MatchScores {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scores
}

// Board returns snapshots of both slot columns
func (m *MatchSession) Board() (left, right [domain.MatchSlots]*domain.Card) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := 0; i < domain.MatchSlots; i++ {
		if m.leftSlots[i] != nil {
			c := *m.leftSlots[i]
			left[i] = &c
		}
		if m.rightSlots[i] != nil {
			c := *m.rightSlots[i]
			right[i] = &c
		}
	}
	return left, right
}

// Selected returns the entry ids of the currently selected cards,
// empty strings when a side has no selection
func (m *MatchSession) Selected() (leftID, rightID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selectedLeft != nil {
		leftID = m.selectedLeft.EntryID
	}
	if m.selectedRight != nil {
		rightID = m.selectedRight.EntryID
	}
	return leftID, rightID
}

// saveResult persists a finished session and credits the streak,
// fire-and-forget
func (s *MatchService) saveResult(userID int64, scores domain.MatchScores) {
	if userID == 0 {
		return
	}

	now := time.Now()
	result := domain.MatchResult{
		UserID:       userID,
		Correct:      scores.Correct,
		Wrong:        scores.Wrong,
		HighestCombo: scores.HighestCombo,
		Timestamp:    now,
	}

	if err := s.resultRepo.AddMatchResult(result); err != nil {
		s.logger.Warn("Failed to save match result",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	if err := s.streaks.Update(userID, domain.Today(now)); err != nil {
		s.logger.Warn("Failed to update streak",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}
