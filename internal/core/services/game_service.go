package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-quest/internal/core/clock"
	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

const ReasonSaveFailed = "Failed to save progress"

// SaveQueue schedules an asynchronous save of one player.
type SaveQueue interface {
	Enqueue(playerID string) bool
}

type GameDependencies struct {
	Store   domain.SnapshotStore
	Catalog domain.QuestCatalog
	Config  domain.GameConfig
	Clock   clock.Clock
	Events  domain.EventSink
	Logger  *zap.Logger
	Rand    *rand.Rand
	Queue   SaveQueue
}

// Session is the in-memory game state of one player. All access goes
// through the session mutex, so operations on one player never interleave.
type Session struct {
	mu           sync.Mutex
	player       *domain.Player
	quests       *domain.QuestLog
	achievements *domain.AchievementLedger
	pending      []domain.Event
	dirty        atomic.Bool
	closed       bool
	// saveErr is the reason of the last failed save, cleared by the next
	// successful one.
	saveErr  string
	lastUsed atomic.Int64
}

func (s *Session) touch(now time.Time) {
	s.lastUsed.Store(now.UnixNano())
}

func (s *Session) idleSince(cutoff time.Time) bool {
	return s.lastUsed.Load() < cutoff.UnixNano()
}

// GameService is the composition point of the game rules. It owns the open
// sessions and their persistence.
type GameService struct {
	store  domain.SnapshotStore
	cfg    domain.GameConfig
	clock  clock.Clock
	sink   domain.EventSink
	logger *zap.Logger
	queue  SaveQueue

	progression  *ProgressionService
	streaks      *StreakService
	wahd         *WAHDService
	generator    *QuestGenerator
	quests       *QuestService
	achievements *AchievementService
	habits       *HabitService
	stats        *StatsService

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewGameService(deps GameDependencies) *GameService {
	cfg := deps.Config.Normalized()

	g := &GameService{
		store:    deps.Store,
		cfg:      cfg,
		clock:    deps.Clock,
		sink:     deps.Events,
		logger:   deps.Logger,
		queue:    deps.Queue,
		sessions: make(map[string]*Session),
	}
	if g.clock == nil {
		g.clock = clock.Real{}
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}

	g.progression = NewProgressionService(cfg, g.clock, g)
	g.streaks = NewStreakService(cfg, g)
	g.wahd = NewWAHDService(cfg, g)
	g.generator = NewQuestGenerator(deps.Catalog, cfg, deps.Rand, g)
	g.quests = NewQuestService(g.progression, g)
	g.achievements = NewAchievementService(g.progression, g)
	g.habits = NewHabitService(g.progression, g)
	g.stats = NewStatsService()

	return g
}

func (g *GameService) Config() domain.GameConfig {
	return g.cfg
}

// Publish records e for the running operation and forwards it to the sink.
func (g *GameService) Publish(e domain.Event) {
	g.mu.RLock()
	sess := g.sessions[e.PlayerID()]
	g.mu.RUnlock()

	if sess != nil {
		sess.pending = append(sess.pending, e)
	}
	if g.sink != nil {
		g.sink.Publish(e)
	}
}

// EventView is the serializable form of an emitted event.
type EventView struct {
	Type    domain.EventType `json:"type"`
	Payload any              `json:"payload"`
}

// Outcome lists what an operation caused beyond its direct result.
type Outcome struct {
	Events       []EventView          `json:"events"`
	Achievements []domain.Achievement `json:"achievements_unlocked,omitempty"`
	SaveError    string               `json:"save_error,omitempty"`
}

type PlayerState struct {
	Player      *domain.Player          `json:"player"`
	NextLevelXP int                     `json:"next_level_xp"`
	Date        string                  `json:"date"`
	Quests      []*domain.Quest         `json:"quests"`
	Challenge   *domain.WeeklyChallenge `json:"challenge,omitempty"`
	Outcome     Outcome                 `json:"outcome"`
}

type RefreshResult struct {
	DailyReset  bool            `json:"daily_reset"`
	WeeklyReset bool            `json:"weekly_reset"`
	Streak      StreakOutcome   `json:"streak"`
	Quests      []*domain.Quest `json:"quests"`
	Outcome     Outcome         `json:"outcome"`
}

type CompleteQuestResult struct {
	*QuestResult
	WAHDCounted bool    `json:"wahd_counted"`
	Outcome     Outcome `json:"outcome"`
}

type LogHabitResult struct {
	*HabitResult
	WAHDCounted bool    `json:"wahd_counted"`
	Outcome     Outcome `json:"outcome"`
}

type AchievementsView struct {
	Progress domain.AchievementProgress `json:"progress"`
	Items    []AchievementStatus        `json:"items"`
	Recent   []domain.UnlockRecord      `json:"recent"`
}

// Open hydrates the player from the store, or creates it named name, and
// runs the day and week boundary checks.
func (g *GameService) Open(ctx context.Context, playerID, name string) (*PlayerState, error) {
	var state *PlayerState
	err := g.withSession(ctx, playerID, name, func(sess *Session, now time.Time) error {
		g.refreshLocked(sess, now)
		out := g.finish(ctx, sess)
		state = g.stateLocked(sess)
		state.Outcome = out
		return nil
	})
	return state, err
}

// Refresh is the idempotent daily and weekly boundary check.
func (g *GameService) Refresh(ctx context.Context, playerID string) (*RefreshResult, error) {
	var res *RefreshResult
	err := g.withSession(ctx, playerID, "", func(sess *Session, now time.Time) error {
		res = g.refreshLocked(sess, now)
		res.Outcome = g.finish(ctx, sess)
		res.Quests = sess.quests.Clone().Daily
		return nil
	})
	return res, err
}

func (g *GameService) State(ctx context.Context, playerID string) (*PlayerState, error) {
	var state *PlayerState
	err := g.withSession(ctx, playerID, "", func(sess *Session, now time.Time) error {
		g.refreshLocked(sess, now)
		out := g.finish(ctx, sess)
		state = g.stateLocked(sess)
		state.Outcome = out
		return nil
	})
	return state, err
}

func (g *GameService) CompleteQuest(ctx context.Context, playerID, questID string) (*CompleteQuestResult, error) {
	var res *CompleteQuestResult
	err := g.withSession(ctx, playerID, "", func(sess *Session, now time.Time) error {
		g.refreshLocked(sess, now)

		qr, err := g.quests.CompleteQuest(sess.player, sess.quests, questID, now)
		if err != nil {
			g.finish(ctx, sess)
			return err
		}

		res = &CompleteQuestResult{QuestResult: qr}
		g.noteCapped(playerID, qr.Experience)
		res.WAHDCounted = g.wahd.Update(sess.player, sess.player.Today.CategoryCount(), now)
		if res.WAHDCounted {
			if cr := g.quests.AdvanceChallenge(sess.player, sess.quests, ChallengeSignal{WAHDChanged: true}, now); cr != nil && cr.Completed {
				res.Challenge = cr
			}
		}

		sess.dirty.Store(true)
		res.Outcome = g.finish(ctx, sess)
		res.Quest = cloneQuest(qr.Quest)
		return nil
	})
	return res, err
}

func (g *GameService) LogHabit(ctx context.Context, playerID string, input LogHabitInput) (*LogHabitResult, error) {
	var res *LogHabitResult
	err := g.withSession(ctx, playerID, "", func(sess *Session, now time.Time) error {
		g.refreshLocked(sess, now)

		hr, err := g.habits.Log(sess.player, input, now)
		if err != nil {
			g.finish(ctx, sess)
			return err
		}

		res = &LogHabitResult{HabitResult: hr}
		g.noteCapped(playerID, hr.Experience)
		signal := ChallengeSignal{SkillLevelUps: len(hr.Experience.SkillLevelUps)}
		res.WAHDCounted = g.wahd.Update(sess.player, sess.player.Today.CategoryCount(), now)
		signal.WAHDChanged = res.WAHDCounted
		g.quests.AdvanceChallenge(sess.player, sess.quests, signal, now)

		sess.dirty.Store(true)
		res.Outcome = g.finish(ctx, sess)
		return nil
	})
	return res, err
}

type SettingsResult struct {
	Settings domain.Settings `json:"settings"`
	Outcome  Outcome         `json:"outcome"`
}

func (g *GameService) UpdateSetting(ctx context.Context, playerID, key, value string) (*SettingsResult, error) {
	var res *SettingsResult
	err := g.withSession(ctx, playerID, "", func(sess *Session, now time.Time) error {
		if err := sess.player.Settings.Set(key, value); err != nil {
			return domain.NewValidationError(err.Error(), err)
		}
		sess.dirty.Store(true)
		res = &SettingsResult{Outcome: g.finish(ctx, sess), Settings: sess.player.Settings}
		return nil
	})
	return res, err
}

func (g *GameService) Rename(ctx context.Context, playerID, name string) (Outcome, error) {
	var out Outcome
	err := g.withSession(ctx, playerID, "", func(sess *Session, now time.Time) error {
		if err := sess.player.Rename(name); err != nil {
			return domain.NewValidationError("Player name must be between 1 and 50 characters", err)
		}
		sess.dirty.Store(true)
		out = g.finish(ctx, sess)
		return nil
	})
	return out, err
}

func (g *GameService) QuestStats(ctx context.Context, playerID string) (domain.QuestStats, error) {
	var stats domain.QuestStats
	err := g.withSession(ctx, playerID, "", func(sess *Session, now time.Time) error {
		stats = g.stats.QuestStats(sess.quests)
		return nil
	})
	return stats, err
}

func (g *GameService) Achievements(ctx context.Context, playerID string) (*AchievementsView, error) {
	var view *AchievementsView
	err := g.withSession(ctx, playerID, "", func(sess *Session, now time.Time) error {
		view = &AchievementsView{
			Progress: g.achievements.Progress(sess.player),
			Items:    g.achievements.Statuses(sess.player, sess.achievements),
			Recent:   sess.achievements.Recent(5),
		}
		return nil
	})
	return view, err
}

// Reset deletes every stored document of the player and starts a new profile
// with the same name. It is also the recovery path for a corrupt snapshot.
func (g *GameService) Reset(ctx context.Context, playerID string) (*PlayerState, error) {
	name := ""

	g.mu.Lock()
	old := g.sessions[playerID]
	delete(g.sessions, playerID)
	g.mu.Unlock()

	if old != nil {
		old.mu.Lock()
		old.closed = true
		name = old.player.Name
		old.mu.Unlock()
	}

	if err := g.store.Delete(ctx, playerID); err != nil {
		return nil, domain.NewPersistenceError("Failed to delete saved progress", err)
	}
	g.logger.Info("player reset", zap.String("player_id", playerID))

	return g.Open(ctx, playerID, name)
}

// Save writes the three documents of the player when it has unsaved changes.
func (g *GameService) Save(ctx context.Context, playerID string) error {
	g.mu.RLock()
	sess := g.sessions[playerID]
	g.mu.RUnlock()
	if sess == nil {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return nil
	}
	return g.saveLocked(ctx, playerID, sess)
}

// DirtyPlayers lists the open sessions with unsaved changes, sorted.
func (g *GameService) DirtyPlayers() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var ids []string
	for id, sess := range g.sessions {
		if sess.dirty.Load() {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Close saves and forgets the session of playerID.
func (g *GameService) Close(ctx context.Context, playerID string) error {
	_, err := g.evict(ctx, playerID, func(*Session) bool { return true })
	return err
}

// CloseIdle saves and forgets every session unused for longer than maxIdle.
// A session whose save fails stays open so no progress is dropped.
func (g *GameService) CloseIdle(ctx context.Context, maxIdle time.Duration) []string {
	cutoff := g.clock.Now().Add(-maxIdle)
	idle := func(s *Session) bool { return s.idleSince(cutoff) }

	g.mu.RLock()
	var candidates []string
	for id, sess := range g.sessions {
		if idle(sess) {
			candidates = append(candidates, id)
		}
	}
	g.mu.RUnlock()
	sort.Strings(candidates)

	var closed []string
	for _, id := range candidates {
		ok, err := g.evict(ctx, id, idle)
		if err != nil {
			g.logger.Warn("idle session kept open, save failed", zap.String("player_id", id), zap.Error(err))
			continue
		}
		if ok {
			closed = append(closed, id)
		}
	}
	return closed
}

func (g *GameService) evict(ctx context.Context, playerID string, should func(*Session) bool) (bool, error) {
	g.mu.RLock()
	sess := g.sessions[playerID]
	g.mu.RUnlock()
	if sess == nil {
		return false, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed || !should(sess) {
		return false, nil
	}
	if err := g.saveLocked(ctx, playerID, sess); err != nil {
		return false, err
	}
	sess.closed = true

	g.mu.Lock()
	if g.sessions[playerID] == sess {
		delete(g.sessions, playerID)
	}
	g.mu.Unlock()
	return true, nil
}

func (g *GameService) withSession(ctx context.Context, playerID, name string, fn func(sess *Session, now time.Time) error) error {
	for {
		sess, err := g.acquire(ctx, playerID, name)
		if err != nil {
			return err
		}

		sess.mu.Lock()
		if sess.closed {
			sess.mu.Unlock()
			continue
		}
		now := g.clock.Now()
		sess.touch(now)
		err = fn(sess, now)
		sess.pending = nil
		sess.mu.Unlock()
		return err
	}
}

func (g *GameService) acquire(ctx context.Context, playerID, name string) (*Session, error) {
	if playerID == "" {
		return nil, domain.NewValidationError("Missing player id", domain.ErrInvalidPlayerState)
	}

	g.mu.RLock()
	sess, ok := g.sessions[playerID]
	g.mu.RUnlock()
	if ok {
		return sess, nil
	}

	loaded, err := g.load(ctx, playerID, name)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if existing, ok := g.sessions[playerID]; ok {
		return existing, nil
	}
	g.sessions[playerID] = loaded
	return loaded, nil
}

func (g *GameService) load(ctx context.Context, playerID, name string) (*Session, error) {
	raw, err := g.store.Load(ctx, playerID, domain.KeyPlayer)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		p, err := domain.NewPlayer(playerID, name, g.cfg, g.clock.Now())
		if err != nil {
			return nil, domain.NewValidationError("Player name must be between 1 and 50 characters", err)
		}
		sess := &Session{
			player:       p,
			quests:       domain.NewQuestLog(),
			achievements: domain.NewAchievementLedger(),
		}
		sess.dirty.Store(true)
		g.logger.Info("player created", zap.String("player_id", playerID))
		return sess, nil
	}
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to load saved progress", err)
	}

	var p domain.Player
	if err := DecodeSnapshot(raw, &p); err != nil {
		return nil, g.corrupt(playerID, domain.KeyPlayer, err)
	}
	p.Normalize(g.cfg)
	if err := p.Validate(g.cfg); err != nil {
		return nil, g.corrupt(playerID, domain.KeyPlayer, fmt.Errorf("%w: %v", domain.ErrCorruptSnapshot, err))
	}
	if p.ID != playerID {
		return nil, g.corrupt(playerID, domain.KeyPlayer, fmt.Errorf("%w: id mismatch", domain.ErrCorruptSnapshot))
	}

	quests := domain.NewQuestLog()
	if err := g.loadOptional(ctx, playerID, domain.KeyQuestHistory, quests); err != nil {
		return nil, err
	}
	quests.Normalize()

	ledger := domain.NewAchievementLedger()
	if err := g.loadOptional(ctx, playerID, domain.KeyAchievements, ledger); err != nil {
		return nil, err
	}
	if ledger.Unlocked == nil {
		ledger.Unlocked = []domain.UnlockRecord{}
	}
	for _, id := range p.Achievements {
		ledger.Record(id, p.CreatedAt)
	}

	g.logger.Debug("player loaded", zap.String("player_id", playerID), zap.Int("level", p.Level))
	return &Session{player: &p, quests: quests, achievements: ledger}, nil
}

func (g *GameService) loadOptional(ctx context.Context, playerID string, key domain.SnapshotKey, v any) error {
	raw, err := g.store.Load(ctx, playerID, key)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return nil
	}
	if err != nil {
		return domain.NewPersistenceError("Failed to load saved progress", err)
	}
	if err := DecodeSnapshot(raw, v); err != nil {
		return g.corrupt(playerID, key, err)
	}
	return nil
}

func (g *GameService) corrupt(playerID string, key domain.SnapshotKey, err error) error {
	g.logger.Error("corrupt snapshot",
		zap.String("player_id", playerID),
		zap.String("key", string(key)),
		zap.Error(err),
	)
	return domain.NewValidationError("Saved progress is corrupted; reset to start over", err)
}

func (g *GameService) refreshLocked(sess *Session, now time.Time) *RefreshResult {
	p := sess.player
	res := &RefreshResult{}
	today := clock.Day(now)

	if p.Today.Date != today {
		p.DailyXP = 0
		p.Today = domain.NewDayActivity(today)
		res.Streak = g.streaks.Update(p, now)
		p.LastActiveDate = today
		res.DailyReset = true
		g.Publish(domain.DailyReset{EventBase: domain.EventBase{Player: p.ID}, Date: today})
	}

	if week := clock.WeekStart(now); p.WeekStart != week {
		g.wahd.ResetWeek(p, now)
		g.generator.GenerateChallenge(p, sess.quests, now)
		p.WeekStart = week
		res.WeeklyReset = true
		g.Publish(domain.WeeklyReset{EventBase: domain.EventBase{Player: p.ID}, WeekStart: week})
	}

	g.generator.GenerateDaily(p, sess.quests, now)

	if res.DailyReset || res.WeeklyReset {
		sess.dirty.Store(true)
	}
	return res
}

// evaluate runs the achievement check until nothing new unlocks, feeding
// unlocks into the weekly challenge.
func (g *GameService) evaluate(sess *Session, now time.Time) []domain.Achievement {
	var all []domain.Achievement
	for range domain.Achievements() {
		unlocked := g.achievements.Check(sess.player, sess.achievements, now)
		if len(unlocked) == 0 {
			break
		}
		all = append(all, unlocked...)
		g.quests.AdvanceChallenge(sess.player, sess.quests, ChallengeSignal{Achievements: len(unlocked)}, now)
	}
	return all
}

func (g *GameService) noteCapped(playerID string, xp ExperienceResult) {
	if err := xp.Err(); err != nil {
		g.logger.Debug("experience capped",
			zap.String("player_id", playerID),
			zap.Int("requested", xp.Requested),
			zap.Int("granted", xp.Granted),
			zap.Error(err),
		)
	}
}

// finish closes an operation: achievements, persistence, and the event list.
func (g *GameService) finish(ctx context.Context, sess *Session) Outcome {
	var out Outcome

	if unlocked := g.evaluate(sess, g.clock.Now()); len(unlocked) > 0 {
		out.Achievements = unlocked
		sess.dirty.Store(true)
	}

	if sess.dirty.Load() {
		// After a failed save the queue is bypassed so the caller sees
		// whether persistence has recovered.
		if g.queue != nil && sess.saveErr == "" {
			if !g.queue.Enqueue(sess.player.ID) {
				g.logger.Warn("save queue full, waiting for next autosave tick", zap.String("player_id", sess.player.ID))
			}
		} else if err := g.saveLocked(ctx, sess.player.ID, sess); err != nil {
			out.SaveError = domain.ReasonOf(err)
		}
	}

	out.Events = make([]EventView, 0, len(sess.pending))
	for _, e := range sess.pending {
		out.Events = append(out.Events, EventView{Type: e.Type(), Payload: e})
	}
	sess.pending = nil
	return out
}

func (g *GameService) saveLocked(ctx context.Context, playerID string, sess *Session) error {
	if !sess.dirty.Load() {
		return nil
	}

	now := g.clock.Now()
	docs := []struct {
		key domain.SnapshotKey
		v   any
	}{
		{domain.KeyPlayer, sess.player},
		{domain.KeyQuestHistory, sess.quests},
		{domain.KeyAchievements, sess.achievements},
	}

	for _, doc := range docs {
		data, err := EncodeSnapshot(doc.v, now)
		if err != nil {
			sess.saveErr = ReasonSaveFailed
			return domain.NewPersistenceError(ReasonSaveFailed, fmt.Errorf("%w: %w", domain.ErrSaveFailed, err))
		}
		if err := g.store.Save(ctx, playerID, doc.key, data); err != nil {
			g.logger.Error("save failed",
				zap.String("player_id", playerID),
				zap.String("key", string(doc.key)),
				zap.Error(err),
			)
			sess.saveErr = ReasonSaveFailed
			return domain.NewPersistenceError(ReasonSaveFailed, fmt.Errorf("%w: %w", domain.ErrSaveFailed, err))
		}
	}

	sess.saveErr = ""
	sess.dirty.Store(false)
	return nil
}

func (g *GameService) stateLocked(sess *Session) *PlayerState {
	p := sess.player.Clone()
	log := sess.quests.Clone()
	return &PlayerState{
		Player:      p,
		NextLevelXP: p.NextLevelXP(g.cfg),
		Date:        log.Date,
		Quests:      log.Daily,
		Challenge:   log.Challenge,
	}
}

func cloneQuest(q *domain.Quest) *domain.Quest {
	c := *q
	if q.CompletedAt != nil {
		t := *q.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}
