package activityapp

import (
	"sync"
	"time"

	"iyouconnect/internal/core/activity"
	"iyouconnect/internal/core/post/presenter"
	"iyouconnect/internal/core/simulation"

	"go.uber.org/zap"
)

const (
	DefaultOnlineBase     = 125
	DefaultOnlineVariance = 25
)

// Config sets the bands of the board.
type Config struct {
	OnlineBase     int
	OnlineVariance int
	Cards          []activity.MetricCard
}

type card struct {
	activity.MetricCard
	counter *simulation.Counter
}

// ActivityService drives the cosmetic liveness indicators: the online counter,
// the metric cards and the admin presence toggle.
type ActivityService struct {
	clock  simulation.Clock
	src    simulation.Source
	logger *zap.Logger

	base     int
	variance int
	online   *simulation.Counter
	cards    []card

	mu            sync.Mutex
	running       bool
	presence      string
	presenceSince time.Time
	presenceUntil time.Time
	presenceTimer simulation.Timer
	presenceGen   int
}

func NewActivityService(clock simulation.Clock, src simulation.Source, cfg Config, logger *zap.Logger) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.OnlineBase <= 0 {
		cfg.OnlineBase = DefaultOnlineBase
	}
	if cfg.OnlineVariance < 0 {
		cfg.OnlineVariance = -cfg.OnlineVariance
	}
	if cfg.Cards == nil {
		cfg.Cards = activity.DefaultCards()
	}

	s := &ActivityService{
		clock:         clock,
		src:           src,
		logger:        logger,
		base:          cfg.OnlineBase,
		variance:      cfg.OnlineVariance,
		presence:      activity.PresenceActive,
		presenceSince: clock.Now(),
	}

	initial := s.base + simulation.Delta(src, s.variance)
	if initial < 0 {
		initial = 0
	}
	period := time.Duration(7000+src.Intn(4000)) * time.Millisecond
	s.online = simulation.NewCounter(clock, src,
		simulation.AmbientPersona(period, simulation.StepRange(s.variance, 0.2, 2)),
		simulation.Band(s.base-s.variance, s.base+s.variance),
		initial, nil)

	for _, mc := range cfg.Cards {
		start := mc.Value
		if start == 0 {
			start = mc.Base
		}
		start = simulation.Clamp(start, mc.Floor(), mc.Ceiling())
		period := time.Duration(8000+src.Intn(4000)) * time.Millisecond
		s.cards = append(s.cards, card{
			MetricCard: mc,
			counter: simulation.NewCounter(clock, src,
				simulation.AmbientPersona(period, simulation.StepRange(mc.Variance, 0.3, 1)),
				simulation.Band(mc.Floor(), mc.Ceiling()),
				start, nil),
		})
	}
	return s
}

// Start begins ticking every indicator and the presence schedule.
func (s *ActivityService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.online.Start()
	for _, c := range s.cards {
		c.counter.Start()
	}
	s.schedulePresenceLocked()
	s.logger.Info("🚀 Activity board started", zap.Int("online", s.online.Value()), zap.Int("cards", len(s.cards)))
}

// Stop cancels every pending tick.
func (s *ActivityService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	s.online.Stop()
	for _, c := range s.cards {
		c.counter.Stop()
	}
	if s.presenceTimer != nil {
		s.presenceTimer.Stop()
		s.presenceTimer = nil
	}
	s.logger.Info("🛑 Activity board stopped")
}

// Online returns the current live-online value.
func (s *ActivityService) Online() int { return s.online.Value() }

// Snapshot reads every indicator at once.
func (s *ActivityService) Snapshot() activity.Snapshot {
	online := s.online.Value()
	cards := make([]activity.CardSnapshot, 0, len(s.cards))
	for _, c := range s.cards {
		v := c.counter.Value()
		cards = append(cards, activity.CardSnapshot{
			Key:   c.Key,
			Label: c.Label,
			Value: v,
			Text:  formatCard(v, c.Format),
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return activity.Snapshot{
		Online:         online,
		OnlineLabel:    presenter.FormatOnline(online),
		OnlineBase:     s.base,
		OnlineVariance: s.variance,
		Cards:          cards,
		Presence:       s.presence,
		PresenceSince:  s.presenceSince,
		PresenceUntil:  s.presenceUntil,
	}
}

// TogglePresence flips the admin state by hand and restarts its schedule.
func (s *ActivityService) TogglePresence() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flipLocked()
	if s.running {
		s.schedulePresenceLocked()
	}
	s.logger.Info("🔁 Admin presence toggled", zap.String("presence", s.presence))
	return s.presence
}

func (s *ActivityService) flipLocked() {
	if s.presence == activity.PresenceActive {
		s.presence = activity.PresenceOffline
	} else {
		s.presence = activity.PresenceActive
	}
	s.presenceSince = s.clock.Now()
	s.presenceUntil = time.Time{}
}

func (s *ActivityService) schedulePresenceLocked() {
	if s.presenceTimer != nil {
		s.presenceTimer.Stop()
	}
	d := activity.ActiveDuration
	if s.presence == activity.PresenceOffline {
		d = activity.OfflineDuration
	}
	s.presenceGen++
	gen := s.presenceGen
	s.presenceUntil = s.clock.Now().Add(d)
	s.presenceTimer = s.clock.AfterFunc(d, func() { s.presenceTick(gen) })
}

// presenceTick ignores timers superseded by a manual toggle.
func (s *ActivityService) presenceTick(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running || gen != s.presenceGen {
		return
	}
	s.flipLocked()
	s.schedulePresenceLocked()
}

func formatCard(v int, format string) string {
	if format == activity.FormatDuration {
		return presenter.FormatDuration(v)
	}
	return presenter.FormatCount(v)
}
