package session

import (
	"fmt"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// Outcome tells the running scene what to reload after a death
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeRestartLevel
	OutcomeRestartGame
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRestartLevel:
		return "RestartLevel"
	case OutcomeRestartGame:
		return "RestartGame"
	default:
		return "None"
	}
}

// Session is the run-wide bookkeeping: lives, score, level timer and the
// current stage. It is the SessionSink the encounter resolver reports to.
type Session struct {
	cfg config.SessionConfig

	stage    string
	level    int
	score    int
	lives    int
	timeLeft int
	elapsed  float64

	pending Outcome
}

// New creates a session with full lives and a fresh timer
func New(cfg config.SessionConfig) (*Session, error) {
	if cfg.TotalLives <= 0 {
		return nil, fmt.Errorf("failed to create session: %w: totalLives must be > 0, got %d", entity.ErrInvalidConfig, cfg.TotalLives)
	}
	if cfg.StartTime <= 0 {
		return nil, fmt.Errorf("failed to create session: %w: startTime must be > 0, got %d", entity.ErrInvalidConfig, cfg.StartTime)
	}
	if cfg.StartStage == "" {
		return nil, fmt.Errorf("failed to create session: %w: startStage is empty", entity.ErrInvalidConfig)
	}

	s := &Session{cfg: cfg}
	s.stage = cfg.StartStage
	s.level = 1
	s.lives = cfg.TotalLives
	s.timeLeft = cfg.StartTime
	return s, nil
}

// OnScore adds to the score
func (s *Session) OnScore(amount int) {
	s.score += amount
}

// OnDeath costs a life. Running out of lives restarts the whole game,
// otherwise the current level restarts. Deaths reported while a restart is
// pending are the same death and are ignored.
func (s *Session) OnDeath() {
	if s.pending != OutcomeNone {
		return
	}
	s.lives--
	s.timeLeft = s.cfg.StartTime
	s.elapsed = 0
	if s.lives <= 0 {
		s.lives = s.cfg.TotalLives
		s.stage = s.cfg.StartStage
		s.level = 1
		s.pending = OutcomeRestartGame
		return
	}
	s.pending = OutcomeRestartLevel
}

// Tick counts the level timer down in whole seconds; reaching zero is a death
func (s *Session) Tick(dt float64) {
	if s.pending != OutcomeNone {
		return
	}
	s.elapsed += dt
	for s.elapsed >= 1 && s.timeLeft > 0 {
		s.elapsed--
		s.timeLeft--
	}
	if s.timeLeft <= 0 {
		s.OnDeath()
	}
}

// TakeOutcome returns the pending restart, if any, and clears it
func (s *Session) TakeOutcome() Outcome {
	o := s.pending
	s.pending = OutcomeNone
	return o
}

// SetStage records a level change
func (s *Session) SetStage(name string) {
	s.stage = name
	s.level++
}

// Stage returns the name of the stage to play
func (s *Session) Stage() string { return s.stage }

// Level returns the 1-based level counter
func (s *Session) Level() int { return s.level }

// Score returns the current score
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives
func (s *Session) Lives() int { return s.lives }

// TimeLeft returns whole seconds left on the level timer
func (s *Session) TimeLeft() int { return s.timeLeft }
