package audio

import "sync/atomic"

// Service wraps Player with the service lifecycle.
// Handles graceful degradation when no audio backend is available
type Service struct {
	player   *Player
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService(volume float64) *Service {
	return &Service{player: NewPlayer(volume)}
}

// Name implements service.Service
func (s *Service) Name() string { return "audio" }

// Dependencies implements service.Service
func (s *Service) Dependencies() []string { return nil }

// Init implements service.Service
// args[0]: bool - muted (true = stay silent regardless of backend)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok && muted {
			s.disabled.Store(true)
		}
	}
	return nil
}

// Start opens the speaker; backend failure flips to silent mode
func (s *Service) Start() error {
	if s.disabled.Load() {
		return nil
	}
	s.player.Initialize()
	if !s.player.Enabled() {
		s.disabled.Store(true)
	}
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	s.player.Cleanup()
	return nil
}

// Player returns the earcon player; safe to use even when disabled
func (s *Service) Player() *Player {
	return s.player
}

// IsDisabled returns true if audio is unavailable
func (s *Service) IsDisabled() bool {
	return s.disabled.Load()
}
