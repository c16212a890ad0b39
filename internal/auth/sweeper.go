package auth

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper periodically removes expired tokens from a Manager.
type Sweeper struct {
	cron    *cron.Cron
	manager *Manager
	logger  *zap.Logger
	spec    string // cron spec, e.g. "@every 1m"
}

func NewSweeper(manager *Manager, spec string, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		cron:    cron.New(),
		manager: manager,
		logger:  logger,
		spec:    spec,
	}
}

func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}
	s.cron.Start()
	s.logger.Info("token sweeper started", zap.String("spec", s.spec))
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("token sweeper stopped")
}

func (s *Sweeper) run() {
	if n := s.manager.Sweep(); n > 0 {
		s.logger.Debug("expired tokens removed", zap.Int("count", n))
	}
}
