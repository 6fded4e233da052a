package session

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Purger хранилище, которое умеет удалять истекшие сессии
type Purger interface {
	PurgeExpired(ctx context.Context, grace time.Duration) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sweeper периодически удаляет истекшие сессии из хранилища без TTL (PostgreSQL)
// Трекер и так очищает сессию при чтении; Sweeper убирает брошенные строки
type Sweeper struct {
	cron    *cron.Cron
	purger  Purger
	grace   time.Duration
	timeout time.Duration
	logger  Logger
}

// NewSweeper создает Sweeper с расписанием в формате cron ("@hourly", "*/15 * * * *")
func NewSweeper(purger Purger, spec string, grace time.Duration, logger Logger) (*Sweeper, error) {
	s := &Sweeper{
		cron:    cron.New(),
		purger:  purger,
		grace:   grace,
		timeout: 30 * time.Second,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(spec, s.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce один проход очистки
func (s *Sweeper) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.purger.PurgeExpired(ctx, s.grace)
	if err != nil {
		s.logger.Error("Sweeper: failed to purge expired sessions: %v", err)
		return
	}
	if n > 0 {
		s.logger.Info("Sweeper: purged %d expired admin sessions", n)
	}
}

// Start запускает расписание в фоне
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop останавливает расписание и ждет завершения текущего прохода
func (s *Sweeper) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
