// Package notify periodically scans for contracts about to expire and
// issues a reminder per contract. Delivery is a structured log entry
// carrying the client's email; an SMTP sender can hook in later
// without touching the scan.
package notify

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/nurpe/contratos-dashboard/internal/model"
	"github.com/nurpe/contratos-dashboard/internal/status"
)

// DataSource is the slice of the service layer the scanner needs.
type DataSource interface {
	ListContracts(ctx context.Context) ([]model.Contract, error)
	ListClients(ctx context.Context) ([]model.Client, error)
}

type Scanner struct {
	source     DataSource
	windowDays int
	cronSpec   string
	cron       *cron.Cron
	now        func() time.Time
	log        zerolog.Logger
}

func NewScanner(source DataSource, windowDays int, cronSpec string, log zerolog.Logger) *Scanner {
	return &Scanner{
		source:     source,
		windowDays: windowDays,
		cronSpec:   cronSpec,
		now:        time.Now,
		log:        log,
	}
}

// WithClock replaces the time source, for tests.
func (s *Scanner) WithClock(now func() time.Time) *Scanner {
	s.now = now
	return s
}

// Start schedules the periodic scan. Scan failures are logged and the
// schedule keeps running.
func (s *Scanner) Start() error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(s.cronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		count, err := s.Scan(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("expiry scan failed")
			return
		}
		s.log.Info().Int("reminders", count).Msg("expiry scan completed")
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scanner) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Scan finds contracts expiring within the notify window and issues
// one reminder each. Already-expired contracts are skipped; expiring
// today counts. Returns the number of reminders issued.
func (s *Scanner) Scan(ctx context.Context) (int, error) {
	contracts, err := s.source.ListContracts(ctx)
	if err != nil {
		return 0, err
	}
	clients, err := s.source.ListClients(ctx)
	if err != nil {
		return 0, err
	}

	emails := make(map[int64]string, len(clients))
	for _, client := range clients {
		emails[client.ID] = client.Email
	}

	now := s.now()
	count := 0
	for _, contract := range contracts {
		if contract.ExpiresAt.IsZero() {
			continue
		}
		days := status.DaysRemaining(contract.ExpiresAt, now)
		if days < 0 || days > s.windowDays {
			continue
		}

		s.log.Info().
			Int64("contract_id", contract.ID).
			Str("contract", contract.Title()).
			Str("client_email", emails[contract.ClientID]).
			Int("days_remaining", days).
			Time("expires_at", contract.ExpiresAt).
			Msg("contract expiry reminder")
		count++
	}
	return count, nil
}
