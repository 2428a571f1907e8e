package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/contratos-dashboard/internal/model"
)

var now = time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)

type fakeSource struct {
	contracts []model.Contract
	clients   []model.Client
	err       error
}

func (f *fakeSource) ListContracts(ctx context.Context) ([]model.Contract, error) {
	return f.contracts, f.err
}

func (f *fakeSource) ListClients(ctx context.Context) ([]model.Client, error) {
	return f.clients, f.err
}

func TestScanCountsWindow(t *testing.T) {
	source := &fakeSource{
		clients: []model.Client{{ID: 1, Email: "a@x.com"}},
		contracts: []model.Contract{
			{ID: 1, ClientID: 1, ExpiresAt: now.Add(2 * 24 * time.Hour)},  // inside
			{ID: 2, ClientID: 1, ExpiresAt: now.Add(6 * time.Hour)},       // today
			{ID: 3, ClientID: 1, ExpiresAt: now.Add(10 * 24 * time.Hour)}, // outside
			{ID: 4, ClientID: 1, ExpiresAt: now.Add(-2 * 24 * time.Hour)}, // expired
			{ID: 5, ClientID: 1}, // no date
		},
	}

	scanner := NewScanner(source, 7, "0 8 * * *", zerolog.Nop()).
		WithClock(func() time.Time { return now })

	count, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if count != 2 {
		t.Errorf("reminders = %d, want 2", count)
	}
}

func TestScanPropagatesError(t *testing.T) {
	source := &fakeSource{err: errors.New("backend down")}
	scanner := NewScanner(source, 7, "0 8 * * *", zerolog.Nop())

	if _, err := scanner.Scan(context.Background()); err == nil {
		t.Fatal("expected error from failing source")
	}
}

func TestStartRejectsBadSpec(t *testing.T) {
	scanner := NewScanner(&fakeSource{}, 7, "not a cron spec", zerolog.Nop())
	if err := scanner.Start(); err == nil {
		t.Fatal("expected error for invalid cron spec")
	}
	scanner.Stop()
}
