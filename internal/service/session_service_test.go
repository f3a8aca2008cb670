package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicepad/internal/config"
	"invoicepad/internal/domain"
	"invoicepad/internal/service"
)

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{
		MaxSessions:   10,
		MaxLineItems:  50,
		IdleTTL:       time.Hour,
		SweepInterval: time.Minute,
	}
}

func TestSessionService_Create_DefaultTemplate(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)

	view, err := svc.Create(context.Background(), nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, view.ID)
	assert.Len(t, view.Invoice.LineItems, 3)
	assert.Equal(t, domain.Totals{}, view.Totals)
	assert.Equal(t, "0.00", view.GrandTotalDisplay)
	assert.Equal(t, []string{"0.00", "0.00", "0.00"}, view.LineAmounts)
	assert.Equal(t, 1, svc.Count())
}

func TestSessionService_Create_SessionLimit(t *testing.T) {
	cfg := testSessionConfig()
	cfg.MaxSessions = 2
	svc := service.NewSessionService(cfg, nil)

	_, err := svc.Create(context.Background(), nil)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), nil)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrSessionLimit)
	assert.Equal(t, 2, svc.Count())
}

func TestSessionService_Get_NotFound(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionService_EditLineField_RecomputesTotals(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	id := created.ID

	_, err = svc.EditLineField(ctx, id, 0, "quantity", "2")
	require.NoError(t, err)
	_, err = svc.EditLineField(ctx, id, 0, "rate", "100")
	require.NoError(t, err)
	_, err = svc.EditLineField(ctx, id, 0, "cgst", "10")
	require.NoError(t, err)
	view, err := svc.EditLineField(ctx, id, 0, "sgst", "10")
	require.NoError(t, err)

	assert.InDelta(t, 200.0, view.Totals.SubTotal, 1e-9)
	assert.InDelta(t, 20.0, view.Totals.TotalCGST, 1e-9)
	assert.InDelta(t, 20.0, view.Totals.TotalSGST, 1e-9)
	assert.InDelta(t, 240.0, view.Totals.GrandTotal, 1e-9)
	assert.Equal(t, "240.00", view.GrandTotalDisplay)
	assert.Equal(t, "240.00", view.LineAmounts[0])
}

func TestSessionService_EditField_HeaderDoesNotChangeTotals(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.EditLineField(ctx, created.ID, 0, "quantity", "1")
	require.NoError(t, err)
	_, err = svc.EditLineField(ctx, created.ID, 0, "rate", "50")
	require.NoError(t, err)

	view, err := svc.EditField(ctx, created.ID, "client_name", "Acme Traders")
	require.NoError(t, err)
	assert.Equal(t, "Acme Traders", view.Invoice.ClientName)
	assert.InDelta(t, 50.0, view.Totals.SubTotal, 1e-9)
}

func TestSessionService_EditField_RejectsUnknown(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.EditField(ctx, created.ID, "nonsense", "x")
	assert.ErrorIs(t, err, domain.ErrUnknownField)

	_, err = svc.EditLineField(ctx, created.ID, 99, "rate", "1")
	assert.ErrorIs(t, err, domain.ErrLineOutOfRange)
}

func TestSessionService_AddAndRemoveLine(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	view, err := svc.AddLine(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, view.Invoice.LineItems, 4)

	view, err = svc.RemoveLine(ctx, created.ID, 3)
	require.NoError(t, err)
	assert.Len(t, view.Invoice.LineItems, 3)
}

func TestSessionService_Delete(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.Equal(t, 0, svc.Count())

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrSessionNotFound)
}

func TestSessionService_Snapshot(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.EditLineField(ctx, created.ID, 0, "quantity", "1")
	require.NoError(t, err)
	_, err = svc.EditLineField(ctx, created.ID, 0, "rate", "75")
	require.NoError(t, err)

	inv, totals, err := svc.Snapshot(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "75", inv.LineItems[0].Rate)
	assert.InDelta(t, 75.0, totals.SubTotal, 1e-9)

	// Snapshot is a copy: mutating it must not leak into the session.
	inv.LineItems[0].Rate = "999"
	view, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "75", view.Invoice.LineItems[0].Rate)
}

func TestSessionService_SweepIdle(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)
	ctx := context.Background()

	a, err := svc.Create(ctx, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, nil)
	require.NoError(t, err)

	// Only idle sessions go. Edit session a so it is fresh, then sweep with
	// a zero TTL: both were created "now" so nothing strictly older exists.
	_, err = svc.EditField(ctx, a.ID, "notes", "keep me")
	require.NoError(t, err)

	removed := svc.SweepIdle(time.Hour)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 2, svc.Count())
}

func TestSessionService_ObserverReceivesSettledInvoice(t *testing.T) {
	var mu sync.Mutex
	var seen []domain.Invoice
	observer := func(inv domain.Invoice) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, inv)
	}

	svc := service.NewSessionService(testSessionConfig(), observer)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	_, err = svc.EditField(ctx, created.ID, "company_name", "Sharma & Sons")
	require.NoError(t, err)
	_, err = svc.EditLineField(ctx, created.ID, 0, "rate", "10")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, seen, 2)
	assert.Equal(t, "Sharma & Sons", seen[0].CompanyName)
	assert.Equal(t, "10", seen[1].LineItems[0].Rate)
}

func TestSessionService_SweepConcurrentWithEdits(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	// Edits and sweeps run on separate goroutines in production; under
	// -race this fails if lastEditedAt is touched without a common lock.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_, _ = svc.EditField(ctx, created.ID, "notes", "still here")
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			svc.SweepIdle(24 * time.Hour)
		}
	}()
	wg.Wait()

	assert.Equal(t, 1, svc.Count())
}

func TestSessionService_ConcurrentEditsOneSession(t *testing.T) {
	svc := service.NewSessionService(testSessionConfig(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.EditLineField(ctx, created.ID, 0, "quantity", "3")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "3", view.Invoice.LineItems[0].Quantity)
}
