package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/prevmaint/internal/apperr"
	"github.com/ukydev/prevmaint/internal/clock"
	"github.com/ukydev/prevmaint/internal/db"
	"github.com/ukydev/prevmaint/internal/models"
)

// MockServiceCollection is a mock implementation of db.ServiceCollection
type MockServiceCollection struct {
	mock.Mock
}

func (m *MockServiceCollection) InsertServiceIfAbsent(ctx context.Context, equipmentID, date string) (bool, error) {
	args := m.Called(ctx, equipmentID, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockServiceCollection) FindServices(ctx context.Context, filter db.ServiceFilter) ([]models.Service, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Service), args.Error(1)
}

func (m *MockServiceCollection) SetServiceAuthorized(ctx context.Context, id string, authorized bool) error {
	args := m.Called(ctx, id, authorized)
	return args.Error(0)
}

func (m *MockServiceCollection) DeleteServicesByEquipment(ctx context.Context, equipmentID string, onlyUnauthorized bool) (int64, error) {
	args := m.Called(ctx, equipmentID, onlyUnauthorized)
	return args.Get(0).(int64), args.Error(1)
}

func newTestReconciler(store *db.MemoryStore, today time.Time, opts ...Option) *Reconciler {
	opts = append([]Option{WithLocation(time.UTC)}, opts...)
	return NewReconciler(store.Services(), store.Equipment(), clock.NewMockClock(today), opts...)
}

func servicesOf(t *testing.T, store *db.MemoryStore, equipmentID string) []models.Service {
	t.Helper()
	services, err := store.Services().FindServices(context.Background(), db.ServiceFilter{EquipmentID: equipmentID})
	require.NoError(t, err)
	return services
}

func TestReconciler_Reconcile_CreatesTargetDates(t *testing.T) {
	store := db.NewMemoryStore()
	today := time.Date(2025, time.April, 10, 9, 30, 0, 0, time.UTC)
	r := newTestReconciler(store, today)

	eq := models.Equipment{ID: "e1", Periodicity: models.PeriodicityMonthly, FirstServiceOn: "2025-04-10"}
	res, err := r.Reconcile(context.Background(), eq)
	require.NoError(t, err)
	assert.Equal(t, 13, res.Target)
	assert.Equal(t, 13, res.Created)
	assert.Equal(t, 0, res.Existing)

	services := servicesOf(t, store, "e1")
	require.Len(t, services, 13)
	assert.Equal(t, "2025-04-10", services[0].ScheduledDate)
	assert.Equal(t, "2026-04-10", services[12].ScheduledDate)
	for _, s := range services {
		assert.False(t, s.Authorized)
	}
}

func TestReconciler_Reconcile_Idempotent(t *testing.T) {
	store := db.NewMemoryStore()
	r := newTestReconciler(store, time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))
	eq := models.Equipment{ID: "e1", Periodicity: models.PeriodicityBimonthly, FirstServiceOn: "2025-01-20"}

	first, err := r.Reconcile(context.Background(), eq)
	require.NoError(t, err)
	require.NotZero(t, first.Created)

	second, err := r.Reconcile(context.Background(), eq)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, first.Target, second.Existing)
	assert.Len(t, servicesOf(t, store, "e1"), first.Created)
}

func TestReconciler_Reconcile_LeavesExistingServicesUntouched(t *testing.T) {
	store := db.NewMemoryStore()
	ctx := context.Background()
	r := newTestReconciler(store, time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))
	eq := models.Equipment{ID: "e1", Periodicity: models.PeriodicityQuarterly, FirstServiceOn: "2025-05-01"}

	_, err := r.Reconcile(ctx, eq)
	require.NoError(t, err)
	services := servicesOf(t, store, "e1")
	require.NoError(t, store.Services().SetServiceAuthorized(ctx, services[0].ID, true))

	_, err = r.Reconcile(ctx, eq)
	require.NoError(t, err)
	after := servicesOf(t, store, "e1")
	assert.Equal(t, services[0].ID, after[0].ID)
	assert.True(t, after[0].Authorized)
}

func TestReconciler_Reconcile_TopsUpAsTimePasses(t *testing.T) {
	store := db.NewMemoryStore()
	clk := clock.NewMockClock(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	r := NewReconciler(store.Services(), store.Equipment(), clk, WithLocation(time.UTC))
	eq := models.Equipment{ID: "e1", Periodicity: models.PeriodicityMonthly, FirstServiceOn: "2025-01-01"}

	_, err := r.Reconcile(context.Background(), eq)
	require.NoError(t, err)
	assert.Len(t, servicesOf(t, store, "e1"), 13)

	clk.Set(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC))
	res, err := r.Reconcile(context.Background(), eq)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Len(t, servicesOf(t, store, "e1"), 15)
}

func TestReconciler_Reconcile_InvalidAnchor(t *testing.T) {
	store := db.NewMemoryStore()
	r := newTestReconciler(store, time.Now())
	_, err := r.Reconcile(context.Background(), models.Equipment{ID: "e1", FirstServiceOn: "01/02/2025"})
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Empty(t, servicesOf(t, store, "e1"))
}

func TestReconciler_Reconcile_PartialFailureKeepsEarlierInserts(t *testing.T) {
	services := new(MockServiceCollection)
	today := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := NewReconciler(services, nil, clock.NewMockClock(today), WithLocation(time.UTC), WithHorizon(3))

	services.On("InsertServiceIfAbsent", mock.Anything, "e1", "2025-01-01").Return(true, nil)
	services.On("InsertServiceIfAbsent", mock.Anything, "e1", "2025-02-01").Return(false, nil)
	services.On("InsertServiceIfAbsent", mock.Anything, "e1", "2025-03-01").Return(false, errors.New("connection reset"))

	res, err := r.Reconcile(context.Background(), models.Equipment{ID: "e1", Periodicity: models.PeriodicityMonthly, FirstServiceOn: "2025-01-01"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, 4, res.Target)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Existing)
	services.AssertNumberOfCalls(t, "InsertServiceIfAbsent", 3)
}

func TestReconciler_Today_UsesLocation(t *testing.T) {
	store := db.NewMemoryStore()
	// 02:00 UTC on the 2nd is still the 1st in UTC-5
	now := time.Date(2025, time.March, 2, 2, 0, 0, 0, time.UTC)
	r := NewReconciler(store.Services(), store.Equipment(), clock.NewMockClock(now), WithLocation(time.FixedZone("UTC-5", -5*3600)))
	assert.Equal(t, "2025-03-01", models.FormatDate(r.Today()))
}

func TestReconciler_ReconcileAll(t *testing.T) {
	store := db.NewMemoryStore()
	ctx := context.Background()
	r := newTestReconciler(store, time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))

	require.NoError(t, store.Equipment().InsertEquipment(ctx, models.Equipment{ID: "e1", Periodicity: models.PeriodicityAnnual, FirstServiceOn: "2025-06-01"}))
	require.NoError(t, store.Equipment().InsertEquipment(ctx, models.Equipment{ID: "e2", Periodicity: models.PeriodicitySemiannual, FirstServiceOn: "2025-04-10"}))
	require.NoError(t, store.Equipment().InsertEquipment(ctx, models.Equipment{ID: "e3", Periodicity: models.PeriodicityMonthly, FirstServiceOn: "not-a-date"}))

	summary, err := r.ReconcileAll(ctx)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, 3, summary.Equipment)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1+3, summary.Created)

	assert.Len(t, servicesOf(t, store, "e1"), 1)
	assert.Len(t, servicesOf(t, store, "e2"), 3)
}

func TestReconciler_RunTopUp_StopsOnCancel(t *testing.T) {
	store := db.NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	r := newTestReconciler(store, time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.Equipment().InsertEquipment(ctx, models.Equipment{ID: "e1", Periodicity: models.PeriodicityAnnual, FirstServiceOn: "2025-06-01"}))

	done := make(chan struct{})
	go func() {
		r.RunTopUp(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		services, err := store.Services().FindServices(context.Background(), db.ServiceFilter{EquipmentID: "e1"})
		return err == nil && len(services) == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunTopUp did not stop after cancel")
	}
}
