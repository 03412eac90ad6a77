package deal

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceelkacz03/lola-crm/internal/calendar"
	"github.com/marceelkacz03/lola-crm/internal/model"
	syncsvc "github.com/marceelkacz03/lola-crm/internal/service/sync"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/logger"
	"github.com/marceelkacz03/lola-crm/pkg/metrics"
)

type fakeDealRepo struct {
	byID    map[uuid.UUID]*model.Deal
	names   map[uuid.UUID]string
	updated []*model.Deal
}

func newFakeDealRepo() *fakeDealRepo {
	return &fakeDealRepo{byID: map[uuid.UUID]*model.Deal{}, names: map[uuid.UUID]string{}}
}

func (f *fakeDealRepo) Create(ctx context.Context, deal *model.Deal) error {
	deal.ID = uuid.New()
	deal.CreatedAt = time.Now()
	f.byID[deal.ID] = deal
	return nil
}
func (f *fakeDealRepo) Get(ctx context.Context, id uuid.UUID) (*model.Deal, error) {
	deal, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *deal
	return &copied, nil
}
func (f *fakeDealRepo) GetWithAccount(ctx context.Context, id uuid.UUID) (*model.DealWithAccount, error) {
	deal, ok := f.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &model.DealWithAccount{Deal: *deal, AccountName: f.names[id]}, nil
}
func (f *fakeDealRepo) Update(ctx context.Context, deal *model.Deal) error {
	f.byID[deal.ID] = deal
	f.updated = append(f.updated, deal)
	return nil
}
func (f *fakeDealRepo) List(ctx context.Context) ([]*model.Deal, error) { return nil, nil }
func (f *fakeDealRepo) ListWithAccounts(ctx context.Context) ([]*model.DealWithAccount, error) {
	return nil, nil
}
func (f *fakeDealRepo) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Deal, error) {
	return nil, nil
}
func (f *fakeDealRepo) ListDueFollowups(ctx context.Context, from, to time.Time) ([]*model.DealWithAccount, error) {
	return nil, nil
}

type fakeEventRepo struct {
	byDeal map[uuid.UUID]*model.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byDeal: map[uuid.UUID]*model.Event{}}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *model.Event) error { return nil }
func (f *fakeEventRepo) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	return nil, sql.ErrNoRows
}
func (f *fakeEventRepo) GetByDealID(ctx context.Context, dealID uuid.UUID) (*model.Event, error) {
	return f.byDeal[dealID], nil
}
func (f *fakeEventRepo) Update(ctx context.Context, event *model.Event) error { return nil }
func (f *fakeEventRepo) UpsertByDealID(ctx context.Context, event *model.Event) error {
	if existing, ok := f.byDeal[event.DealID]; ok {
		event.ID = existing.ID
	} else {
		event.ID = uuid.New()
	}
	copied := *event
	f.byDeal[event.DealID] = &copied
	return nil
}
func (f *fakeEventRepo) UpdateCalendarRef(ctx context.Context, id uuid.UUID, calendarEventID *string) error {
	for _, e := range f.byDeal {
		if e.ID == id {
			e.GoogleCalendarEventID = calendarEventID
		}
	}
	return nil
}
func (f *fakeEventRepo) List(ctx context.Context, statuses ...model.EventStatus) ([]*model.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) ListUpcoming(ctx context.Context, from time.Time, limit int, statuses ...model.EventStatus) ([]*model.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) ListCreatedBetween(ctx context.Context, from, to time.Time) ([]*model.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) ListByDateRange(ctx context.Context, status model.EventStatus, from, to time.Time) ([]*model.Event, error) {
	return nil, nil
}

type fakeOutboxRepo struct{}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error { return nil }
func (f *fakeOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error {
	return nil
}
func (f *fakeOutboxRepo) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeProvider struct {
	inserts int
	patches int
}

func (f *fakeProvider) Enabled() bool { return true }
func (f *fakeProvider) Insert(ctx context.Context, booking *calendar.Booking) (string, error) {
	f.inserts++
	return "cal-1", nil
}
func (f *fakeProvider) Patch(ctx context.Context, eventID string, booking *calendar.Booking) error {
	f.patches++
	return nil
}
func (f *fakeProvider) List(ctx context.Context, from, to time.Time, maxResults int64) ([]*calendar.Entry, error) {
	return nil, nil
}

var testMetrics = metrics.NewMetrics("lola_crm_test", "deal")

type testEnv struct {
	deals    *fakeDealRepo
	events   *fakeEventRepo
	provider *fakeProvider
	svc      *Service
}

func newTestEnv() *testEnv {
	deals := newFakeDealRepo()
	events := newFakeEventRepo()
	provider := &fakeProvider{}
	sync := syncsvc.NewService(deals, events, &fakeOutboxRepo{}, provider, testMetrics, logger.NewLogger(nil))
	return &testEnv{
		deals:    deals,
		events:   events,
		provider: provider,
		svc:      NewService(deals, sync),
	}
}

func createReq(status model.DealStatus) *model.CreateDealRequest {
	return &model.CreateDealRequest{
		AccountID:      uuid.New(),
		EventType:      model.DealEventTypeCorporate,
		EstimatedValue: 25000,
		Status:         status,
		Probability:    40,
		OwnerID:        uuid.New(),
	}
}

func TestCreateDealOpenStatusNoSync(t *testing.T) {
	env := newTestEnv()

	result, err := env.svc.CreateDeal(context.Background(), createReq(model.DealStatusNewLead))
	require.NoError(t, err)

	assert.Nil(t, result.Sync)
	assert.Empty(t, env.events.byDeal)
	assert.Zero(t, env.provider.inserts)
}

func TestCreateReservedDealMaterializesEvent(t *testing.T) {
	env := newTestEnv()

	result, err := env.svc.CreateDeal(context.Background(), createReq(model.DealStatusReserved))
	require.NoError(t, err)

	require.NotNil(t, result.Sync)
	assert.Equal(t, syncsvc.OutcomeCreated, result.Sync.Outcome)
	assert.Equal(t, 1, env.provider.inserts)

	event := env.events.byDeal[result.Deal.ID]
	require.NotNil(t, event)
	assert.Equal(t, model.EventStatusPlanned, event.Status)
	assert.Equal(t, 25000.0, event.FinalValue)
}

func TestUpdateDealTransitionToReservedTriggersSync(t *testing.T) {
	env := newTestEnv()

	created, err := env.svc.CreateDeal(context.Background(), createReq(model.DealStatusNegotiation))
	require.NoError(t, err)
	require.Nil(t, created.Sync)

	reserved := model.DealStatusReserved
	updated, err := env.svc.UpdateDeal(context.Background(), created.Deal.ID, &model.UpdateDealRequest{Status: &reserved})
	require.NoError(t, err)

	require.NotNil(t, updated.Sync)
	assert.Equal(t, syncsvc.OutcomeCreated, updated.Sync.Outcome)
	assert.Equal(t, 1, env.provider.inserts)
}

func TestUpdateDealReappliedReservedPatchesNotInserts(t *testing.T) {
	env := newTestEnv()

	created, err := env.svc.CreateDeal(context.Background(), createReq(model.DealStatusReserved))
	require.NoError(t, err)

	reserved := model.DealStatusReserved
	probability := 95
	updated, err := env.svc.UpdateDeal(context.Background(), created.Deal.ID, &model.UpdateDealRequest{
		Status:      &reserved,
		Probability: &probability,
	})
	require.NoError(t, err)

	// Re-applying reserved re-syncs, but never creates a second event or
	// calendar entry.
	require.NotNil(t, updated.Sync)
	assert.Equal(t, syncsvc.OutcomeUpdated, updated.Sync.Outcome)
	assert.Equal(t, 95, updated.Deal.Probability)
	assert.Equal(t, 1, env.provider.inserts)
	assert.Equal(t, 1, env.provider.patches)
	assert.Len(t, env.events.byDeal, 1)
}

func TestUpdateDealPatchesOnlyAllowedFields(t *testing.T) {
	env := newTestEnv()

	created, err := env.svc.CreateDeal(context.Background(), createReq(model.DealStatusContacted))
	require.NoError(t, err)

	followup := "2026-10-01"
	updated, err := env.svc.UpdateDeal(context.Background(), created.Deal.ID, &model.UpdateDealRequest{
		NextFollowupDate: &followup,
	})
	require.NoError(t, err)

	assert.Equal(t, model.DealStatusContacted, updated.Deal.Status)
	require.NotNil(t, updated.Deal.NextFollowupDate)
	assert.Equal(t, "2026-10-01", updated.Deal.NextFollowupDate.Format("2006-01-02"))
	assert.Equal(t, 25000.0, updated.Deal.EstimatedValue, "estimated value is not patchable")
}

func TestGetDealNotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetDeal(context.Background(), uuid.New())
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.StatusCode())
}
