package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceelkacz03/lola-crm/internal/calendar"
	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/pkg/logger"
	"github.com/marceelkacz03/lola-crm/pkg/metrics"
)

type fakeDealRepo struct {
	deals map[uuid.UUID]*model.DealWithAccount
}

func (f *fakeDealRepo) Create(ctx context.Context, deal *model.Deal) error { return nil }
func (f *fakeDealRepo) Get(ctx context.Context, id uuid.UUID) (*model.Deal, error) {
	if d, ok := f.deals[id]; ok {
		return &d.Deal, nil
	}
	return nil, errors.New("not found")
}
func (f *fakeDealRepo) GetWithAccount(ctx context.Context, id uuid.UUID) (*model.DealWithAccount, error) {
	if d, ok := f.deals[id]; ok {
		return d, nil
	}
	return nil, errors.New("not found")
}
func (f *fakeDealRepo) Update(ctx context.Context, deal *model.Deal) error { return nil }
func (f *fakeDealRepo) List(ctx context.Context) ([]*model.Deal, error)   { return nil, nil }
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
	byDeal       map[uuid.UUID]*model.Event
	calendarRefs map[uuid.UUID]*string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byDeal:       map[uuid.UUID]*model.Event{},
		calendarRefs: map[uuid.UUID]*string{},
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, event *model.Event) error {
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	f.byDeal[event.DealID] = event
	return nil
}
func (f *fakeEventRepo) Get(ctx context.Context, id uuid.UUID) (*model.Event, error) {
	for _, e := range f.byDeal {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}
func (f *fakeEventRepo) GetByDealID(ctx context.Context, dealID uuid.UUID) (*model.Event, error) {
	return f.byDeal[dealID], nil
}
func (f *fakeEventRepo) Update(ctx context.Context, event *model.Event) error { return nil }
func (f *fakeEventRepo) UpsertByDealID(ctx context.Context, event *model.Event) error {
	if existing, ok := f.byDeal[event.DealID]; ok {
		event.ID = existing.ID
		event.CreatedAt = existing.CreatedAt
	} else {
		event.ID = uuid.New()
		event.CreatedAt = time.Now()
	}
	copied := *event
	f.byDeal[event.DealID] = &copied
	return nil
}
func (f *fakeEventRepo) UpdateCalendarRef(ctx context.Context, id uuid.UUID, calendarEventID *string) error {
	f.calendarRefs[id] = calendarEventID
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

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (f *fakeOutboxRepo) Create(ctx context.Context, event *model.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}
func (f *fakeOutboxRepo) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	return f.events, nil
}
func (f *fakeOutboxRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMessage *string) error {
	return nil
}
func (f *fakeOutboxRepo) DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

type fakeProvider struct {
	enabled  bool
	failWith error
	inserted []*calendar.Booking
	patched  map[string]*calendar.Booking
	nextID   string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{enabled: true, patched: map[string]*calendar.Booking{}, nextID: "cal-1"}
}

func (f *fakeProvider) Enabled() bool { return f.enabled }
func (f *fakeProvider) Insert(ctx context.Context, booking *calendar.Booking) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	f.inserted = append(f.inserted, booking)
	return f.nextID, nil
}
func (f *fakeProvider) Patch(ctx context.Context, eventID string, booking *calendar.Booking) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.patched[eventID] = booking
	return nil
}
func (f *fakeProvider) List(ctx context.Context, from, to time.Time, maxResults int64) ([]*calendar.Entry, error) {
	return nil, nil
}

var testMetrics = metrics.NewMetrics("lola_crm_test", "sync")

func newTestService(deals *fakeDealRepo, events *fakeEventRepo, outbox *fakeOutboxRepo, provider *fakeProvider) *Service {
	return NewService(deals, events, outbox, provider, testMetrics, logger.NewLogger(nil))
}

func reservedDeal(accountName string) *model.DealWithAccount {
	return &model.DealWithAccount{
		Deal: model.Deal{
			ID:             uuid.New(),
			AccountID:      uuid.New(),
			EventType:      model.DealEventTypeWedding,
			EstimatedValue: 50000,
			Status:         model.DealStatusReserved,
			CreatedAt:      time.Now(),
		},
		AccountName: accountName,
	}
}

func TestEnsureEventForDealCreatesWithDefaults(t *testing.T) {
	deals := &fakeDealRepo{deals: map[uuid.UUID]*model.DealWithAccount{}}
	events := newFakeEventRepo()
	outbox := &fakeOutboxRepo{}
	provider := newFakeProvider()
	svc := newTestService(deals, events, outbox, provider)

	deal := reservedDeal("Kowalski Sp. z o.o.")
	event, result, err := svc.EnsureEventForDeal(context.Background(), deal)
	require.NoError(t, err)

	assert.Equal(t, deal.ID, event.DealID)
	assert.Equal(t, model.EventStatusPlanned, event.Status)
	assert.Equal(t, "TBD", event.Hall)
	assert.Equal(t, deal.EstimatedValue, event.FinalValue)
	assert.Equal(t, 1, event.NumberOfGuests)
	require.NotNil(t, event.OperationalNotes)
	assert.Equal(t, "Auto-created from reserved deal", *event.OperationalNotes)

	today := time.Now().UTC()
	assert.Equal(t, today.Format("2006-01-02"), event.EventDate.Format("2006-01-02"))

	assert.Equal(t, OutcomeCreated, result.Outcome)
	require.NotNil(t, result.CalendarEventID)
	assert.Equal(t, "cal-1", *result.CalendarEventID)

	require.Len(t, provider.inserted, 1)
	booking := provider.inserted[0]
	assert.Equal(t, "Reserved: Kowalski Sp. z o.o.", booking.Summary)
	assert.Equal(t, "Auto-created from CRM reserved deal.", booking.Description)
	assert.Equal(t, "Premium Venue", booking.Location)
	assert.Equal(t, today.Format("2006-01-02")+"T10:00:00", booking.Start)
	assert.Equal(t, today.Format("2006-01-02")+"T14:00:00", booking.End)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, "deal.reserved", outbox.events[0].EventType)
}

func TestEnsureEventForDealUsesDealValues(t *testing.T) {
	events := newFakeEventRepo()
	provider := newFakeProvider()
	svc := newTestService(&fakeDealRepo{}, events, &fakeOutboxRepo{}, provider)

	guests := 120
	eventDate := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	deal := reservedDeal("Nova Events")
	deal.EstimatedGuests = &guests
	deal.EventDate = &eventDate

	event, _, err := svc.EnsureEventForDeal(context.Background(), deal)
	require.NoError(t, err)

	assert.Equal(t, 120, event.NumberOfGuests)
	assert.Equal(t, "2026-10-17", event.EventDate.Format("2006-01-02"))
	assert.Equal(t, "2026-10-17T10:00:00", provider.inserted[0].Start)
	assert.Equal(t, "2026-10-17T14:00:00", provider.inserted[0].End)
}

func TestEnsureEventForDealIsIdempotent(t *testing.T) {
	events := newFakeEventRepo()
	provider := newFakeProvider()
	svc := newTestService(&fakeDealRepo{}, events, &fakeOutboxRepo{}, provider)

	deal := reservedDeal("Repeat Client")
	first, firstResult, err := svc.EnsureEventForDeal(context.Background(), deal)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, firstResult.Outcome)

	// Mimic persistence of the calendar ref between calls.
	events.byDeal[deal.ID].GoogleCalendarEventID = firstResult.CalendarEventID

	second, secondResult, err := svc.EnsureEventForDeal(context.Background(), deal)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "re-reserving must not create a second event")
	assert.Equal(t, OutcomeUpdated, secondResult.Outcome)
	assert.Len(t, provider.inserted, 1, "calendar entry must be inserted exactly once")
	assert.Contains(t, provider.patched, "cal-1")
}

func TestEnsureEventForDealPreservesHandEditedFields(t *testing.T) {
	events := newFakeEventRepo()
	provider := newFakeProvider()
	svc := newTestService(&fakeDealRepo{}, events, &fakeOutboxRepo{}, provider)

	deal := reservedDeal("Edited Client")
	notes := "Deposit received"
	start := "16:00"
	calID := "cal-existing"
	events.byDeal[deal.ID] = &model.Event{
		ID:                    uuid.New(),
		DealID:                deal.ID,
		Hall:                  "Grand Hall",
		OperationalNotes:      &notes,
		EventStartTime:        &start,
		GoogleCalendarEventID: &calID,
		CreatedAt:             time.Now(),
	}

	event, result, err := svc.EnsureEventForDeal(context.Background(), deal)
	require.NoError(t, err)

	assert.Equal(t, "Grand Hall", event.Hall)
	assert.Equal(t, "Deposit received", *event.OperationalNotes)
	assert.Equal(t, OutcomeUpdated, result.Outcome)

	booking := provider.patched["cal-existing"]
	require.NotNil(t, booking)
	assert.Contains(t, booking.Start, "T16:00:00")
}

func TestEnsureEventForDealFallbackTitle(t *testing.T) {
	provider := newFakeProvider()
	svc := newTestService(&fakeDealRepo{}, newFakeEventRepo(), &fakeOutboxRepo{}, provider)

	_, _, err := svc.EnsureEventForDeal(context.Background(), reservedDeal(""))
	require.NoError(t, err)

	// The fallback substitutes only the name, keeping the prefix.
	assert.Equal(t, "Reserved: Premium Event", provider.inserted[0].Summary)
}

func TestSyncConfirmedEventFirstSync(t *testing.T) {
	deal := reservedDeal("Acme Corp")
	deals := &fakeDealRepo{deals: map[uuid.UUID]*model.DealWithAccount{deal.ID: deal}}
	events := newFakeEventRepo()
	provider := newFakeProvider()
	svc := newTestService(deals, events, &fakeOutboxRepo{}, provider)

	event := &model.Event{
		ID:        uuid.New(),
		DealID:    deal.ID,
		EventDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Hall:      "Crystal Hall",
		Status:    model.EventStatusConfirmed,
	}

	result, err := svc.SyncConfirmedEvent(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, OutcomeCreated, result.Outcome)
	require.Len(t, provider.inserted, 1)
	booking := provider.inserted[0]
	assert.Equal(t, "Confirmed: Acme Corp", booking.Summary)
	assert.Equal(t, "Confirmed event synced from CRM", booking.Description)
	assert.Equal(t, "Crystal Hall", booking.Location)
	assert.Equal(t, "2026-09-12T10:00:00", booking.Start)
	assert.Equal(t, "2026-09-12T14:00:00", booking.End)
}

func TestSyncConfirmedEventResync(t *testing.T) {
	deal := reservedDeal("Acme Corp")
	deals := &fakeDealRepo{deals: map[uuid.UUID]*model.DealWithAccount{deal.ID: deal}}
	provider := newFakeProvider()
	svc := newTestService(deals, newFakeEventRepo(), &fakeOutboxRepo{}, provider)

	calID := "cal-77"
	event := &model.Event{
		ID:                    uuid.New(),
		DealID:                deal.ID,
		EventDate:             time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Hall:                  "Crystal Hall",
		Status:                model.EventStatusConfirmed,
		GoogleCalendarEventID: &calID,
	}

	result, err := svc.SyncConfirmedEvent(context.Background(), event)
	require.NoError(t, err)

	assert.Equal(t, OutcomeUpdated, result.Outcome)
	assert.Empty(t, provider.inserted)
	booking := provider.patched["cal-77"]
	require.NotNil(t, booking)
	assert.Equal(t, "Synced after CRM update", booking.Description)
}

func TestSyncConfirmedEventFallbackName(t *testing.T) {
	deal := reservedDeal("")
	deals := &fakeDealRepo{deals: map[uuid.UUID]*model.DealWithAccount{deal.ID: deal}}
	provider := newFakeProvider()
	svc := newTestService(deals, newFakeEventRepo(), &fakeOutboxRepo{}, provider)

	event := &model.Event{
		ID:        uuid.New(),
		DealID:    deal.ID,
		EventDate: time.Now(),
		Status:    model.EventStatusConfirmed,
	}

	_, err := svc.SyncConfirmedEvent(context.Background(), event)
	require.NoError(t, err)

	// The confirmed path only substitutes the name, keeping the prefix.
	assert.Equal(t, "Confirmed: Event", provider.inserted[0].Summary)
}

func TestSyncSkippedWhenProviderDisabled(t *testing.T) {
	deal := reservedDeal("No Calendar")
	deals := &fakeDealRepo{deals: map[uuid.UUID]*model.DealWithAccount{deal.ID: deal}}
	provider := newFakeProvider()
	provider.enabled = false
	svc := newTestService(deals, newFakeEventRepo(), &fakeOutboxRepo{}, provider)

	calID := "cal-kept"
	event := &model.Event{
		ID:                    uuid.New(),
		DealID:                deal.ID,
		EventDate:             time.Now(),
		Status:                model.EventStatusConfirmed,
		GoogleCalendarEventID: &calID,
	}

	result, err := svc.SyncConfirmedEvent(context.Background(), event)
	require.NoError(t, err, "a disabled provider must not surface an error")

	assert.Equal(t, OutcomeSkipped, result.Outcome)
	require.NotNil(t, result.CalendarEventID)
	assert.Equal(t, "cal-kept", *result.CalendarEventID, "previous ref is kept on skip")
}

func TestConcurrentReservesWithoutPersistedRefInsertTwice(t *testing.T) {
	events := newFakeEventRepo()
	provider := newFakeProvider()
	svc := newTestService(&fakeDealRepo{}, events, &fakeOutboxRepo{}, provider)

	// Two racing reserves can both observe the event without a calendar ref.
	// Delivery is at-least-once: both insert, neither fails.
	deal := reservedDeal("Racy Client")
	_, _, err := svc.EnsureEventForDeal(context.Background(), deal)
	require.NoError(t, err)
	_, _, err = svc.EnsureEventForDeal(context.Background(), deal)
	require.NoError(t, err)

	assert.Len(t, provider.inserted, 2)
}

func TestSyncFailureIsSurfaced(t *testing.T) {
	deal := reservedDeal("Flaky Calendar")
	deals := &fakeDealRepo{deals: map[uuid.UUID]*model.DealWithAccount{deal.ID: deal}}
	provider := newFakeProvider()
	provider.failWith = errors.New("calendar unavailable")
	svc := newTestService(deals, newFakeEventRepo(), &fakeOutboxRepo{}, provider)

	event := &model.Event{
		ID:        uuid.New(),
		DealID:    deal.ID,
		EventDate: time.Now(),
		Status:    model.EventStatusConfirmed,
	}

	_, err := svc.SyncConfirmedEvent(context.Background(), event)
	require.Error(t, err, "a configured provider failing must be raised")
}
