package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/repository"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
)

const defaultInactiveDays = 5

// Checklist labels for upcoming events, in display order.
var checklistLabels = []string{
	"Hall assigned",
	"Start time set",
	"End time set",
	"Final value confirmed",
	"Operational notes added",
}

// Service computes the alert, follow-up and reporting views. Dashboard stats
// are cached per role for a short TTL since every user hits them on login.
type Service struct {
	deals      repository.DealRepository
	events     repository.EventRepository
	activities repository.ActivityRepository
	accounts   repository.AccountRepository

	upcomingLimit int
	cache         *gocache.Cache
}

func NewService(
	deals repository.DealRepository,
	events repository.EventRepository,
	activities repository.ActivityRepository,
	accounts repository.AccountRepository,
	upcomingLimit int,
	statsCacheTTL time.Duration,
) *Service {
	if upcomingLimit <= 0 {
		upcomingLimit = 8
	}
	return &Service{
		deals:         deals,
		events:        events,
		activities:    activities,
		accounts:      accounts,
		upcomingLimit: upcomingLimit,
		cache:         gocache.New(statsCacheTTL, 2*statsCacheTTL),
	}
}

// SalesAlerts flags open deals that need attention: overdue follow-ups,
// deals with no activity for inactiveDays, and deals with no follow-up
// scheduled at all. Reserved and lost deals are never flagged.
func (s *Service) SalesAlerts(ctx context.Context, inactiveDays int) (*model.SalesAlerts, error) {
	if inactiveDays <= 0 {
		inactiveDays = defaultInactiveDays
	}

	deals, err := s.deals.ListWithAccounts(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	lastActivity, err := s.activities.LatestActivityByDeal(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := time.Now().UTC()
	today := startOfDay(now)
	inactiveCutoff := now.AddDate(0, 0, -inactiveDays)

	alerts := &model.SalesAlerts{
		InactiveDays:     inactiveDays,
		OverdueFollowups: []model.DealAlert{},
		InactiveDeals:    []model.InactiveDealAlert{},
		MissingFollowups: []model.DealAlert{},
	}

	for _, deal := range deals {
		if !deal.IsOpen() {
			continue
		}

		if deal.NextFollowupDate == nil {
			alerts.MissingFollowups = append(alerts.MissingFollowups, model.DealAlert{
				ID:          deal.ID,
				Status:      deal.Status,
				AccountName: deal.AccountName,
			})
		} else if deal.NextFollowupDate.Before(today) {
			alerts.OverdueFollowups = append(alerts.OverdueFollowups, model.DealAlert{
				ID:               deal.ID,
				Status:           deal.Status,
				NextFollowupDate: deal.NextFollowupDate,
				AccountName:      deal.AccountName,
			})
		}

		// Deals with no logged activity fall back to their creation time.
		last, ok := lastActivity[deal.ID]
		if !ok {
			last = deal.CreatedAt
		}
		if last.Before(inactiveCutoff) {
			alerts.InactiveDeals = append(alerts.InactiveDeals, model.InactiveDealAlert{
				ID:             deal.ID,
				Status:         deal.Status,
				LastActivityAt: last,
				AccountName:    deal.AccountName,
			})
		}
	}

	return alerts, nil
}

// DailyFollowups lists deals and activities whose follow-up lands today,
// using the [today, tomorrow) window.
func (s *Service) DailyFollowups(ctx context.Context) (*model.DailyFollowups, error) {
	today := startOfDay(time.Now())
	tomorrow := today.AddDate(0, 0, 1)

	dueDeals, err := s.deals.ListDueFollowups(ctx, today, tomorrow)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	dueActivities, err := s.activities.ListDueFollowups(ctx, today, tomorrow)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	followups := &model.DailyFollowups{
		Deals:      []model.FollowupDeal{},
		Activities: []model.FollowupActivity{},
	}
	accountNames := map[uuid.UUID]string{}

	for _, deal := range dueDeals {
		followups.Deals = append(followups.Deals, model.FollowupDeal{
			ID:               deal.ID,
			Status:           deal.Status,
			NextFollowupDate: deal.NextFollowupDate,
			AccountID:        deal.AccountID,
			AccountName:      deal.AccountName,
		})
	}

	if len(dueActivities) > 0 {
		allDeals, err := s.deals.ListWithAccounts(ctx)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		for _, deal := range allDeals {
			accountNames[deal.ID] = deal.AccountName
		}
	}

	for _, activity := range dueActivities {
		followups.Activities = append(followups.Activities, model.FollowupActivity{
			ID:               activity.ID,
			Type:             activity.Type,
			NextFollowupDate: activity.NextFollowupDate,
			DealID:           activity.DealID,
			AccountName:      accountNames[activity.DealID],
		})
	}

	return followups, nil
}

// WeeklyReport summarizes the trailing 7-day window: every deal created in
// the window counts toward the pipeline, plus the reserved-vs-lost conversion
// rate and confirmed revenue.
func (s *Service) WeeklyReport(ctx context.Context) (*model.WeeklyReport, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -7)

	deals, err := s.deals.ListCreatedBetween(ctx, from, now)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	events, err := s.events.ListCreatedBetween(ctx, from, now)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	var pipelineValue, confirmedRevenue float64
	var reserved, lost int
	for _, deal := range deals {
		pipelineValue += deal.EstimatedValue
		switch deal.Status {
		case model.DealStatusReserved:
			reserved++
		case model.DealStatusLost:
			lost++
		}
	}
	for _, event := range events {
		if event.Status == model.EventStatusConfirmed || event.Status == model.EventStatusCompleted {
			confirmedRevenue += event.FinalValue
		}
	}

	return &model.WeeklyReport{
		PeriodStart:      from.Format("2006-01-02"),
		PeriodEnd:        now.Format("2006-01-02"),
		PipelineValue:    pipelineValue,
		ConversionRate:   conversionRate(reserved, lost),
		ConfirmedRevenue: confirmedRevenue,
	}, nil
}

// DashboardStats builds the landing-page numbers. STAFF gets only the
// upcoming confirmed events with every figure zeroed; full-access roles get
// the totals plus planned events in the upcoming list.
func (s *Service) DashboardStats(ctx context.Context, role model.AppRole) (*model.DashboardStats, error) {
	cacheKey := fmt.Sprintf("dashboard:%s", role)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached.(*model.DashboardStats), nil
	}

	now := time.Now().UTC()

	if !model.HasAtLeastRole(role, model.RoleManager) {
		upcoming, err := s.upcomingEvents(ctx, now, model.EventStatusConfirmed)
		if err != nil {
			return nil, err
		}
		stats := &model.DashboardStats{
			SalesBySource:  []model.SourceValue{},
			UpcomingEvents: upcoming,
		}
		s.cache.Set(cacheKey, stats, gocache.DefaultExpiration)
		return stats, nil
	}

	deals, err := s.deals.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	allEvents, err := s.events.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	accounts, err := s.accounts.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	sourceByAccount := make(map[uuid.UUID]model.AccountSource, len(accounts))
	for _, account := range accounts {
		sourceByAccount[account.ID] = account.Source
	}

	var pipeline, monthlySales, completedSum float64
	var reserved, lost, completed int
	bySource := map[model.AccountSource]float64{}
	for _, deal := range deals {
		pipeline += deal.EstimatedValue
		switch deal.Status {
		case model.DealStatusReserved:
			reserved++
		case model.DealStatusLost:
			lost++
		}

		source, ok := sourceByAccount[deal.AccountID]
		if !ok {
			source = model.AccountSourceOther
		}
		bySource[source] += deal.EstimatedValue
	}
	for _, event := range allEvents {
		// Monthly sales go by when the event happens, not when it was booked.
		if event.Status == model.EventStatusConfirmed &&
			!event.EventDate.Before(monthStart) && event.EventDate.Before(monthEnd) {
			monthlySales += event.FinalValue
		}
		if event.Status == model.EventStatusCompleted {
			completedSum += event.FinalValue
			completed++
		}
	}

	averageEventValue := 0.0
	if completed > 0 {
		averageEventValue = completedSum / float64(completed)
	}

	salesBySource := make([]model.SourceValue, 0, len(bySource))
	for _, source := range []model.AccountSource{
		model.AccountSourceInternalBase,
		model.AccountSourceOwnPortfolio,
		model.AccountSourcePlanner,
		model.AccountSourceNetworking,
		model.AccountSourceOther,
	} {
		if value, ok := bySource[source]; ok {
			salesBySource = append(salesBySource, model.SourceValue{Source: source, Value: value})
		}
	}

	upcoming, err := s.upcomingEvents(ctx, now, model.EventStatusConfirmed, model.EventStatusPlanned)
	if err != nil {
		return nil, err
	}

	stats := &model.DashboardStats{
		TotalPipelineValue: pipeline,
		MonthlySalesValue:  monthlySales,
		ConversionRate:     conversionRate(reserved, lost),
		AverageEventValue:  averageEventValue,
		SalesBySource:      salesBySource,
		UpcomingEvents:     upcoming,
	}

	s.cache.Set(cacheKey, stats, gocache.DefaultExpiration)
	return stats, nil
}

func (s *Service) upcomingEvents(ctx context.Context, now time.Time, statuses ...model.EventStatus) ([]model.UpcomingEvent, error) {
	events, err := s.events.ListUpcoming(ctx, startOfDay(now), s.upcomingLimit, statuses...)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	upcoming := make([]model.UpcomingEvent, 0, len(events))
	for _, event := range events {
		upcoming = append(upcoming, model.UpcomingEvent{
			ID:             event.ID,
			EventDate:      event.EventDate,
			Hall:           event.Hall,
			Status:         event.Status,
			NumberOfGuests: event.NumberOfGuests,
		})
	}
	return upcoming, nil
}

// OperationalChecklist reviews confirmed events in the next 7 days for
// missing operational details.
func (s *Service) OperationalChecklist(ctx context.Context) (*model.OperationalChecklist, error) {
	now := time.Now()
	today := startOfDay(now)
	weekEnd := today.AddDate(0, 0, 7)

	events, err := s.events.ListByDateRange(ctx, model.EventStatusConfirmed, today, weekEnd)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	accountNames, err := s.accountNamesByDeal(ctx)
	if err != nil {
		return nil, err
	}

	checklist := &model.OperationalChecklist{Events: []model.EventChecklist{}}
	for _, event := range events {
		items := checklistItems(event)

		entry := model.EventChecklist{
			ID:           event.ID,
			AccountName:  accountNames[event.DealID],
			EventDate:    event.EventDate,
			Hall:         event.Hall,
			TotalItems:   len(items),
			PendingItems: []string{},
		}
		for _, item := range items {
			if item.Done {
				entry.CompletedItems++
			} else {
				entry.PendingItems = append(entry.PendingItems, item.Label)
			}
		}

		checklist.Events = append(checklist.Events, entry)
		checklist.Totals.EventsInWeek++
		if startOfDay(event.EventDate).Equal(today) {
			checklist.Totals.EventsToday++
		}
		checklist.Totals.TotalPendingItems += len(entry.PendingItems)
	}

	return checklist, nil
}

// SellerKpis is the lightweight per-pipeline summary on the seller home view.
func (s *Service) SellerKpis(ctx context.Context) (*model.SellerKpis, error) {
	now := time.Now()
	weekStart := now.AddDate(0, 0, -7)

	deals, err := s.deals.List(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	completed, err := s.events.List(ctx, model.EventStatusCompleted)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	kpis := &model.SellerKpis{Completed: len(completed)}
	for _, deal := range deals {
		if deal.CreatedAt.After(weekStart) {
			kpis.NewThisWeek++
		}
		switch deal.Status {
		case model.DealStatusOfferSent:
			kpis.OffersSent++
		case model.DealStatusNegotiation:
			kpis.InNegotiation++
		}
	}
	return kpis, nil
}

func (s *Service) accountNamesByDeal(ctx context.Context) (map[uuid.UUID]string, error) {
	deals, err := s.deals.ListWithAccounts(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	names := make(map[uuid.UUID]string, len(deals))
	for _, deal := range deals {
		names[deal.ID] = deal.AccountName
	}
	return names, nil
}

func checklistItems(event *model.Event) []model.ChecklistItem {
	done := []bool{
		event.Hall != "" && event.Hall != "TBD",
		event.EventStartTime != nil && *event.EventStartTime != "",
		event.EventEndTime != nil && *event.EventEndTime != "",
		event.FinalValue > 0,
		event.OperationalNotes != nil && *event.OperationalNotes != "",
	}
	items := make([]model.ChecklistItem, len(checklistLabels))
	for i, label := range checklistLabels {
		items[i] = model.ChecklistItem{Label: label, Done: done[i]}
	}
	return items
}

// conversionRate is reserved / (reserved + lost) as a percentage, 0 when no
// deal has been decided yet.
func conversionRate(reserved, lost int) float64 {
	decided := reserved + lost
	if decided == 0 {
		return 0
	}
	return float64(reserved) / float64(decided) * 100
}

// startOfDay truncates in UTC so date boundaries line up with follow-up
// dates, which parse to UTC midnight.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
