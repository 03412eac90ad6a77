package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/marceelkacz03/lola-crm/internal/email"
	"github.com/marceelkacz03/lola-crm/internal/service/report"
	"github.com/marceelkacz03/lola-crm/pkg/logger"
)

// ReminderWorker runs the scheduled morning digest: today's follow-ups plus
// the current sales alerts, mailed to the team address.
type ReminderWorker struct {
	reports *report.Service
	sender  *email.DigestSender
	spec    string
	logger  *logger.Logger
	cron    *cron.Cron
}

func NewReminderWorker(reports *report.Service, sender *email.DigestSender, spec string, logger *logger.Logger) *ReminderWorker {
	return &ReminderWorker{
		reports: reports,
		sender:  sender,
		spec:    spec,
		logger:  logger,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) error {
	w.cron = cron.New()
	if _, err := w.cron.AddFunc(w.spec, func() {
		if err := w.RunOnce(ctx); err != nil {
			w.logger.Error(err, "Digest run failed")
		}
	}); err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", w.spec, err)
	}

	w.cron.Start()
	w.logger.Info("Reminder worker started", "schedule", w.spec)

	<-ctx.Done()
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	return nil
}

// RunOnce builds and sends a single digest. Exposed for manual triggering.
func (w *ReminderWorker) RunOnce(ctx context.Context) error {
	followups, err := w.reports.DailyFollowups(ctx)
	if err != nil {
		return fmt.Errorf("failed to collect follow-ups: %w", err)
	}
	alerts, err := w.reports.SalesAlerts(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to collect alerts: %w", err)
	}

	if err := w.sender.Send(followups, alerts); err != nil {
		return err
	}

	w.logger.Info("Digest sent",
		"followups", len(followups.Deals)+len(followups.Activities),
		"overdue", len(alerts.OverdueFollowups))
	return nil
}
