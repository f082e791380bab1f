package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hibiken/asynq"

	"github.com/assetdesk/assetdesk/internal/maintenance"
)

// AlertComputer yields the maintenance and warranty alerts for a given day.
type AlertComputer interface {
	ComputeAlerts(ctx context.Context, today time.Time) ([]maintenance.Alert, error)
}

// MailEnqueuer submits email jobs to the queue.
type MailEnqueuer interface {
	EnqueueSendEmail(ctx context.Context, payload SendEmailPayload) (*asynq.TaskInfo, error)
}

// AlertScanJob periodically scans for due maintenance and expiring
// warranties and mails a digest when anything is found.
type AlertScanJob struct {
	logger *slog.Logger
	alerts AlertComputer
	mail   MailEnqueuer
	mailTo string
}

// NewAlertScanJob constructs an AlertScanJob.
func NewAlertScanJob(logger *slog.Logger, alerts AlertComputer, mail MailEnqueuer, mailTo string) *AlertScanJob {
	return &AlertScanJob{logger: logger, alerts: alerts, mail: mail, mailTo: mailTo}
}

// Handle runs a single scan. Registered under TaskTypeAlertScan.
func (j *AlertScanJob) Handle(ctx context.Context, _ *asynq.Task) error {
	today := time.Now().UTC()
	alerts, err := j.alerts.ComputeAlerts(ctx, today)
	if err != nil {
		return fmt.Errorf("alert scan: %w", err)
	}
	if len(alerts) == 0 {
		j.logger.Info("alert scan complete", slog.Int("alerts", 0))
		return nil
	}
	j.logger.Info("alert scan complete", slog.Int("alerts", len(alerts)))
	if j.mail == nil || j.mailTo == "" {
		return nil
	}
	payload := SendEmailPayload{
		To:      j.mailTo,
		Subject: fmt.Sprintf("Asset alerts for %s", today.Format("2006-01-02")),
		Body:    digestBody(alerts),
	}
	if _, err := j.mail.EnqueueSendEmail(ctx, payload); err != nil {
		return fmt.Errorf("enqueue alert digest: %w", err)
	}
	return nil
}

func digestBody(alerts []maintenance.Alert) string {
	var b strings.Builder
	for _, a := range alerts {
		switch a.Kind {
		case maintenance.AlertOverdueMaintenance:
			fmt.Fprintf(&b, "Maintenance due: %s (%s), next maintenance %s\n", a.Name, a.AssetID, a.Due.Format("2006-01-02"))
		case maintenance.AlertWarrantyExpiring:
			fmt.Fprintf(&b, "Warranty expiring: %s (%s), expiry %s\n", a.Name, a.AssetID, a.Due.Format("2006-01-02"))
		}
	}
	return b.String()
}
