package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/assetdesk/assetdesk/internal/maintenance"
	"github.com/assetdesk/assetdesk/jobs"
	_ "github.com/assetdesk/assetdesk/testing"
)

type stubAlertComputer struct {
	alerts []maintenance.Alert
}

func (s *stubAlertComputer) ComputeAlerts(ctx context.Context, today time.Time) ([]maintenance.Alert, error) {
	return s.alerts, nil
}

type capturedMail struct {
	payloads []jobs.SendEmailPayload
}

func (c *capturedMail) EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) (*asynq.TaskInfo, error) {
	c.payloads = append(c.payloads, payload)
	return &asynq.TaskInfo{}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAlertScanEnqueuesDigest(t *testing.T) {
	due := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	computer := &stubAlertComputer{alerts: []maintenance.Alert{
		{Kind: maintenance.AlertOverdueMaintenance, AssetID: "A001", Name: "Lathe", Due: due},
		{Kind: maintenance.AlertWarrantyExpiring, AssetID: "A002", Name: "Forklift", Due: due.AddDate(0, 0, 20)},
	}}
	mail := &capturedMail{}
	job := jobs.NewAlertScanJob(discardLogger(), computer, mail, "facilities@example.com")

	require.NoError(t, job.Handle(context.Background(), jobs.NewAlertScanTask()))
	require.Len(t, mail.payloads, 1)
	require.Equal(t, "facilities@example.com", mail.payloads[0].To)
	require.Contains(t, mail.payloads[0].Body, "Maintenance due: Lathe (A001)")
	require.Contains(t, mail.payloads[0].Body, "Warranty expiring: Forklift (A002)")
}

func TestAlertScanQuietDay(t *testing.T) {
	mail := &capturedMail{}
	job := jobs.NewAlertScanJob(discardLogger(), &stubAlertComputer{}, mail, "facilities@example.com")

	require.NoError(t, job.Handle(context.Background(), jobs.NewAlertScanTask()))
	require.Empty(t, mail.payloads)
}

func TestAlertScanNoRecipientConfigured(t *testing.T) {
	computer := &stubAlertComputer{alerts: []maintenance.Alert{
		{Kind: maintenance.AlertOverdueMaintenance, AssetID: "A001", Name: "Lathe"},
	}}
	mail := &capturedMail{}
	job := jobs.NewAlertScanJob(discardLogger(), computer, mail, "")

	require.NoError(t, job.Handle(context.Background(), jobs.NewAlertScanTask()))
	require.Empty(t, mail.payloads)
}

func TestSendEmailTaskRoundTrip(t *testing.T) {
	task, err := jobs.NewSendEmailTask(jobs.SendEmailPayload{To: "x@example.com", Subject: "s", Body: "b"})
	require.NoError(t, err)
	require.Equal(t, jobs.TaskTypeSendEmail, task.Type())
	require.NoError(t, jobs.HandleSendEmailTask(context.Background(), task))
}
