// File: internal/jobs/event_archival.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"school_portal_backend/internal/config"
	"school_portal_backend/internal/event"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// EventArchivalJob flags past events as archived on a schedule.
type EventArchivalJob struct {
	eventService  *event.Service
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewEventArchivalJob creates a new EventArchivalJob.
func NewEventArchivalJob(
	eventService *event.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *EventArchivalJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &EventArchivalJob{
		eventService:  eventService,
		logger:        logger.Named("EventArchivalJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *EventArchivalJob) SetupAndStart() error {
	jobSpec := j.cfg.EventArchivalJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Event archival job schedule not defined (EVENT_ARCHIVAL_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule event archival job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Event archival job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *EventArchivalJob) runJob() {
	j.logger.Info("Starting event archival job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	archived, err := j.eventService.ArchivePastEvents(ctx)
	if err != nil {
		j.logger.Error("Event archival job run failed", zap.Error(err))
		return
	}
	j.logger.Info("Event archival job run completed", zap.Int64("events_archived", archived))
}

// Stop gracefully stops the cron scheduler.
func (j *EventArchivalJob) Stop() {
	if j.cronScheduler == nil {
		return
	}
	j.logger.Info("Stopping event archival job scheduler...")
	stopCtx := j.cronScheduler.Stop()
	select {
	case <-stopCtx.Done():
		j.logger.Info("Event archival job scheduler stopped gracefully.")
	case <-time.After(10 * time.Second):
		j.logger.Warn("Event archival job scheduler stop timed out.")
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
