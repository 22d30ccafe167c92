package worker

import (
	"context"
	"fmt"
	"tracker/internal/tracker"
	"tracker/pkg/logger"
	"tracker/pkg/storage"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// TemplatePurgeWorker physically removes soft-deleted workout templates once
// their retention window has elapsed. Jobs are enqueued, inside the same
// session as the soft delete, by the tracker's DeleteWorkoutTemplate.
//
// The worker re-checks the template state at execution time: a template that
// was removed some other way, or that is (no longer) soft-deleted, makes the
// job a no-op rather than an error. That keeps the job safe to retry and safe
// against rows resurrected between scheduling and execution.
type TemplatePurgeWorker struct {
	river.WorkerDefaults[tracker.PurgeTemplateArgs]

	storage storage.Storage
}

// NewTemplatePurgeWorker constructs a TemplatePurgeWorker on the given storage.
func NewTemplatePurgeWorker(storage storage.Storage) *TemplatePurgeWorker {
	return &TemplatePurgeWorker{storage: storage}
}

// Work purges one soft-deleted template.
func (w *TemplatePurgeWorker) Work(ctx context.Context, job *river.Job[tracker.PurgeTemplateArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("templateId", job.Args.TemplateID.String()))

	template, err := w.storage.TemplateByIDAnyState(ctx, job.Args.TemplateID)
	if err != nil {
		logger.Error(ctx, "error loading template for purge", zap.Error(err))

		return fmt.Errorf("could not get template: %w", err)
	}
	if template == nil {
		logger.Info(ctx, "template already gone, nothing to purge")

		return nil
	}
	if !template.Deleted {
		logger.Info(ctx, "template is live, skipping purge")

		return nil
	}

	if err := w.storage.PurgeTemplate(ctx, job.Args.TemplateID); err != nil {
		logger.Error(ctx, "error purging template", zap.Error(err))

		return fmt.Errorf("could not purge template: %w", err)
	}

	logger.Info(ctx, "template purged")

	return nil
}
