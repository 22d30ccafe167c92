package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"

	"tracker/internal/tracker"
	"tracker/internal/worker"
	"tracker/pkg/domain"
	"tracker/pkg/logger"
	"tracker/pkg/storage/memory"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func makeJob(id int64, templateID domain.TemplateID) *river.Job[tracker.PurgeTemplateArgs] {
	return &river.Job[tracker.PurgeTemplateArgs]{
		JobRow: &rivertype.JobRow{ID: id},
		Args:   tracker.PurgeTemplateArgs{TemplateID: templateID},
	}
}

func storedTemplate(t *testing.T, mem *memory.Memory) *domain.WorkoutTemplate {
	t.Helper()

	template, err := domain.NewWorkoutTemplate(domain.UserID(uuid.New()), "push day", nil)
	require.NoError(t, err)
	require.NoError(t, mem.StoreTemplates(context.Background(), *template))

	return template
}

func TestTemplatePurgeWorker_PurgesSoftDeleted(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	w := worker.NewTemplatePurgeWorker(mem)

	template := storedTemplate(t, mem)
	template.SoftDelete(time.Now().UTC())
	require.NoError(t, mem.StoreTemplates(ctx, *template))

	require.NoError(t, w.Work(ctx, makeJob(1, template.ID)))

	gone, err := mem.TemplateByIDAnyState(ctx, template.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestTemplatePurgeWorker_SkipsLiveTemplate(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	w := worker.NewTemplatePurgeWorker(mem)

	template := storedTemplate(t, mem)

	require.NoError(t, w.Work(ctx, makeJob(2, template.ID)))

	kept, err := mem.TemplateByID(ctx, template.ID)
	require.NoError(t, err)
	require.NotNil(t, kept)
}

func TestTemplatePurgeWorker_MissingTemplateIsNoop(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	w := worker.NewTemplatePurgeWorker(mem)

	require.NoError(t, w.Work(ctx, makeJob(3, domain.TemplateID(uuid.New()))))
}
