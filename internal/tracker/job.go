package tracker

import (
	"tracker/pkg/domain"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// PurgeTemplateArgs contains the arguments for a template purge job. The
// template id is the unique key, so one soft-deleted template has at most one
// pending purge job.
type PurgeTemplateArgs struct {
	// TemplateID is the soft-deleted template to purge.
	TemplateID domain.TemplateID `json:"templateId" river:"unique"`
}

// Kind returns the River job kind used to register and dispatch the purge worker.
func (args PurgeTemplateArgs) Kind() string { return "PurgeWorkoutTemplateJob" }

// InsertOpts returns the River options that control how the job is enqueued,
// keeping at most one live purge job per template.
func (args PurgeTemplateArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
