// Package workflows defines the document reindex pass as a Temporal
// workflow. Passes are serialized by running every pass under the same
// workflow ID.
package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"ragbot/internal/activities"
)

const QueryGetIndexProgress = "GetIndexProgress"

// DocsIndexWorkflow reconciles the document folder with the vector store:
// plan, delete vanished documents, reindex changed ones, persist the
// manifest. A single document's failure marks it failed and carries its old
// manifest entry forward for retry on the next pass; it never aborts the
// pass.
func DocsIndexWorkflow(ctx workflow.Context, input DocsIndexInput) (DocsIndexResult, error) {
	_ = input
	progress := DocsIndexProgress{PerFile: map[string]string{}}
	if err := workflow.SetQueryHandler(ctx, QueryGetIndexProgress, func() (DocsIndexProgress, error) {
		return progress, nil
	}); err != nil {
		return DocsIndexResult{}, err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var planOut activities.PlanIndexOutput
	if err := workflow.ExecuteActivity(ctx, "PlanIndexActivity", activities.PlanIndexInput{}).Get(ctx, &planOut); err != nil {
		return DocsIndexResult{}, err
	}
	plan := planOut.Plan
	progress.Total = len(plan.ToIndex) + len(plan.ToDelete) + len(plan.Unchanged) + len(plan.Unreadable)

	var result DocsIndexResult
	entries := map[string]string{}

	for _, f := range plan.Unchanged {
		entries[f.Path] = f.Fingerprint
		progress.PerFile[f.Path] = "skipped"
		progress.Done++
		result.Skipped++
	}
	for _, f := range plan.Unreadable {
		if f.PrevFingerprint != "" {
			entries[f.Path] = f.PrevFingerprint
		}
		progress.PerFile[f.Path] = "failed"
		progress.Done++
		result.Failed++
	}
	for _, f := range plan.ToDelete {
		err := workflow.ExecuteActivity(ctx, "DeleteDocumentActivity", activities.DeleteDocumentInput{Path: f.Path}).Get(ctx, nil)
		if err != nil {
			entries[f.Path] = f.PrevFingerprint
			progress.PerFile[f.Path] = "failed"
			result.Failed++
		} else {
			progress.PerFile[f.Path] = "deleted"
			result.Deleted++
		}
		progress.Done++
	}
	for _, f := range plan.ToIndex {
		var out activities.IndexDocumentOutput
		err := workflow.ExecuteActivity(ctx, "IndexDocumentActivity", activities.IndexDocumentInput{Path: f.Path}).Get(ctx, &out)
		if err != nil {
			if f.PrevFingerprint != "" {
				entries[f.Path] = f.PrevFingerprint
			}
			progress.PerFile[f.Path] = "failed"
			result.Failed++
		} else {
			entries[f.Path] = f.Fingerprint
			progress.PerFile[f.Path] = "indexed"
			result.Indexed++
			result.Chunks += out.Chunks
		}
		progress.Done++
	}

	if err := workflow.ExecuteActivity(ctx, "SaveManifestActivity", activities.SaveManifestInput{Entries: entries}).Get(ctx, nil); err != nil {
		return result, err
	}
	return result, nil
}
