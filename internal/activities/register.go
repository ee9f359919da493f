package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.PlanIndexActivity)
	w.RegisterActivity(a.IndexDocumentActivity)
	w.RegisterActivity(a.DeleteDocumentActivity)
	w.RegisterActivity(a.SaveManifestActivity)
}
