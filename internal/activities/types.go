package activities

import "ragbot/internal/indexer"

type PlanIndexInput struct{}

type PlanIndexOutput struct {
	Plan indexer.Plan `json:"plan"`
}

type IndexDocumentInput struct {
	Path string `json:"path"`
}

type IndexDocumentOutput struct {
	Chunks int `json:"chunks"`
}

type DeleteDocumentInput struct {
	Path string `json:"path"`
}

type SaveManifestInput struct {
	Entries map[string]string `json:"entries"`
}
