package workflows

type DocsIndexInput struct{}

// DocsIndexProgress is served through the GetIndexProgress query while a
// pass runs. PerFile values are "indexed", "deleted", "skipped" or "failed".
type DocsIndexProgress struct {
	Total   int               `json:"total"`
	Done    int               `json:"done"`
	PerFile map[string]string `json:"per_file"`
}

type DocsIndexResult struct {
	Indexed int `json:"indexed"`
	Deleted int `json:"deleted"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Chunks  int `json:"chunks"`
}
