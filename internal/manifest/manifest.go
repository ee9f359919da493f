// Package manifest persists the change-tracking index: a mapping from source
// document path to the fingerprint seen at the last successful indexing pass.
// It is the only durable state the indexer owns and is rewritten in full,
// atomically, at the end of each pass.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"ragbot/internal/util"
)

// Load reads the manifest at path. A missing file is not an error: the first
// pass starts from an empty index.
func Load(path string) (map[string]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := map[string]string{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}

// Save rewrites the manifest via temp file + rename so a crashed pass never
// leaves a truncated index behind.
func Save(path string, m map[string]string) error {
	if m == nil {
		m = map[string]string{}
	}
	if err := util.WriteJSONAtomic(path, m); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
