// Package extract pulls plain text out of the supported document formats.
// A failure to read or parse a file is an ordinary error the caller treats
// as "skip this file"; nothing here is fatal to an indexing pass.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ragbot/internal/util"
)

// SupportedExt reports whether the indexer should consider a file at all.
func SupportedExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".docx", ".pdf":
		return true
	default:
		return false
	}
}

// Extract dispatches on the file extension and returns the sanitized text
// content. An empty extraction result is reported as ErrNoExtractableText.
func Extract(path string) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		text, err = extractTxt(path)
	case ".docx":
		text, err = extractDocx(path)
	case ".pdf":
		text, err = extractPDF(path)
	default:
		return "", fmt.Errorf("%s: %w", path, util.ErrUnsupportedFormat)
	}
	if err != nil {
		return "", err
	}
	text = util.SanitizeText(text)
	if text == "" {
		return "", fmt.Errorf("%s: %w", path, util.ErrNoExtractableText)
	}
	return text, nil
}

func extractTxt(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read txt: %w", err)
	}
	return string(b), nil
}
