package extract

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ragbot/internal/util"

	"github.com/stretchr/testify/require"
)

func TestExtractTxt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("Вклады Сбера\nставка 18%\n"), 0o644))

	text, err := Extract(path)
	require.NoError(t, err)
	require.Equal(t, "Вклады Сбера\nставка 18%", text)
}

func TestExtractDocxParagraphs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.docx")
	writeDocx(t, path, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>first paragraph</w:t></w:r></w:p>
    <w:p><w:r><w:t>second</w:t></w:r><w:r><w:t> paragraph</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := Extract(path)
	require.NoError(t, err)
	require.Equal(t, []string{"first paragraph", "second paragraph"}, strings.Split(text, "\n"))
}

func TestExtractUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	require.NoError(t, os.WriteFile(path, []byte{0x89}, 0o644))

	_, err := Extract(path)
	require.True(t, errors.Is(err, util.ErrUnsupportedFormat))
}

func TestExtractEmptyFileHasNoText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("  \n\t"), 0o644))

	_, err := Extract(path)
	require.True(t, errors.Is(err, util.ErrNoExtractableText))
}

func TestExtractCorruptDocxIsSkippable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := Extract(path)
	require.Error(t, err)
}

func TestSupportedExt(t *testing.T) {
	require.True(t, SupportedExt("a/b.txt"))
	require.True(t, SupportedExt("a/b.PDF"))
	require.True(t, SupportedExt("b.docx"))
	require.False(t, SupportedExt("b.md"))
	require.False(t, SupportedExt("b"))
}

func writeDocx(t *testing.T, path, documentXML string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}
