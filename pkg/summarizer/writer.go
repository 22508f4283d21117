package summarizer

import (
	"fmt"
	"path/filepath"

	"github.com/user/ffpp/pkg/ports"
)

// Writer saves formatted summaries through a FileSystem.
type Writer struct {
	fs        ports.FileSystem
	formatter Formatter
}

func NewWriter(fs ports.FileSystem, formatter Formatter) *Writer {
	return &Writer{fs: fs, formatter: formatter}
}

// Write renders summary and stores it at path, creating the parent directory.
func (w *Writer) Write(path string, summary *Summary) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create summary directory: %w", err)
		}
	}
	if err := w.fs.WriteFile(path, []byte(w.formatter.Format(summary))); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
