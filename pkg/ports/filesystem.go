package ports

import "io"

// File is an open file addressed by byte offset. Raw video is read and
// written one frame at a time at frame-sized offsets.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Closer

	// Size returns the current file length in bytes.
	Size() (int64, error)
}

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte) error

	// Open opens an existing file for random-access reading.
	Open(path string) (File, error)

	// Create creates or truncates a file for random-access writing.
	Create(path string) (File, error)

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string) error

	// Exists checks if a file or directory exists.
	Exists(path string) (bool, error)

	// Remove deletes a file or empty directory.
	Remove(path string) error
}
