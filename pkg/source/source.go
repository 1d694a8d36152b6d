package source

import (
	"os"

	"github.com/spf13/afero"
)

// ContentSource provides raw file content from a specific source.
//
// The clone fragment checker re-reads source text from here rather than
// using the parsed AST: token-level text is needed, and a read failure is
// a soft skip for that file, never fatal to the run.
type ContentSource interface {
	// Read returns the content of the file at path.
	Read(path string) ([]byte, error)
}

// FilesystemSource reads files from the local filesystem.
type FilesystemSource struct{}

// NewFilesystem creates a source that reads from the filesystem.
func NewFilesystem() *FilesystemSource {
	return &FilesystemSource{}
}

// Read implements ContentSource.
func (f *FilesystemSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FsSource reads files from an afero filesystem. Used in tests to fake
// the disk without touching it.
type FsSource struct {
	fs afero.Fs
}

// NewFs creates a source backed by an afero filesystem.
func NewFs(fs afero.Fs) *FsSource {
	return &FsSource{fs: fs}
}

// Read implements ContentSource.
func (s *FsSource) Read(path string) ([]byte, error) {
	return afero.ReadFile(s.fs, path)
}
