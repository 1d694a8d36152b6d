// Package testutil holds shared test helpers: in-memory filesystems for
// content sources and one-call parsing of fixture source text.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/ets-tools/arklint/pkg/arkts"
	"github.com/ets-tools/arklint/pkg/source"
)

// MemFS creates an in-memory filesystem for testing.
func MemFS() afero.Fs {
	return afero.NewMemMapFs()
}

// WriteFile writes content to a file in the given filesystem.
func WriteFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll(%s) error: %v", dir, err)
	}
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}
}

// SourceFromFiles builds an in-memory content source from path -> source
// text pairs.
func SourceFromFiles(t *testing.T, files map[string]string) *source.FsSource {
	t.Helper()
	fs := MemFS()
	for path, content := range files {
		WriteFile(t, fs, path, content)
	}
	return source.NewFs(fs)
}

// ParseSource parses fixture source text into the host model. Fails the
// test on parse errors.
func ParseSource(t *testing.T, path, src string) *arkts.File {
	t.Helper()
	p := arkts.NewParser()
	defer p.Close()
	file, err := p.ParseFile(path, []byte(src))
	if err != nil {
		t.Fatalf("ParseFile(%s) error: %v", path, err)
	}
	return file
}

// FindClass returns the named class from a parsed file, failing the test
// when absent.
func FindClass(t *testing.T, file *arkts.File, name string) *arkts.Class {
	t.Helper()
	for _, cls := range file.Classes {
		if cls.Name == name {
			return cls
		}
	}
	t.Fatalf("class %q not found in %s", name, file.Path)
	return nil
}

// FindMethod returns the named method from a class, failing the test when
// absent.
func FindMethod(t *testing.T, cls *arkts.Class, name string) *arkts.Method {
	t.Helper()
	for _, m := range cls.Methods {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("method %q not found in class %q", name, cls.Name)
	return nil
}
