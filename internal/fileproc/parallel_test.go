package fileproc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"testing"

	"github.com/ets-tools/arklint/pkg/arkts"
)

func writeTempFiles(t *testing.T, contents map[string]string) []string {
	t.Helper()
	dir := t.TempDir()
	var paths []string
	for name, content := range contents {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("WriteFile(%s) error: %v", path, err)
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func TestMapFilesParsesEveryFile(t *testing.T) {
	paths := writeTempFiles(t, map[string]string{
		"a.ets": "class A { run(): void { let x = 1; } }",
		"b.ets": "class B { run(): void { let y = 2; } }",
		"c.ets": "class C { run(): void { let z = 3; } }",
	})

	results := MapFiles(paths, func(p *arkts.Parser, path string) (string, error) {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		file, err := p.ParseFile(path, content)
		if err != nil {
			return "", err
		}
		return file.Path, nil
	})

	if len(results) != len(paths) {
		t.Fatalf("got %d results, want %d", len(results), len(paths))
	}
	sort.Strings(results)
	for i, path := range paths {
		if results[i] != path {
			t.Errorf("result[%d] = %q, want %q", i, results[i], path)
		}
	}
}

func TestMapFilesEmptyInput(t *testing.T) {
	results := MapFiles(nil, func(p *arkts.Parser, path string) (int, error) {
		return 0, nil
	})
	if results != nil {
		t.Errorf("got %v, want nil", results)
	}
}

func TestMapFilesWithErrorsInvokesCallback(t *testing.T) {
	paths := writeTempFiles(t, map[string]string{
		"ok.ets":  "class A {}",
		"bad.ets": "class B {}",
	})

	var failures int32
	results := MapFilesWithErrors(paths, func(p *arkts.Parser, path string) (string, error) {
		if filepath.Base(path) == "bad.ets" {
			return "", errors.New("boom")
		}
		return path, nil
	}, func(path string, err error) {
		atomic.AddInt32(&failures, 1)
	})

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if failures != 1 {
		t.Errorf("got %d error callbacks, want 1", failures)
	}
}

func TestMapFilesCollectErrors(t *testing.T) {
	paths := writeTempFiles(t, map[string]string{
		"one.ets": "class A {}",
		"two.ets": "class B {}",
	})

	results, errs := MapFilesCollectErrors(paths, func(p *arkts.Parser, path string) (string, error) {
		return "", errors.New("always fails")
	})

	if len(results) != 0 {
		t.Errorf("got %d results, want 0", len(results))
	}
	if errs == nil || len(errs.Errors) != 2 {
		t.Fatalf("got errs = %v, want 2 collected errors", errs)
	}
}

func TestMapFilesWithContextCancellation(t *testing.T) {
	paths := writeTempFiles(t, map[string]string{
		"a.ets": "class A {}",
		"b.ets": "class B {}",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, errs := MapFilesWithContext(ctx, paths, func(p *arkts.Parser, path string) (string, error) {
		return path, nil
	})

	if len(results) != 0 {
		t.Errorf("got %d results after cancellation, want 0", len(results))
	}
	if errs == nil || !errs.HasErrors() {
		t.Error("expected context errors to be collected")
	}
}

func TestForEachFileProgress(t *testing.T) {
	paths := writeTempFiles(t, map[string]string{
		"a.ets": "x",
		"b.ets": "y",
		"c.ets": "z",
	})

	var ticks int32
	results := ForEachFileWithProgress(paths, func(path string) (int64, error) {
		info, err := os.Stat(path)
		if err != nil {
			return 0, err
		}
		return info.Size(), nil
	}, func() {
		atomic.AddInt32(&ticks, 1)
	})

	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}
	if ticks != 3 {
		t.Errorf("got %d progress ticks, want 3", ticks)
	}
}

func TestProcessingErrorsMessage(t *testing.T) {
	errs := &ProcessingErrors{}
	if errs.HasErrors() {
		t.Error("empty collection should have no errors")
	}

	errs.Add("a.ets", errors.New("parse failed"))
	if got := errs.Error(); got != "a.ets: parse failed" {
		t.Errorf("single error message = %q", got)
	}

	errs.Add("b.ets", errors.New("read failed"))
	if got := errs.Error(); got == "" {
		t.Error("multi error message should not be empty")
	}
}
