package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/ets-tools/arklint/internal/fileproc"
	"github.com/ets-tools/arklint/internal/output"
	"github.com/ets-tools/arklint/internal/progress"
	"github.com/ets-tools/arklint/internal/scanner"
	"github.com/ets-tools/arklint/pkg/arkts"
	"github.com/ets-tools/arklint/pkg/config"
)

// getPaths returns paths from args, defaulting to ["."]
func getPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// collectFiles scans every path (file or directory) and returns the
// deduplicated, sorted list of source files.
func collectFiles(cfg *config.Config, paths []string) ([]string, error) {
	scan := scanner.NewScanner(cfg)
	seen := make(map[string]bool)
	var files []string

	spinner := progress.NewSpinner("Scanning sources...")
	defer spinner.Done()

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := scan.ScanDir(path)
			if err != nil {
				return nil, err
			}
			for _, f := range found {
				if !seen[f] {
					seen[f] = true
					files = append(files, f)
					spinner.Tick()
				}
			}
			continue
		}
		ok, err := scan.ScanFile(path)
		if err != nil {
			return nil, err
		}
		if ok && !seen[path] {
			seen[path] = true
			files = append(files, path)
			spinner.Tick()
		}
	}

	sort.Strings(files)
	return files, nil
}

// parseFiles parses all files in parallel, each worker with its own
// parser. Unparseable files are reported to stderr in verbose mode and
// skipped.
func parseFiles(paths []string) []*arkts.File {
	bar := progress.NewBar("Parsing files...", len(paths))
	parsed := fileproc.MapFilesN(paths, 0, func(p *arkts.Parser, path string) (*arkts.File, error) {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return p.ParseFile(path, content)
	}, bar.Tick, func(path string, err error) {
		if verbose {
			fmt.Fprintf(os.Stderr, "  skipping %s: %v\n", path, err)
		}
	})
	bar.Done()
	return parsed
}

// newFormatter builds the output formatter from flags and config.
func newFormatter(cfg *config.Config) (*output.Formatter, error) {
	format := formatFlag
	if format == "" {
		format = cfg.Output.Format
	}
	colored := cfg.Output.Color && !noColor
	return output.NewFormatter(output.ParseFormat(format), outputFile, colored)
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
