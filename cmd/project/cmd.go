// Package project implements the project command: it stages an input file
// and emits a single-column projection in plain, JSON or YAML form.
package project

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1mikegrn/michaelgreen.dev/internal/config"
	"github.com/1mikegrn/michaelgreen.dev/internal/fileutil"
	"github.com/1mikegrn/michaelgreen.dev/internal/staging"
	"github.com/1mikegrn/michaelgreen.dev/internal/tui"
)

var (
	output       io.Writer = os.Stdout
	selectColumn           = tui.SelectColumn
)

// Params holds the parameters for a projection run.
type Params struct {
	Input       string
	Column      string
	Format      string // plain, json or yaml
	Output      string // file path; empty means stdout
	Interactive bool
}

// ProjectColumnWithParams stages the input file and projects one column.
// When no column is named and interactive mode is enabled, the user picks
// one from the staged schema.
func ProjectColumnWithParams(p Params) error {
	store, err := staging.Open(p.Input, storeOptions())
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", p.Input, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Warn("Failed to tear down staging store", "error", err)
		}
	}()

	column := p.Column
	if column == "" {
		if !p.Interactive {
			return fmt.Errorf("column name is required (provide via --column flag or drop --no-interactive)")
		}

		result, err := selectColumn(filepath.Base(p.Input), store.Columns())
		if err != nil {
			return fmt.Errorf("column selection failed: %w", err)
		}
		if result.Action != tui.ActionSelected {
			slog.Info("Column selection cancelled")
			return nil
		}
		column = result.Column
	}

	values, err := store.Project(column)
	if err != nil {
		return err
	}

	slog.Debug("Projected column", "file", p.Input, "column", column, "values", len(values))

	if p.Output != "" {
		return writeToFile(values, p.Format, p.Output)
	}
	return render(values, p.Format, output)
}

func writeToFile(values []string, format, path string) error {
	var written bool
	var err error

	switch format {
	case "json":
		written, err = fileutil.WriteJSONFile(values, path, config.OverwriteFiles)
	case "yaml":
		written, err = fileutil.WriteYAMLFile(values, path, config.OverwriteFiles)
	default:
		data := []byte(strings.Join(values, "\n") + "\n")
		written, err = fileutil.WriteFileWithOverwrite(path, data, 0644, config.OverwriteFiles)
	}
	if err != nil {
		return fmt.Errorf("failed to write projection: %w", err)
	}
	if !written {
		slog.Info("Output file already exists, skipping", "filename", path)
	}
	return nil
}

func render(values []string, format string, w io.Writer) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal projection: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		data, err := yaml.Marshal(values)
		if err != nil {
			return fmt.Errorf("failed to marshal projection: %w", err)
		}
		_, err = fmt.Fprint(w, string(data))
		return err
	default:
		for _, value := range values {
			if _, err := fmt.Fprintln(w, value); err != nil {
				return err
			}
		}
		return nil
	}
}

func storeOptions() staging.Options {
	return staging.Options{
		Delimiter:  config.Delimiter,
		MaxRows:    config.MaxRows,
		ScratchDir: config.ScratchDir,
	}
}
