// Package ingest loads table records from JSON, NDJSON and YAML files and
// watches those files for changes.
package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/tablectl/internal/logging"
)

// Record is one row of tabular data. Nested objects decode as
// map[string]any, so dotted sort paths can reach into them.
type Record = map[string]any

// Format identifies an input encoding.
type Format string

// Supported formats.
const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
)

// StdinPath reads records from standard input.
const StdinPath = "-"

// Ingest errors.
var (
	ErrUnknownFormat = errors.New("unknown input format")
	ErrNotAList      = errors.New("input must be a list of objects")
	ErrNoInput       = errors.New("no input files given")
)

// ParseFormat validates a format name given on the command line.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatAuto, FormatJSON, FormatNDJSON, FormatYAML:
		return f, nil
	case "jsonl":
		return FormatNDJSON, nil
	case "yml":
		return FormatYAML, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// DetectFormat picks the format from a file extension. Unknown extensions and
// stdin default to JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes records from r.
func Parse(ctx context.Context, r io.Reader, format Format) ([]Record, error) {
	log := logging.Component(ctx, "ingest")

	var (
		records []Record
		err     error
	)
	switch format {
	case FormatJSON, FormatAuto:
		records, err = parseJSON(r)
	case FormatNDJSON:
		records, err = parseNDJSON(r)
	case FormatYAML:
		records, err = parseYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		log.Error().Err(err).Str("format", string(format)).Msg("failed to parse records")
		return nil, err
	}

	log.Debug().Str("format", string(format)).Int("record_count", len(records)).Msg("records parsed")
	return records, nil
}

func parseJSON(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return toRecords(raw)
}

func parseNDJSON(r io.Reader) ([]Record, error) {
	records := []Record{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := bytes.TrimSpace(scanner.Bytes())
		if len(text) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(text))
		dec.UseNumber()
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("parsing NDJSON line %d: %w", line, err)
		}
		if rec == nil {
			return nil, fmt.Errorf("%w: line %d is not an object", ErrNotAList, line)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading NDJSON: %w", err)
	}
	return records, nil
}

func parseYAML(r io.Reader) ([]Record, error) {
	var raw any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return toRecords(raw)
}

func toRecords(raw any) ([]Record, error) {
	if raw == nil {
		return []Record{}, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotAList, raw)
	}
	records := make([]Record, 0, len(list))
	for i, item := range list {
		rec, isMap := item.(map[string]any)
		if !isMap {
			return nil, fmt.Errorf("%w: item %d is %T", ErrNotAList, i, item)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Load reads records from a file, or from stdin when path is StdinPath.
// FormatAuto picks the format from the file extension.
func Load(ctx context.Context, path string, format Format) ([]Record, error) {
	return loadFrom(ctx, path, format, os.Stdin)
}

func loadFrom(ctx context.Context, path string, format Format, stdin io.Reader) ([]Record, error) {
	log := logging.Component(ctx, "ingest")
	if format == FormatAuto {
		format = DetectFormat(path)
	}

	if path == StdinPath {
		log.Debug().Str("format", string(format)).Msg("reading records from stdin")
		return Parse(ctx, stdin, format)
	}

	log.Debug().Str("path", path).Str("format", string(format)).Msg("loading records")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading records file: %w", err)
	}
	defer f.Close()

	records, err := Parse(ctx, f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// LoadAll loads every path concurrently and concatenates the records in
// argument order. The first failure cancels the remaining loads.
func LoadAll(ctx context.Context, paths []string, format Format) ([]Record, error) {
	if len(paths) == 0 {
		return nil, ErrNoInput
	}

	results := make([][]Record, len(paths))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, p := range paths {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			records, err := Load(gCtx, p, format)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]Record, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}

	log := logging.Component(ctx, "ingest")
	log.Debug().
		Int("files", len(paths)).
		Int("record_count", total).
		Msg("records loaded")
	return all, nil
}
