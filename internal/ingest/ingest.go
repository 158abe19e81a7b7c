// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest loads paper records from tabular and document files and
// prepares them for linking.
package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/graphavalanche/pkg/types"
)

// ErrUnsupportedFormat indicates a file extension LoadFile cannot read.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Extensions lists the file extensions LoadFile accepts.
var Extensions = []string{".csv", ".json", ".jsonl", ".yaml", ".yml", ".toml", ".parquet"}

// LoadFile reads records from path, choosing the decoder by extension.
func LoadFile(path string) ([]types.Record, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".parquet" {
		return loadParquet(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	var records []types.Record
	switch ext {
	case ".csv":
		records, err = ReadCSV(f)
	case ".json":
		records, err = ReadJSON(f)
	case ".jsonl":
		records, err = ReadJSONL(f)
	case ".yaml", ".yml":
		records, err = ReadYAML(f)
	case ".toml":
		records, err = ReadTOML(f)
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(Extensions, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	slog.Debug("loaded records", "path", path, "format", ext, "records", len(records))
	return records, nil
}

// ReadCSV reads a header row followed by one record per row. Empty cells
// are left out of the record.
func ReadCSV(r io.Reader) ([]types.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	var records []types.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		rec := make(types.Record, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			if cell = strings.TrimSpace(cell); cell != "" {
				rec[header[i]] = cell
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// ReadJSON reads a JSON array of objects. Numbers keep their literal form.
func ReadJSON(r io.Reader) ([]types.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []types.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return records, nil
}

// ReadJSONL reads one JSON object per line, skipping blank lines.
func ReadJSONL(r io.Reader) ([]types.Record, error) {
	scanner := bufio.NewScanner(r)
	const maxLine = 1024 * 1024
	scanner.Buffer(make([]byte, 64*1024), maxLine)

	var records []types.Record
	line := 0
	for scanner.Scan() {
		line++
		b := bytes.TrimSpace(scanner.Bytes())
		if len(b) == 0 {
			continue
		}
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.UseNumber()
		var rec types.Record
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("parsing JSON at line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading JSONL: %w", err)
	}
	return records, nil
}

// ReadYAML reads a YAML sequence of mappings.
func ReadYAML(r io.Reader) ([]types.Record, error) {
	var records []types.Record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	return records, nil
}

// tomlDocument is the TOML input layout: one [[papers]] table per record.
type tomlDocument struct {
	Papers []types.Record `toml:"papers"`
}

// ReadTOML reads an array of [[papers]] tables.
func ReadTOML(r io.Reader) ([]types.Record, error) {
	var doc tomlDocument
	if err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	return doc.Papers, nil
}

// parquetRow is the column layout read from Parquet inputs. Missing
// columns read as empty strings.
type parquetRow struct {
	ID    string `parquet:"id,optional"`
	DOI   string `parquet:"doi,optional"`
	Title string `parquet:"title,optional"`
	Label string `parquet:"label,optional"`
	Date  string `parquet:"date,optional"`
	Year  string `parquet:"year,optional"`
}

func (p parquetRow) record() types.Record {
	rec := types.Record{}
	for k, v := range map[string]string{
		"id":    p.ID,
		"doi":   p.DOI,
		"title": p.Title,
		"label": p.Label,
		"date":  p.Date,
		"year":  p.Year,
	} {
		if v != "" {
			rec[k] = v
		}
	}
	return rec
}

func loadParquet(path string) ([]types.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("opening parquet: %w", err)
	}
	slog.Debug("parquet file opened", "path", path, "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[parquetRow](pf)
	defer reader.Close()

	records := make([]types.Record, 0, pf.NumRows())
	rows := make([]parquetRow, 128)
	for {
		n, err := reader.Read(rows)
		for i := 0; i < n; i++ {
			records = append(records, rows[i].record())
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading parquet rows: %w", err)
		}
		if n == 0 {
			break
		}
	}
	return records, nil
}
