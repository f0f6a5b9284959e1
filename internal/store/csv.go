package store

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/crimpfit/internal/catalog"
)

// LoadCSV builds a store from two header-plus-rows CSV documents.
// CSV framing errors fail the load; row content problems are reported.
func LoadCSV(connectors, tools io.Reader, schema catalog.Schema) (*Store, *LoadReport, error) {
	connRows, connHeader, err := ReadRows(connectors)
	if err != nil {
		return nil, nil, fmt.Errorf("read connectors: %w", err)
	}
	toolRows, toolHeader, err := ReadRows(tools)
	if err != nil {
		return nil, nil, fmt.Errorf("read tools: %w", err)
	}
	st, report := load(connRows, connHeader, toolRows, toolHeader, schema)
	return st, report, nil
}

// LoadFiles reads the connector and tool catalogs concurrently and builds a
// store once both have been read. Either failure fails the load.
func LoadFiles(ctx context.Context, connectorsPath, toolsPath string, schema catalog.Schema) (*Store, *LoadReport, error) {
	var connData, toolData []byte

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := readFile(ctx, connectorsPath)
		if err != nil {
			return fmt.Errorf("load connectors: %w", err)
		}
		connData = data
		return nil
	})
	g.Go(func() error {
		data, err := readFile(ctx, toolsPath)
		if err != nil {
			return fmt.Errorf("load tools: %w", err)
		}
		toolData = data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return LoadCSV(bytes.NewReader(connData), bytes.NewReader(toolData), schema)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadRows parses a header-plus-rows CSV document into rows keyed by the
// normalized header. Short records leave trailing columns blank; extra
// cells beyond the header are ignored. A repeated column name keeps the
// first column's cells; the returned header still lists every name so the
// loader can report the repeat.
func ReadRows(r io.Reader) ([]Row, []string, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("header: %w", err)
	}
	// keep[i] is false for blank names and repeats of an earlier column
	keep := make([]bool, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		header[i] = catalog.NormalizeHeader(h)
		keep[i] = header[i] != "" && !seen[header[i]]
		seen[header[i]] = true
	}

	var rows []Row
	line := 1
	for {
		line++
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := make(Row, len(header))
		for i, h := range header {
			if !keep[i] {
				continue
			}
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}
