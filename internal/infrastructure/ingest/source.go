package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cartcompare/backend/internal/domain"
)

// FileSource reads retailer catalog files into raw records. The format is
// dispatched on the file extension; delimited text has its character set
// detected first, so legacy-encoded exports (including ones with mangled
// currency symbols) still parse.
type FileSource struct {
	log zerolog.Logger
}

// NewFileSource creates a catalog file source.
func NewFileSource(log zerolog.Logger) *FileSource {
	return &FileSource{log: log}
}

// Read loads one retailer's catalog file and maps its rows to raw records.
// Rows with an empty name are dropped here; every other validation belongs to
// the catalog service.
func (s *FileSource) Read(ctx context.Context, path string) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	rows, err := readRows(f, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	records := mapRecords(rows)
	s.log.Debug().Str("file", filepath.Base(path)).Int("rows", len(rows)).Int("records", len(records)).Msg("catalog file read")
	return records, nil
}

// readRows picks a parser by extension and returns the rows as header→value
// maps.
func readRows(r io.Reader, filename string) ([]map[string]string, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return readCSV(r)
	case ".xlsx":
		return readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, filename)
	}
}

// mapRecords tolerates both header conventions seen in retailer exports
// (name/Name, price/Price, category/Category).
func mapRecords(rows []map[string]string) []domain.RawRecord {
	var records []domain.RawRecord
	for _, row := range rows {
		rec := domain.RawRecord{
			Name:     field(row, "name", "Name"),
			Price:    field(row, "price", "Price"),
			Category: field(row, "category", "Category"),
		}
		if rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}

func field(row map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(row[k]); v != "" {
			return v
		}
	}
	return ""
}

// rowsToMaps converts header + data rows into maps, skipping rows that are
// entirely empty.
func rowsToMaps(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column %d", i+1)
		}
		headers[i] = h
	}

	var out []map[string]string
	for _, rec := range rows[1:] {
		m := make(map[string]string, len(headers))
		empty := true
		for i, h := range headers {
			var v string
			if i < len(rec) {
				v = strings.TrimSpace(rec[i])
			}
			if v != "" {
				empty = false
			}
			m[h] = v
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}
