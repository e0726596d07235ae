package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/repository"
)

const (
	ExportJSON = "json"
	ExportCSV  = "csv"
)

// ExportRequest names the tables to dump. No tables means all of them,
// which only the JSON format accepts.
type ExportRequest struct {
	Tables []string
	Format string
}

type ExportResult struct {
	ContentType string
	Filename    string
	Body        []byte
}

type exportService struct {
	export   repository.ExportRepo
	observer UseCaseObserver
}

func NewExportService(export repository.ExportRepo, observers ...UseCaseObserver) ExportService {
	return &exportService{export: export, observer: useCaseObserverOrNoop(observers)}
}

// ParseTables splits a comma-separated table list, dropping blanks.
func ParseTables(raw string) []string {
	var tables []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}
	return tables
}

func (s *exportService) Export(ctx context.Context, req ExportRequest) (res *ExportResult, err error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = ExportJSON
	}
	fields := map[string]any{"format": format, "tables": req.Tables}
	defer observe(ctx, s.observer, "export", fields, &err)()

	tables := req.Tables
	switch format {
	case ExportJSON:
		if len(tables) == 0 {
			tables = db.Tables
		}
		return s.exportJSON(ctx, tables)
	case ExportCSV:
		if len(tables) != 1 {
			return nil, domain.Invalid("tables", "csv export needs exactly one table, got %d", len(tables))
		}
		return s.exportCSV(ctx, tables[0])
	default:
		return nil, domain.Invalid("format", "must be json or csv")
	}
}

func (s *exportService) exportJSON(ctx context.Context, tables []string) (*ExportResult, error) {
	out := make(map[string][]map[string]any, len(tables))
	for _, t := range tables {
		dump, err := s.export.Dump(ctx, t)
		if err != nil {
			return nil, err
		}
		out[t] = dump.Records()
	}
	body, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return &ExportResult{
		ContentType: "application/json",
		Filename:    "curtisos-export.json",
		Body:        body,
	}, nil
}

func (s *exportService) exportCSV(ctx context.Context, table string) (*ExportResult, error) {
	dump, err := s.export.Dump(ctx, table)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(dump.Columns); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}
	record := make([]string, len(dump.Columns))
	for _, row := range dump.Rows {
		for i, v := range row {
			record[i] = csvValue(v)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return &ExportResult{
		ContentType: "text/csv; charset=utf-8",
		Filename:    table + ".csv",
		Body:        buf.Bytes(),
	}, nil
}

func csvValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
