package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// header is the fixed column layout. The creation and append paths share it,
// so a freshly created file and a long-lived one always agree.
var header = []string{
	"timestamp",
	"original",
	"detected_code",
	"detected_name",
	"detected_conf",
	"translation",
	"notes",
	"reply",
	"rating",
}

// CSVRecorder appends interaction rows to a comma-separated file with a
// header line. Appends are strict: prior content is never rewritten.
type CSVRecorder struct {
	path string
	mu   sync.Mutex
}

func NewCSVRecorder(path string) (*CSVRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure log dir: %w", err)
	}
	r := &CSVRecorder{path: path}
	if err := r.ensureHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *CSVRecorder) ensureHeader() error {
	st, err := os.Stat(r.path)
	if err == nil && st.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat log file: %w", err)
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to init log file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush header: %w", err)
	}
	return f.Close()
}

// Append writes one row. I/O failures propagate: a silently lost row would
// defeat the point of the log.
func (r *CSVRecorder) Append(row Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open append: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(row.record()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode append: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flush append: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close append: %w", err)
	}
	return nil
}

// Load reads all rows back, oldest first. Rows that fail to parse are
// skipped rather than failing the whole read.
func (r *CSVRecorder) Load() ([]Row, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open read: %w", err)
	}
	defer func() { _ = f.Close() }()

	cr := csv.NewReader(f)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	var rows []Row
	for i, rec := range records {
		if i == 0 {
			continue // header
		}
		row, err := parseRecord(rec)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (row Row) record() []string {
	return []string{
		row.Timestamp,
		row.Original,
		row.DetectedCode,
		row.DetectedName,
		strconv.FormatFloat(row.DetectedConf, 'f', -1, 64),
		row.Translation,
		row.Notes,
		row.Reply,
		strconv.Itoa(row.Rating),
	}
}

func parseRecord(rec []string) (Row, error) {
	if len(rec) != len(header) {
		return Row{}, fmt.Errorf("want %d fields, got %d", len(header), len(rec))
	}
	conf, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return Row{}, fmt.Errorf("bad confidence: %w", err)
	}
	rating, err := strconv.Atoi(rec[8])
	if err != nil {
		return Row{}, fmt.Errorf("bad rating: %w", err)
	}
	return Row{
		Timestamp:    rec[0],
		Original:     rec[1],
		DetectedCode: rec[2],
		DetectedName: rec[3],
		DetectedConf: conf,
		Translation:  rec[5],
		Notes:        rec[6],
		Reply:        rec[7],
		Rating:       rating,
	}, nil
}
