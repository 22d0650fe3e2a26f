package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/san-kum/dynarray/internal/trace"
)

const (
	metadataFile = "metadata.json"
	growthFile   = "growth.csv"
)

type Store struct {
	baseDir string
	logger  log.Logger
}

func New(baseDir string, logger log.Logger) *Store {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Store{baseDir: baseDir, logger: logger}
}

func (s *Store) Init() error {
	return errors.Wrap(os.MkdirAll(s.baseDir, 0755), "create data directory")
}

type RunMetadata struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	Timestamp      time.Time `json:"timestamp"`
	Appends        int       `json:"appends"`
	FinalCapacity  int       `json:"final_capacity"`
	Reallocations  int       `json:"reallocations"`
	CopiedElements int       `json:"copied_elements"`
	LimitBytes     int64     `json:"limit_bytes,omitempty"`
	PeakBytes      int64     `json:"peak_bytes"`
}

// Save writes the trace under a new run directory and returns its id.
func (s *Store) Save(label string, limitBytes, peakBytes int64, tr *trace.Trace) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", label, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	meta := RunMetadata{
		ID:             runID,
		Label:          label,
		Timestamp:      now,
		Appends:        tr.Len(),
		FinalCapacity:  tr.FinalCapacity(),
		Reallocations:  tr.Reallocations(),
		CopiedElements: tr.CopiedElements(),
		LimitBytes:     limitBytes,
		PeakBytes:      peakBytes,
	}

	if err := writeRun(runDir, &meta, tr); err != nil {
		if rmErr := os.RemoveAll(runDir); rmErr != nil {
			level.Warn(s.logger).Log("msg", "failed to remove partial run", "dir", runDir, "err", rmErr)
		}
		return "", err
	}

	level.Debug(s.logger).Log("msg", "saved run", "id", runID, "appends", meta.Appends, "dir", runDir)
	return runID, nil
}

// writeRun writes the growth data before the metadata, so a directory with
// metadata always has a complete trace next to it.
func writeRun(runDir string, meta *RunMetadata, tr *trace.Trace) error {
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return errors.Wrap(err, "create run directory")
	}

	csvFile, err := os.Create(filepath.Join(runDir, growthFile))
	if err != nil {
		return errors.Wrap(err, "create growth file")
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, tr); err != nil {
		return err
	}
	if err := csvFile.Close(); err != nil {
		return errors.Wrap(err, "close growth file")
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return errors.Wrap(err, "create metadata")
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return errors.Wrap(err, "write metadata")
	}
	return errors.Wrap(metaFile.Close(), "close metadata")
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, errors.Wrap(err, "read data directory")
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			level.Debug(s.logger).Log("msg", "skipping run", "dir", entry.Name(), "err", err)
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, errors.Wrapf(err, "load run %s", runID)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "decode run %s", runID)
	}

	return &meta, nil
}

func (s *Store) LoadTrace(runID string) (*trace.Trace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, growthFile))
	if err != nil {
		return nil, errors.Wrapf(err, "load trace %s", runID)
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read trace %s", runID)
	}

	tr := &trace.Trace{Points: make([]trace.Point, 0, len(records))}
	for i := 1; i < len(records); i++ {
		p, err := parsePoint(records[i])
		if err != nil {
			return nil, errors.Wrapf(err, "trace %s line %d", runID, i+1)
		}
		tr.Points = append(tr.Points, p)
	}
	return tr, nil
}

func parsePoint(record []string) (trace.Point, error) {
	var p trace.Point
	if len(record) != 4 {
		return p, errors.Errorf("expected 4 fields, got %d", len(record))
	}
	var err error
	if p.Append, err = strconv.Atoi(record[0]); err != nil {
		return p, err
	}
	if p.Size, err = strconv.Atoi(record[1]); err != nil {
		return p, err
	}
	if p.Capacity, err = strconv.Atoi(record[2]); err != nil {
		return p, err
	}
	if p.Grew, err = strconv.ParseBool(record[3]); err != nil {
		return p, err
	}
	return p, nil
}
