package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/lqrplan/internal/config"
	"github.com/san-kum/lqrplan/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	planFile     = "plan.csv"
)

var ErrNotFound = errors.New("storage: plan not found")

type Store struct {
	baseDir string
	logger  *slog.Logger
	now     func() time.Time
}

func New(baseDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{baseDir: baseDir, logger: logger, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type PlanMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Horizon   int                `json:"horizon"`
	StateDim  int                `json:"state_dim"`
	ActionDim int                `json:"action_dim"`
	Problem   *config.Problem    `json:"problem"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the problem, metrics and predicted trajectory under a new
// plan directory and returns its id.
func (s *Store) Save(cfg *config.Problem, tr dynamo.Trajectory, metrics map[string]float64) (string, error) {
	if err := tr.Validate(); err != nil {
		return "", err
	}

	name := cfg.Name
	if name == "" {
		name = "plan"
	}
	ts := s.now()
	planID, planDir, err := s.newPlanDir(name, ts)
	if err != nil {
		return "", err
	}

	meta := PlanMetadata{
		ID:        planID,
		Name:      name,
		Timestamp: ts,
		Horizon:   len(tr.Controls),
		StateDim:  len(tr.States[0]),
		Problem:   cfg,
		Metrics:   metrics,
	}
	if len(tr.Controls) > 0 {
		meta.ActionDim = len(tr.Controls[0])
	}

	if err := writeJSON(filepath.Join(planDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writePlanCSV(filepath.Join(planDir, planFile), tr, meta.ActionDim); err != nil {
		return "", err
	}

	s.logger.Debug("plan saved", "id", planID, "dir", planDir, "horizon", meta.Horizon)
	return planID, nil
}

// newPlanDir creates <base>/<name>_<unix>, adding a suffix when a plan with
// the same second already exists.
func (s *Store) newPlanDir(name string, ts time.Time) (string, string, error) {
	base := fmt.Sprintf("%s_%d", name, ts.Unix())
	id := base
	for i := 1; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		id = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePlanCSV(path string, tr dynamo.Trajectory, actionDim int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"step"}
	for i := range tr.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	for i := 0; i < actionDim; i++ {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for t, x := range tr.States {
		row := []string{strconv.Itoa(t)}
		for _, val := range x {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		// The terminal state has no action.
		for i := 0; i < actionDim; i++ {
			if t < len(tr.Controls) {
				row = append(row, strconv.FormatFloat(tr.Controls[t][i], 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored plan, oldest first.
func (s *Store) List() ([]PlanMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []PlanMetadata{}, nil
		}
		return nil, err
	}

	plans := make([]PlanMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			s.logger.Debug("skipping unreadable plan", "dir", entry.Name(), "err", err)
			continue
		}
		plans = append(plans, *meta)
	}

	sort.Slice(plans, func(i, j int) bool {
		return plans[i].Timestamp.Before(plans[j].Timestamp)
	})
	return plans, nil
}

func (s *Store) Load(planID string) (*PlanMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, planID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, planID)
		}
		return nil, err
	}

	var meta PlanMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadPlan reads back the trajectory of a stored plan.
func (s *Store) LoadPlan(planID string) (dynamo.Trajectory, error) {
	meta, err := s.Load(planID)
	if err != nil {
		return dynamo.Trajectory{}, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, planID, planFile))
	if err != nil {
		return dynamo.Trajectory{}, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return dynamo.Trajectory{}, err
	}
	if len(records) < 2 {
		return dynamo.Trajectory{}, fmt.Errorf("storage: %s: empty plan", planID)
	}

	var tr dynamo.Trajectory
	for _, record := range records[1:] {
		if len(record) != 1+meta.StateDim+meta.ActionDim {
			return dynamo.Trajectory{}, fmt.Errorf("storage: %s: malformed row %v", planID, record)
		}
		x, err := parseFloats(record[1 : 1+meta.StateDim])
		if err != nil {
			return dynamo.Trajectory{}, err
		}
		tr.States = append(tr.States, x)

		cells := record[1+meta.StateDim:]
		if len(cells) == 0 || cells[0] == "" {
			continue
		}
		u, err := parseFloats(cells)
		if err != nil {
			return dynamo.Trajectory{}, err
		}
		tr.Controls = append(tr.Controls, u)
	}

	return tr, tr.Validate()
}

func parseFloats(cells []string) ([]float64, error) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
