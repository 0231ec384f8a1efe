package config

import (
	"fmt"
	"os"

	"github.com/san-kum/lqrplan/internal/lqr"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

const (
	DefaultHorizon = 50
	DefaultBound   = 10.0
)

// Problem is the on-disk form of an LQR problem. Matrices are row lists.
type Problem struct {
	Name    string      `yaml:"name" json:"name"`
	Horizon int         `yaml:"horizon" json:"horizon"`
	State   []float64   `yaml:"state" json:"state"`
	Target  []float64   `yaml:"target,omitempty" json:"target,omitempty"`
	Q       [][]float64 `yaml:"q" json:"q"`
	R       [][]float64 `yaml:"r" json:"r"`
	A       [][]float64 `yaml:"a" json:"a"`
	B       [][]float64 `yaml:"b" json:"b"`
	Qf      [][]float64 `yaml:"qf,omitempty" json:"qf,omitempty"`
	// Bound is the per-component state limit used by the settling metric.
	Bound float64 `yaml:"bound,omitempty" json:"bound,omitempty"`
}

// StateSet is a list of initial states solved against one problem.
type StateSet struct {
	States [][]float64 `yaml:"states" json:"states"`
}

func DefaultProblem() *Problem {
	return &Problem{
		Horizon: DefaultHorizon,
		Bound:   DefaultBound,
	}
}

func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultProblem()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Problem) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func LoadStates(path string) ([][]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var set StateSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return set.States, nil
}

// Build converts the row lists into matrices. Shape and definiteness are
// left to lqr validation; only ragged row lists are rejected here.
func (c *Problem) Build() (lqr.Problem, error) {
	p := lqr.Problem{
		State:   c.State,
		Target:  c.Target,
		Horizon: c.Horizon,
	}

	var err error
	if p.Q, err = dense(lqr.ArgStateCost, c.Q); err != nil {
		return lqr.Problem{}, err
	}
	if p.R, err = dense(lqr.ArgActionCost, c.R); err != nil {
		return lqr.Problem{}, err
	}
	if p.A, err = dense(lqr.ArgStateTransition, c.A); err != nil {
		return lqr.Problem{}, err
	}
	if p.B, err = dense(lqr.ArgActionTransition, c.B); err != nil {
		return lqr.Problem{}, err
	}
	if p.Qf, err = dense(lqr.ArgFinalStateCost, c.Qf); err != nil {
		return lqr.Problem{}, err
	}
	return p, nil
}

// dense returns nil for an empty row list so the solver can tell a missing
// matrix apart from a malformed one.
func dense(arg string, rows [][]float64) (mat.Matrix, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, &lqr.ValidationError{Arg: arg, Detail: "has an empty row", Err: lqr.ErrInvalidType}
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, &lqr.ValidationError{
				Arg:    arg,
				Detail: fmt.Sprintf("row %d has %d entries, expected %d", i, len(row), cols),
				Err:    lqr.ErrInvalidType,
			}
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// Rows converts a matrix back into a row list.
func Rows(m mat.Matrix) [][]float64 {
	if m == nil {
		return nil
	}
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}
