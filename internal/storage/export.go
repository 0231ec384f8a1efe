package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/lqrplan/internal/dynamo"
)

type ExportData struct {
	PlanMetadata
	States   []dynamo.State   `json:"states"`
	Controls []dynamo.Control `json:"controls"`
}

// ExportJSON writes a stored plan with its full trajectory to w.
func (s *Store) ExportJSON(w io.Writer, planID string) error {
	meta, err := s.Load(planID)
	if err != nil {
		return err
	}
	tr, err := s.LoadPlan(planID)
	if err != nil {
		return err
	}

	data := ExportData{
		PlanMetadata: *meta,
		States:       tr.States,
		Controls:     tr.Controls,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
