package cpt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Code describes one billable procedure. Timed codes track minutes; untimed
// codes bill a flat unit.
type Code struct {
	Code        string `yaml:"code" json:"code"`
	Description string `yaml:"description" json:"description"`
	Timed       bool   `yaml:"timed" json:"timed"`
}

type Catalog struct {
	Codes []Code `yaml:"codes" json:"codes"`
}

func Load(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return DefaultCatalog(), err
	}
	var cat Catalog
	if err := yaml.Unmarshal(content, &cat); err != nil {
		return Catalog{}, err
	}
	if len(cat.Codes) == 0 {
		return Catalog{}, fmt.Errorf("cpt catalog empty")
	}
	return cat, nil
}

func (c Catalog) Lookup(code string) (Code, bool) {
	for _, entry := range c.Codes {
		if strings.EqualFold(entry.Code, code) {
			return entry, true
		}
	}
	return Code{}, false
}

// EstimateUnits approximates the 8-minute rule for a single timed code:
// under 8 minutes bills nothing, 8-22 one unit, 23-37 two, and so on.
// Real-world billing aggregates across timed codes; this is a teaching aid.
func EstimateUnits(minutes int) int {
	if minutes < 8 {
		return 0
	}
	return (minutes + 7) / 15
}

func DefaultCatalog() Catalog {
	return Catalog{Codes: []Code{
		{Code: "97161", Description: "PT Evaluation - low complexity", Timed: false},
		{Code: "97162", Description: "PT Evaluation - moderate complexity", Timed: false},
		{Code: "97163", Description: "PT Evaluation - high complexity", Timed: false},
		{Code: "97164", Description: "PT Re-evaluation", Timed: false},
		{Code: "97110", Description: "Therapeutic exercise", Timed: true},
		{Code: "97112", Description: "Neuromuscular re-education", Timed: true},
		{Code: "97116", Description: "Gait training", Timed: true},
		{Code: "97140", Description: "Manual therapy", Timed: true},
		{Code: "97530", Description: "Therapeutic activities", Timed: true},
		{Code: "97535", Description: "Self-care/home management training", Timed: true},
		{Code: "97113", Description: "Aquatic therapy/exercises", Timed: true},
		{Code: "97760", Description: "Orthotic management/training", Timed: true},
		{Code: "97761", Description: "Prosthetic training", Timed: true},
		{Code: "95992", Description: "Canalith repositioning procedure", Timed: false},
		{Code: "97010", Description: "Hot/cold packs", Timed: false},
		{Code: "97012", Description: "Mechanical traction", Timed: false},
		{Code: "97014", Description: "Electrical stimulation (unattended)", Timed: false},
		{Code: "97035", Description: "Ultrasound", Timed: true},
	}}
}
