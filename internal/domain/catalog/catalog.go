// Package catalog keeps the clinician's reference lists: drugs,
// investigations and advice phrases. Each list lives in its own JSON file in
// the data directory and is seeded with defaults on first use.
package catalog

import (
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const (
	DrugFile          = "drug_database.json"
	InvestigationFile = "investigation_database.json"
	AdviceFile        = "advice_database.json"
)

// Set groups the three catalogs.
type Set struct {
	Drugs          *Drugs
	Investigations *List
	Advice         *List
}

// LoadAll opens every catalog under dir.
func LoadAll(fs afero.Fs, dir string, logger zerolog.Logger) *Set {
	s := &Set{
		Drugs:          newDrugs(fs, filepath.Join(dir, DrugFile), logger),
		Investigations: newList(fs, filepath.Join(dir, InvestigationFile), "investigations", seedInvestigations, logger),
		Advice:         newList(fs, filepath.Join(dir, AdviceFile), "advice", seedAdvice, logger),
	}
	s.Drugs.Load()
	s.Investigations.Load()
	s.Advice.Load()
	return s
}
