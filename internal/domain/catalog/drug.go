package catalog

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/rxpad/rxpad/internal/platform/apperr"
)

// ErrDuplicate is wrapped by the validation error returned when an entry is
// already in a catalog.
var ErrDuplicate = errors.New("already in catalog")

// Drug is one entry of the drug catalog. Formulation is the text placed on a
// prescription's drug line.
type Drug struct {
	TradeName   string `json:"trade_name"`
	GenericName string `json:"generic_name"`
	Strength    string `json:"strength"`
	Form        string `json:"form"`
	Formulation string `json:"formulation"`
}

// FormChoices are the dosage-form prefixes offered when adding a drug.
var FormChoices = []string{"Tab.", "Cap.", "Syr.", "Inj.", "Drop.", "Crm.", "Oint.", "Sachet", "Supp.", "Inhaler", "Powder"}

// InferDosageForm guesses the dosage-form prefix from a free-text drug name.
// The first matching keyword wins; anything else is a tablet.
func InferDosageForm(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "cap"):
		return "Cap."
	case strings.Contains(n, "syr"):
		return "Syr."
	case strings.Contains(n, "inj"):
		return "Inj."
	case strings.Contains(n, "drop"):
		return "Drop."
	case strings.Contains(n, "cream"), strings.Contains(n, "ointment"):
		return "Crm."
	case strings.Contains(n, "inhaler"):
		return "Inhaler"
	case strings.Contains(n, "powder"):
		return "Powder"
	default:
		return "Tab."
	}
}

// Drugs is the drug catalog.
type Drugs struct {
	file jsonFile[Drug]
	log  zerolog.Logger

	mu      sync.RWMutex
	entries []Drug
}

func newDrugs(fs afero.Fs, path string, logger zerolog.Logger) *Drugs {
	return &Drugs{
		file: jsonFile[Drug]{fs: fs, path: path},
		log:  logger.With().Str("catalog", "drugs").Logger(),
	}
}

// Load reads the drug file, seeding it when missing or unreadable.
func (d *Drugs) Load() {
	entries, err := d.file.read()
	if err != nil {
		entries = seedDrugs()
		logSeed(d.log, d.file.path, err)
		if werr := d.file.write(entries); werr != nil {
			d.log.Error().Err(werr).Str("path", d.file.path).Msg("could not write seeded catalog")
		}
	}
	d.mu.Lock()
	d.entries = entries
	d.mu.Unlock()
}

func (d *Drugs) All() []Drug {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Drug(nil), d.entries...)
}

// Filter matches query against formulation, generic name and trade name,
// ignoring case.
func (d *Drugs) Filter(query string) []Drug {
	q := strings.ToLower(strings.TrimSpace(query))
	all := d.All()
	if q == "" {
		return all
	}
	var out []Drug
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Formulation), q) ||
			strings.Contains(strings.ToLower(e.GenericName), q) ||
			strings.Contains(strings.ToLower(e.TradeName), q) {
			out = append(out, e)
		}
	}
	return out
}

// AddCustom adds a drug known only by a free-text name. The dosage form is
// inferred from the name. When a drug with the same formulation exists, it is
// returned together with an error wrapping ErrDuplicate.
func (d *Drugs) AddCustom(name string) (Drug, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Drug{}, apperr.Validation("catalog add drug", "drug name is required")
	}
	form := InferDosageForm(name)
	return d.add(Drug{
		TradeName:   name,
		GenericName: name,
		Form:        strings.TrimSuffix(form, "."),
		Formulation: form + " " + name,
	})
}

// AddDrug adds a fully described drug. Trade and generic names are required.
func (d *Drugs) AddDrug(form, trade, generic, strength string) (Drug, error) {
	form, trade = strings.TrimSpace(form), strings.TrimSpace(trade)
	generic, strength = strings.TrimSpace(generic), strings.TrimSpace(strength)
	if trade == "" || generic == "" {
		return Drug{}, apperr.Validation("catalog add drug", "trade name and generic name are required")
	}
	if form == "" {
		form = FormChoices[0]
	}
	formulation := form + " " + trade
	if strength != "" {
		formulation += " " + strength
	}
	return d.add(Drug{
		TradeName:   trade,
		GenericName: generic,
		Strength:    strength,
		Form:        strings.TrimSuffix(form, "."),
		Formulation: formulation,
	})
}

func (d *Drugs) add(drug Drug) (Drug, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, e := range d.entries {
		if strings.EqualFold(e.Formulation, drug.Formulation) {
			return e, apperr.Validation("catalog add drug", "%q: %w", e.Formulation, ErrDuplicate)
		}
	}
	next := append(append([]Drug(nil), d.entries...), drug)
	if err := d.file.write(next); err != nil {
		return Drug{}, apperr.Storage("catalog add drug", fmt.Errorf("write %s: %w", d.file.path, err))
	}
	d.entries = next
	return drug, nil
}
