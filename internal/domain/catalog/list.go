package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/rxpad/rxpad/internal/platform/apperr"
)

// List is a catalog of plain phrases (investigations or advice). Entries
// are unique by exact text and keep insertion order.
type List struct {
	name string
	file jsonFile[string]
	seed func() []string
	log  zerolog.Logger

	mu      sync.RWMutex
	entries []string
}

func newList(fs afero.Fs, path, name string, seed func() []string, logger zerolog.Logger) *List {
	return &List{
		name: name,
		file: jsonFile[string]{fs: fs, path: path},
		seed: seed,
		log:  logger.With().Str("catalog", name).Logger(),
	}
}

// Load reads the catalog file. When it is missing or unreadable the seed
// entries are used and written back.
func (l *List) Load() {
	entries, err := l.file.read()
	if err == nil {
		l.mu.Lock()
		l.entries = entries
		l.mu.Unlock()
		return
	}
	entries = l.seed()
	logSeed(l.log, l.file.path, err)
	if werr := l.file.write(entries); werr != nil {
		l.log.Error().Err(werr).Str("path", l.file.path).Msg("could not write seeded catalog")
	}
	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
}

// All returns a copy of the entries.
func (l *List) All() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]string(nil), l.entries...)
}

func (l *List) Contains(entry string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range l.entries {
		if e == entry {
			return true
		}
	}
	return false
}

// Add appends entry and persists the catalog. An entry already present
// yields an error wrapping ErrDuplicate.
func (l *List) Add(entry string) error {
	entry = strings.TrimSpace(entry)
	op := "catalog add " + l.name
	if entry == "" {
		return apperr.Validation(op, "entry is required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e == entry {
			return apperr.Validation(op, "%q: %w", entry, ErrDuplicate)
		}
	}
	next := append(append([]string(nil), l.entries...), entry)
	if err := l.file.write(next); err != nil {
		return apperr.Storage(op, fmt.Errorf("write %s: %w", l.file.path, err))
	}
	l.entries = next
	return nil
}

// Filter returns the entries containing query, ignoring case. A blank query
// returns everything.
func (l *List) Filter(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	all := l.All()
	if q == "" {
		return all
	}
	var out []string
	for _, e := range all {
		if strings.Contains(strings.ToLower(e), q) {
			out = append(out, e)
		}
	}
	return out
}

func logSeed(log zerolog.Logger, path string, err error) {
	if isMissing(err) {
		log.Info().Str("path", path).Msg("catalog file not found; seeding defaults")
		return
	}
	log.Warn().Err(err).Str("path", path).Msg("catalog file unreadable; seeding defaults")
}
