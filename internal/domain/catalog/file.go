package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// jsonFile is one catalog document: a JSON array of T.
type jsonFile[T any] struct {
	fs   afero.Fs
	path string
}

var errCorrupt = errors.New("catalog file is corrupt")

// read returns the stored entries. A missing file reports os.ErrNotExist; a
// file that does not decode reports errCorrupt.
func (f jsonFile[T]) read() ([]T, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errCorrupt, f.path, err)
	}
	return out, nil
}

// write replaces the file with entries, indented by two spaces. The new
// content is written to a sibling temp file and renamed into place.
func (f jsonFile[T]) write(entries []T) error {
	if entries == nil {
		entries = []T{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := f.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, "."+filepath.Base(f.path)+"."+uuid.NewString()+".tmp")
	if err := afero.WriteFile(f.fs, tmp, buf.Bytes(), 0o644); err != nil {
		f.fs.Remove(tmp)
		return err
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		f.fs.Remove(tmp)
		return err
	}
	return nil
}

func isMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
