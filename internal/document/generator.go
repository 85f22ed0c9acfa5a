// Package document renders prescriptions as A4 PDF documents and hands them
// to the printer.
package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/spf13/afero"

	"github.com/rxpad/rxpad/internal/platform/apperr"
)

// Options configures the PDF output.
type Options struct {
	// FontFile is a TrueType font with the glyphs needed for non-Latin text.
	// Empty selects the core Times font, which covers Windows-1252 only.
	FontFile string
	Compress bool
}

type Generator struct {
	fs   afero.Fs
	opts Options
}

func NewGenerator(fs afero.Fs, opts Options) *Generator {
	return &Generator{fs: fs, opts: opts}
}

// Render returns the PDF bytes for b as of at.
func (g *Generator) Render(b Bundle, at time.Time) ([]byte, error) {
	layout := Compose(b, at)

	var font []byte
	if g.opts.FontFile == "" {
		if err := checkCoreFont(layout); err != nil {
			return nil, apperr.Document("document render", err)
		}
	} else {
		data, err := afero.ReadFile(g.fs, g.opts.FontFile)
		if err != nil {
			return nil, apperr.Document("document render", fmt.Errorf("read font: %w", err))
		}
		font = data
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(g.opts.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(at)
	pdf.SetModificationDate(at)
	pdf.SetTitle(Title, true)
	pdf.SetAuthor(DoctorName(b.Doctor.Name), true)
	pdf.SetCreator("rxpad", false)

	r := newRenderer(pdf, font)
	r.draw(layout)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperr.Document("document render", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders b and stores it at path. The document is written to a
// temp file next to path and renamed into place, so path never holds a
// partial document.
func (g *Generator) WriteFile(b Bundle, at time.Time, path string) error {
	data, err := g.Render(b, at)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := g.fs.MkdirAll(dir, 0o755); err != nil {
		return apperr.Document("document write", err)
	}
	tmp := filepath.Join(dir, ".rx-"+uuid.NewString()+".pdf.tmp")
	if err := afero.WriteFile(g.fs, tmp, data, 0o644); err != nil {
		g.fs.Remove(tmp)
		return apperr.Document("document write", err)
	}
	if err := g.fs.Rename(tmp, path); err != nil {
		g.fs.Remove(tmp)
		return apperr.Document("document write", err)
	}
	return nil
}

// WriteTemp renders b into the OS temp directory and returns the file path.
// The caller owns the file.
func (g *Generator) WriteTemp(b Bundle, at time.Time) (string, error) {
	path := filepath.Join(os.TempDir(), uuid.NewString()+"_"+DefaultFileName(b.Patient.RegNo, at))
	if err := g.WriteFile(b, at, path); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes a document written by WriteTemp.
func (g *Generator) Remove(path string) error {
	return g.fs.Remove(path)
}
