// Package imagestore keeps copies of patient image files in one directory.
// Files are named <patient-id>_<yyyyMMdd_HHmmss>_<original-name> and are
// referenced from the relational store by path.
package imagestore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var (
	ErrNotFound        = errors.New("image file not found")
	ErrFileTooLarge    = errors.New("image exceeds maximum allowed size")
	ErrNotImage        = errors.New("file is not a supported image")
	ErrMissingFileName = errors.New("file name is required")
)

// MaxFileSize is the largest image accepted (50 MB).
const MaxFileSize = 50 * 1024 * 1024

// AllowedExtensions lists the accepted image file extensions.
var AllowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
}

const stampLayout = "20060102_150405"

// Stored describes a file written by the store.
type Stored struct {
	Path        string
	Size        int64
	ContentType string
}

type Store struct {
	fs  afero.Fs
	dir string
}

func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

func (s *Store) Dir() string { return s.dir }

// FileName builds the stored name for an image of patientID taken at at.
func FileName(patientID uint, original string, at time.Time) string {
	return fmt.Sprintf("%d_%s_%s", patientID, at.Format(stampLayout), filepath.Base(original))
}

// CheckName rejects names without one of the allowed extensions.
func CheckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingFileName
	}
	if !AllowedExtensions[strings.ToLower(filepath.Ext(name))] {
		return fmt.Errorf("%w: %s", ErrNotImage, filepath.Base(name))
	}
	return nil
}

// Save copies content into the images directory under the name built by
// FileName. The file appears under its final name only once fully written.
func (s *Store) Save(patientID uint, original string, content io.Reader, at time.Time) (*Stored, error) {
	if err := CheckName(original); err != nil {
		return nil, err
	}
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create images dir: %w", err)
	}

	tmpPath := filepath.Join(s.dir, ".upload-"+uuid.NewString())
	tmp, err := s.fs.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		tmp.Close()
		s.fs.Remove(tmpPath)
		return nil, fmt.Errorf("read image: %w", err)
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		tmp.Close()
		s.fs.Remove(tmpPath)
		return nil, fmt.Errorf("%w: content looks like %s", ErrNotImage, contentType)
	}

	written, err := io.Copy(tmp, io.LimitReader(io.MultiReader(bytes.NewReader(head), content), MaxFileSize+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil && written > MaxFileSize {
		err = ErrFileTooLarge
	}
	if err != nil {
		s.fs.Remove(tmpPath)
		return nil, err
	}

	final, err := s.freeName(patientID, original, at)
	if err != nil {
		s.fs.Remove(tmpPath)
		return nil, err
	}
	if err := s.fs.Rename(tmpPath, final); err != nil {
		s.fs.Remove(tmpPath)
		return nil, fmt.Errorf("move image into place: %w", err)
	}
	return &Stored{Path: final, Size: written, ContentType: contentType}, nil
}

// freeName returns the stored path for the image, adding a counter when two
// images with the same name arrive within the same second.
func (s *Store) freeName(patientID uint, original string, at time.Time) (string, error) {
	name := FileName(patientID, original, at)
	path := filepath.Join(s.dir, name)
	for i := 2; ; i++ {
		ok, err := afero.Exists(s.fs, path)
		if err != nil {
			return "", err
		}
		if !ok {
			return path, nil
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%d_%s_%d_%s", patientID, at.Format(stampLayout), i, filepath.Base(original)))
	}
}

// Import copies the file at srcPath into the store.
func (s *Store) Import(patientID uint, srcPath string, at time.Time) (*Stored, error) {
	if err := CheckName(srcPath); err != nil {
		return nil, err
	}
	f, err := s.fs.Open(srcPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, srcPath)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return s.Save(patientID, filepath.Base(srcPath), f, at)
}

// Open returns the stored file at path for reading.
func (s *Store) Open(path string) (afero.File, error) {
	f, err := s.fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return f, err
}

// Remove deletes the stored file at path.
func (s *Store) Remove(path string) error {
	err := s.fs.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return err
}
