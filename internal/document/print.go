package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rxpad/rxpad/internal/platform/apperr"
)

// Printer sends a finished document file to a printer.
type Printer interface {
	Print(ctx context.Context, path string) error
}

// CommandPrinter runs a host command with the file path as its last
// argument, e.g. "lp" or "lpr -P ward3".
type CommandPrinter struct {
	name string
	args []string
}

func NewCommandPrinter(command string) *CommandPrinter {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{"lp"}
	}
	return &CommandPrinter{name: fields[0], args: fields[1:]}
}

func (p *CommandPrinter) Print(ctx context.Context, path string) error {
	args := append(append([]string(nil), p.args...), path)
	out, err := exec.CommandContext(ctx, p.name, args...).CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%s: %w", p.name, err)
		}
		return fmt.Errorf("%s: %w: %s", p.name, err, msg)
	}
	return nil
}

// PrintService renders a document to a temp file, hands it to the printer
// and deletes the file once the cleanup delay has passed.
type PrintService struct {
	gen     *Generator
	printer Printer
	delay   time.Duration
	logger  zerolog.Logger

	// schedule runs f after d; tests replace it to run cleanup inline.
	schedule func(d time.Duration, f func())
	pending  sync.WaitGroup
}

func NewPrintService(gen *Generator, printer Printer, delay time.Duration, logger zerolog.Logger) *PrintService {
	return &PrintService{
		gen:      gen,
		printer:  printer,
		delay:    delay,
		logger:   logger,
		schedule: afterFunc,
	}
}

func afterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Print renders b as of at and dispatches it. The returned path is the temp
// file handed to the printer; it is removed after the cleanup delay, or at
// once when dispatch fails.
func (s *PrintService) Print(ctx context.Context, b Bundle, at time.Time) (string, error) {
	path, err := s.gen.WriteTemp(b, at)
	if err != nil {
		return "", err
	}
	if err := s.printer.Print(ctx, path); err != nil {
		s.cleanup(path)
		return "", apperr.Document("document print", err)
	}
	s.logger.Info().Str("file", path).Uint("reg_no", b.Patient.RegNo).Msg("prescription sent to printer")
	s.pending.Add(1)
	s.schedule(s.delay, func() {
		defer s.pending.Done()
		s.cleanup(path)
	})
	return path, nil
}

// Wait blocks until every scheduled cleanup has run.
func (s *PrintService) Wait() {
	s.pending.Wait()
}

func (s *PrintService) cleanup(path string) {
	err := s.gen.Remove(path)
	switch {
	case err == nil:
		s.logger.Debug().Str("file", path).Msg("temporary document removed")
	case errors.Is(err, os.ErrNotExist):
	default:
		s.logger.Warn().Err(err).Str("file", path).Msg("could not remove temporary document")
	}
}
