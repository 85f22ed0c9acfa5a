package document

import (
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedText is wrapped when the layout holds characters the core
// font cannot draw. Setting PDF_FONT_FILE to a Unicode TrueType font lifts it.
var ErrUnsupportedText = errors.New("text needs a Unicode font")

// Texts returns every line of text in the layout, in drawing order.
func (l Layout) Texts() []string {
	var out []string
	add := func(lines []Line) {
		for _, line := range lines {
			out = append(out, line.Text)
		}
	}
	add(l.Header)
	out = append(out, l.Title)
	add(l.Patient)
	for _, col := range [][]Section{l.Left, l.Right} {
		for _, s := range col {
			out = append(out, s.Title)
			add(s.Lines)
		}
	}
	add(l.Footer)
	return out
}

// checkCoreFont reports the first line of l that Windows-1252, the encoding
// of the core PDF fonts, cannot represent.
func checkCoreFont(l Layout) error {
	enc := charmap.Windows1252.NewEncoder()
	for _, text := range l.Texts() {
		if _, err := enc.String(text); err != nil {
			return fmt.Errorf("%w: %q cannot be drawn with the built-in font; set PDF_FONT_FILE to a TrueType font that covers it", ErrUnsupportedText, text)
		}
	}
	return nil
}
