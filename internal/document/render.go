package document

import "github.com/jung-kurt/gofpdf"

const (
	pageMargin  = 12.7
	columnGap   = 4.0
	leftShare   = 0.30
	sectionGap  = 3.0
	drugGap     = 2.0
	footerSpace = 12.0
	utf8Family  = "rxbody"
	coreFamily  = "Times"
)

type fontSpec struct {
	style  string
	size   float64
	height float64
}

var styles = map[Style]fontSpec{
	StyleBody:          {"", 10, 5},
	StyleDoctorName:    {"B", 16, 7},
	StyleQualification: {"", 11, 5.5},
	StyleDetail:        {"", 9, 4.5},
	StyleTitle:         {"B", 14, 8},
	StylePatient:       {"", 10, 5.5},
	StyleSectionTitle:  {"B", 11, 6},
	StyleDrugName:      {"B", 10, 5},
	StyleDrugDetail:    {"", 9, 4.5},
	StyleFooterName:    {"B", 10, 5},
	StyleFooter:        {"", 9, 4.5},
}

// renderer places a Layout on A4 pages. The two body columns are planned
// independently; a column that runs past the bottom margin continues at the
// top of the next page. Pages are then drawn strictly in order.
type renderer struct {
	pdf    *gofpdf.Fpdf
	family string
	utf8   bool
	tr     func(string) string

	pageW, pageH float64
	bottom       float64
}

// placed is one wrapped line with its position on its page.
type placed struct {
	text  string
	style Style
	y     float64
}

func newRenderer(pdf *gofpdf.Fpdf, font []byte) *renderer {
	r := &renderer{pdf: pdf}
	if font != nil {
		pdf.AddUTF8FontFromBytes(utf8Family, "", font)
		pdf.AddUTF8FontFromBytes(utf8Family, "B", font)
		r.family, r.utf8 = utf8Family, true
		r.tr = func(s string) string { return s }
	} else {
		r.family = coreFamily
		r.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	r.pageW, r.pageH = pdf.GetPageSize()
	r.bottom = r.pageH - pageMargin
	return r
}

func (r *renderer) setStyle(s Style) fontSpec {
	spec := styles[s]
	r.pdf.SetFont(r.family, spec.style, spec.size)
	return spec
}

// wrap splits text into lines no wider than w in the current font.
func (r *renderer) wrap(text string, w float64) []string {
	if text == "" {
		return []string{""}
	}
	if r.utf8 {
		return r.pdf.SplitText(text, w)
	}
	var out []string
	for _, l := range r.pdf.SplitLines([]byte(r.tr(text)), w) {
		out = append(out, string(l))
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

// block draws one line of the layout across the full text width.
func (r *renderer) block(l Line, align string) {
	spec := r.setStyle(l.Style)
	w := r.pageW - 2*pageMargin
	for _, text := range r.wrap(l.Text, w) {
		r.pdf.SetX(pageMargin)
		r.pdf.CellFormat(w, spec.height, text, "", 1, align, false, 0, "")
	}
}

func (r *renderer) draw(l Layout) {
	pdf := r.pdf
	pdf.AddPage()

	for _, line := range l.Header {
		r.block(line, "L")
	}
	pdf.Ln(2)
	r.rule(pdf.GetY())
	pdf.Ln(2)

	r.block(Line{Text: l.Title, Style: StyleTitle}, "C")
	for _, line := range l.Patient {
		r.block(line, "L")
	}
	pdf.Ln(2)
	r.rule(pdf.GetY())
	pdf.Ln(3)

	top := pdf.GetY()
	textW := r.pageW - 2*pageMargin
	split := pageMargin + textW*leftShare
	leftX, leftW := pageMargin, split-pageMargin-columnGap/2
	rightX, rightW := split+columnGap/2, r.pageW-pageMargin-split-columnGap/2

	left := r.plan(l.Left, top, leftW)
	right := r.plan(l.Right, top, rightW)

	pages := len(left)
	if len(right) > pages {
		pages = len(right)
	}
	endY := top
	for i := 0; i < pages; i++ {
		from := top
		if i > 0 {
			pdf.AddPage()
			from = pageMargin
		}
		to := from
		for _, col := range []struct {
			lines [][]placed
			x, w  float64
		}{{left, leftX, leftW}, {right, rightX, rightW}} {
			if i >= len(col.lines) {
				continue
			}
			for _, p := range col.lines[i] {
				spec := r.setStyle(p.style)
				pdf.SetXY(col.x, p.y)
				pdf.CellFormat(col.w, spec.height, p.text, "", 0, "L", false, 0, "")
				if end := p.y + spec.height; end > to {
					to = end
				}
			}
		}
		if to > from {
			pdf.SetLineWidth(0.3)
			pdf.Line(split, from, split, to)
		}
		endY = to
	}
	r.footer(l.Footer, endY)
}

// plan wraps the sections of one column and assigns each line a page and a
// y position. The first page starts at top, later pages at the margin.
func (r *renderer) plan(sections []Section, top, w float64) [][]placed {
	pages := [][]placed{nil}
	y := top
	put := func(text string, style Style, height float64) {
		if y+height > r.bottom {
			pages = append(pages, nil)
			y = pageMargin
		}
		last := len(pages) - 1
		pages[last] = append(pages[last], placed{text: text, style: style, y: y})
		y += height
	}

	for i, s := range sections {
		if i > 0 {
			y += sectionGap
		}
		spec := r.setStyle(StyleSectionTitle)
		for _, text := range r.wrap(s.Title, w) {
			put(text, StyleSectionTitle, spec.height)
		}
		for _, line := range s.Lines {
			spec := r.setStyle(line.Style)
			for _, text := range r.wrap(line.Text, w) {
				put(text, line.Style, spec.height)
			}
			if line.GapAfter {
				y += drugGap
			}
		}
	}
	return pages
}

// footer draws the signature block below y, on a new page when it does not
// fit.
func (r *renderer) footer(lines []Line, y float64) {
	var height float64
	for _, l := range lines {
		height += styles[l.Style].height
	}
	y += footerSpace
	if y+height > r.bottom {
		r.pdf.AddPage()
		y = pageMargin
	}
	r.pdf.SetY(y)
	for _, l := range lines {
		r.block(l, "R")
	}
}

func (r *renderer) rule(y float64) {
	r.pdf.SetLineWidth(0.4)
	r.pdf.Line(pageMargin, y, r.pageW-pageMargin, y)
}
