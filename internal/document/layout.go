package document

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rxpad/rxpad/internal/domain/prescription"
)

const (
	Title = "MEDICAL PRESCRIPTION"

	NotSpecified   = "Not specified"
	NotSignificant = "Not significant"
	NoDrugs        = "No drugs prescribed"

	SignatureLine = "Signature: _________________________"

	investigationBullet = "• "
	adviceBullet        = "- "

	dateLayout = "02/01/2006"
	timeLayout = "03:04 PM"
)

// Style selects the font and line height a line is drawn with.
type Style int

const (
	StyleBody Style = iota
	StyleDoctorName
	StyleQualification
	StyleDetail
	StyleTitle
	StylePatient
	StyleSectionTitle
	StyleDrugName
	StyleDrugDetail
	StyleFooterName
	StyleFooter
)

// Line is one paragraph of text. Long lines wrap when drawn.
type Line struct {
	Text  string
	Style Style
	// GapAfter adds vertical space below the line.
	GapAfter bool
}

type Section struct {
	Title string
	Lines []Line
}

// Layout is the fully resolved text of a document: every placeholder,
// bullet and ordering decision is made here, so drawing only places text.
type Layout struct {
	Header  []Line
	Title   string
	Patient []Line
	Left    []Section
	Right   []Section
	Footer  []Line
}

// Compose lays out b as of at. The date and time shown are those of at.
func Compose(b Bundle, at time.Time) Layout {
	doc := b.Doctor
	name := DoctorName(doc.Name)
	c := b.Content

	l := Layout{Title: Title}

	l.Header = appendNonBlank(l.Header, StyleDoctorName, name)
	l.Header = appendNonBlank(l.Header, StyleQualification, joinNonBlank(" | ", doc.Degrees, doc.Designation))
	l.Header = appendNonBlank(l.Header, StyleDetail, doc.Institution)
	l.Header = appendNonBlank(l.Header, StyleDetail, joinNonBlank(" | ",
		labelled("BMDC", doc.RegistrationNo), labelled("Phone", doc.Phone)))
	l.Header = appendNonBlank(l.Header, StyleDetail, doc.Address)

	p := b.Patient
	l.Patient = []Line{
		{Style: StylePatient, Text: fmt.Sprintf("Name: %s   Age: %d   Gender: %s   Weight: %skg   Reg No: %d",
			p.Name, p.Age, p.Gender, strconv.FormatFloat(p.Weight, 'f', -1, 64), p.RegNo)},
		{Style: StylePatient, Text: fmt.Sprintf("Date: %s   Time: %s", at.Format(dateLayout), at.Format(timeLayout))},
	}

	l.Left = []Section{
		{Title: "Chief Complaint:", Lines: textLines(c.ChiefComplaints, NotSpecified)},
		{Title: "Vitals:", Lines: bodyLines(c.Vitals.Lines(), "", NotSpecified)},
		{Title: "Systemic Examination:", Lines: textLines(c.SystemicExam, NotSignificant)},
		{Title: "Diagnosis:", Lines: textLines(c.Diagnosis, NotSpecified)},
		{Title: "Investigations:", Lines: bodyLines(splitAll(c.Investigations), investigationBullet, NotSpecified)},
	}
	l.Right = []Section{
		{Title: "Medications:", Lines: drugLines(c.Drugs)},
		{Title: "Advice:", Lines: bodyLines(splitAll(c.Advice), adviceBullet, NotSpecified)},
		{Title: "Follow Up:", Lines: textLines(c.FollowUp, NotSpecified)},
	}

	l.Footer = []Line{{Style: StyleFooter, Text: SignatureLine}}
	l.Footer = appendNonBlank(l.Footer, StyleFooterName, name)
	l.Footer = appendNonBlank(l.Footer, StyleFooter, doc.Degrees)
	l.Footer = appendNonBlank(l.Footer, StyleFooter, doc.Designation)
	return l
}

// DoctorName prefixes the doctor's name with "Dr." unless it already carries
// the title.
func DoctorName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "dr.") || strings.HasPrefix(lower, "dr ") {
		return name
	}
	return "Dr. " + name
}

// DefaultFileName is the suggested artifact name for a patient's document.
func DefaultFileName(regNo uint, at time.Time) string {
	return fmt.Sprintf("prescription_%d_%s.pdf", regNo, at.Format("20060102_150405"))
}

func drugLines(drugs []prescription.DrugLine) []Line {
	if len(drugs) == 0 {
		return []Line{{Text: NoDrugs}}
	}
	var out []Line
	for _, d := range drugs {
		out = append(out,
			Line{Style: StyleDrugName, Text: d.Formulation},
			Line{Style: StyleDrugDetail, Text: d.Dosage},
			Line{Style: StyleDrugDetail, Text: d.Duration},
			Line{Style: StyleDrugDetail, Text: d.Instructions, GapAfter: true},
		)
	}
	return out
}

// textLines splits free text into lines. Blank lines are dropped.
func textLines(text, placeholder string) []Line {
	return bodyLines(prescription.ParseLines(text), "", placeholder)
}

func bodyLines(items []string, bullet, placeholder string) []Line {
	var out []Line
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, Line{Text: bullet + item})
	}
	if len(out) == 0 {
		return []Line{{Text: placeholder}}
	}
	return out
}

func splitAll(items []string) []string {
	var out []string
	for _, item := range items {
		out = append(out, prescription.ParseLines(item)...)
	}
	return out
}

func appendNonBlank(lines []Line, style Style, text string) []Line {
	if strings.TrimSpace(text) == "" {
		return lines
	}
	return append(lines, Line{Style: style, Text: text})
}

func joinNonBlank(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func labelled(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return label + ": " + value
}
