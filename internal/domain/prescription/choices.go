package prescription

import "fmt"

// Common entries offered when composing a drug line. Free text is accepted
// as well.
var (
	DosageChoices = []string{
		"0+0+1", "0+1+0", "1+0+0", "0+1+1",
		"1+0+1", "1+1+0", "1+1+1", "1+0+0+1",
		"1+1+1+1", "0+0+0+1", "SOS", "When required",
		"০+০+১", "০+১+০", "১+০+০", "০+১+১",
		"১+০+১", "১+১+০", "১+১+১", "১+০+০+১",
		"১+১+১+১", "০+০+০+১", "প্রয়োজনমত", "খাওয়ার পর",
	}
	DurationChoices    = durationChoices()
	InstructionChoices = []string{"Before meal", "After meal", "খাবার আগে", "খাবার পরে"}
)

const (
	DefaultDosage      = "1+1+1"
	DefaultDuration    = "7 days"
	DefaultInstruction = "After meal"
)

var banglaDigits = []rune("০১২৩৪৫৬৭৮৯")

func banglaNumber(n int) string {
	s := []rune(fmt.Sprint(n))
	for i, r := range s {
		s[i] = banglaDigits[r-'0']
	}
	return string(s)
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func durationChoices() []string {
	var out []string
	for i := 1; i <= 14; i++ {
		out = append(out, plural(i, "day"))
	}
	for i := 1; i <= 6; i++ {
		out = append(out, plural(i, "month"))
	}
	for i := 1; i <= 14; i++ {
		out = append(out, banglaNumber(i)+" দিন")
	}
	for i := 1; i <= 6; i++ {
		out = append(out, banglaNumber(i)+" মাস")
	}
	return out
}

// Choices groups the drug line pick lists for clients.
type Choices struct {
	Dosages            []string `json:"dosages"`
	Durations          []string `json:"durations"`
	Instructions       []string `json:"instructions"`
	DefaultDosage      string   `json:"default_dosage"`
	DefaultDuration    string   `json:"default_duration"`
	DefaultInstruction string   `json:"default_instruction"`
}

func AllChoices() Choices {
	return Choices{
		Dosages:            DosageChoices,
		Durations:          DurationChoices,
		Instructions:       InstructionChoices,
		DefaultDosage:      DefaultDosage,
		DefaultDuration:    DefaultDuration,
		DefaultInstruction: DefaultInstruction,
	}
}
