package prescription

import (
	"fmt"
	"strings"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// FormatHistory renders a patient's prescriptions as plain text, in the
// order given (newest first when taken from ListByPatient).
func FormatHistory(patientName string, regNo uint, list []*Prescription) string {
	if len(list) == 0 {
		return "No prescription history found for this patient."
	}

	var b strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "Prescription History for %s (Reg: %d)\n%s\n\n", patientName, regNo, rule)

	for i, p := range list {
		fmt.Fprintf(&b, "Prescription #%d - Date: %s\n", i+1, p.CreatedAt.Local().Format(historyTimeLayout))
		b.WriteString(strings.Repeat("-", 40) + "\n")

		if p.ChiefComplaints != "" {
			fmt.Fprintf(&b, "Chief Complaints: %s\n", p.ChiefComplaints)
		}
		if p.Diagnosis != "" {
			fmt.Fprintf(&b, "Diagnosis: %s\n", p.Diagnosis)
		}
		if !p.Vitals.Empty() {
			fmt.Fprintf(&b, "Vitals: %s\n", p.Vitals.Text())
		}
		if len(p.Drugs) > 0 {
			b.WriteString("Drugs:\n")
			for _, d := range p.Drugs {
				fmt.Fprintf(&b, "  - %s: %s for %s\n", d.Formulation, d.Dosage, d.Duration)
			}
		}
		if advice := p.Advice.Text(); strings.TrimSpace(advice) != "" {
			fmt.Fprintf(&b, "Advice: %s\n", advice)
		}
		if p.FollowUp != "" {
			fmt.Fprintf(&b, "Follow Up: %s\n", p.FollowUp)
		}
		b.WriteString("\n" + rule + "\n\n")
	}
	return b.String()
}
