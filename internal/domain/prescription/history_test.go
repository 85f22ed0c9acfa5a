package prescription

import (
	"strings"
	"testing"
	"time"
)

func TestFormatHistory_Empty(t *testing.T) {
	if got := FormatHistory("Rahim", 1, nil); got != "No prescription history found for this patient." {
		t.Errorf("unexpected text %q", got)
	}
}

func TestFormatHistory(t *testing.T) {
	at := time.Date(2024, 3, 5, 10, 30, 0, 0, time.Local)
	list := []*Prescription{
		{
			CreatedAt:       at,
			ChiefComplaints: "Fever for 3 days",
			Vitals:          Vitals{BP: "120/80"},
			Drugs:           []DrugLine{{Formulation: "Tab. Napa 500mg", Dosage: "1+1+1", Duration: "5 days"}},
			FollowUp:        "7 days",
		},
		{CreatedAt: at.Add(-24 * time.Hour), Diagnosis: "URTI"},
	}

	got := FormatHistory("Rahim", 12, list)
	for _, want := range []string{
		"Prescription History for Rahim (Reg: 12)",
		"Prescription #1 - Date: 2024-03-05 10:30:00",
		"Chief Complaints: Fever for 3 days",
		"Vitals: • BP: 120/80 mmHg",
		"  - Tab. Napa 500mg: 1+1+1 for 5 days",
		"Follow Up: 7 days",
		"Prescription #2 - Date: 2024-03-04 10:30:00",
		"Diagnosis: URTI",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("history missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Advice:") {
		t.Error("empty advice must be omitted")
	}
}

func TestDurationChoices(t *testing.T) {
	if DurationChoices[0] != "1 day" || DurationChoices[1] != "2 days" {
		t.Errorf("unexpected leading choices %q", DurationChoices[:2])
	}
	if len(DurationChoices) != 40 {
		t.Errorf("expected 40 duration choices, got %d", len(DurationChoices))
	}
	if DurationChoices[len(DurationChoices)-1] != "৬ মাস" {
		t.Errorf("unexpected last choice %q", DurationChoices[len(DurationChoices)-1])
	}
	if DurationChoices[29] != "১০ দিন" {
		t.Errorf("unexpected bangla day 10 %q", DurationChoices[29])
	}
}
