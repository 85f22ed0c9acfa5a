package prescription

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/rxpad/rxpad/internal/domain/doctor"
)

// DrugLine is one medication entry. Lines keep the order they were added in.
type DrugLine struct {
	Formulation  string `json:"formulation" validate:"required"`
	Dosage       string `json:"dosage" validate:"required"`
	Duration     string `json:"duration"`
	Instructions string `json:"instructions"`
}

// Vitals holds the six optional vital signs as entered. A blank field is
// absent.
type Vitals struct {
	BP              string `json:"bp,omitempty"`
	Pulse           string `json:"pulse,omitempty"`
	Temperature     string `json:"temperature,omitempty"`
	RespiratoryRate string `json:"respiratory_rate,omitempty"`
	SpO2            string `json:"spo2,omitempty"`
	Weight          string `json:"weight,omitempty"`
}

// VitalBullet prefixes every rendered vital line.
const VitalBullet = "• "

// Lines renders each present vital on its own bulleted line, always in the
// order BP, pulse, temperature, respiratory rate, SpO2, weight.
func (v Vitals) Lines() []string {
	fields := []struct {
		value, format string
	}{
		{v.BP, "BP: %s mmHg"},
		{v.Pulse, "Pulse: %s/min"},
		{v.Temperature, "Temperature: %s°F"},
		{v.RespiratoryRate, "Respiratory Rate: %s/min"},
		{v.SpO2, "SpO2: %s%%"},
		{v.Weight, "Weight: %s kg"},
	}
	var out []string
	for _, f := range fields {
		if val := strings.TrimSpace(f.value); val != "" {
			out = append(out, VitalBullet+fmt.Sprintf(f.format, val))
		}
	}
	return out
}

func (v Vitals) Text() string {
	return strings.Join(v.Lines(), "\n")
}

func (v Vitals) Empty() bool {
	return len(v.Lines()) == 0
}

// LineList is stored as newline-separated text.
type LineList []string

// ParseLines splits text on line breaks. Blank lines are kept; renderers
// decide whether to drop them.
func ParseLines(text string) LineList {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return LineList(strings.Split(text, "\n"))
}

func (l LineList) Text() string {
	return strings.Join(l, "\n")
}

func (l LineList) Value() (driver.Value, error) {
	return l.Text(), nil
}

func (l *LineList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
	case string:
		*l = ParseLines(v)
	case []byte:
		*l = ParseLines(string(v))
	default:
		return fmt.Errorf("line list: cannot scan %T", src)
	}
	return nil
}

// Prescription maps to the prescription table. Rows are never updated; the
// doctor profile is frozen into the row when it is created.
type Prescription struct {
	ID              uint                               `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientRegNo    uint                               `gorm:"column:patient_reg_no;index;not null" json:"patient_reg_no"`
	CreatedAt       time.Time                          `gorm:"column:created_at" json:"created_at"`
	ChiefComplaints string                             `gorm:"column:chief_complaints" json:"chief_complaints"`
	Diagnosis       string                             `gorm:"column:diagnosis" json:"diagnosis"`
	Vitals          Vitals                             `gorm:"column:vitals;type:text;serializer:json" json:"vitals"`
	SystemicExam    string                             `gorm:"column:systemic_exam" json:"systemic_exam"`
	Investigations  LineList                           `gorm:"column:investigations;type:text" json:"investigations"`
	Drugs           []DrugLine                         `gorm:"column:drugs;type:text;serializer:json" json:"drugs"`
	Advice          LineList                           `gorm:"column:advice;type:text" json:"advice"`
	FollowUp        string                             `gorm:"column:follow_up" json:"follow_up"`
	Doctor          datatypes.JSONType[doctor.Profile] `gorm:"column:doctor_snapshot" json:"doctor"`
}

func (Prescription) TableName() string { return "prescription" }

// DoctorSnapshot returns the doctor profile frozen into the row.
func (p *Prescription) DoctorSnapshot() doctor.Profile {
	return p.Doctor.Data()
}

// Content returns the stored sections in the shape a draft holds them.
func (p *Prescription) Content() Sections {
	return Sections{
		ChiefComplaints: p.ChiefComplaints,
		Diagnosis:       p.Diagnosis,
		Vitals:          p.Vitals,
		SystemicExam:    p.SystemicExam,
		Investigations:  append([]string(nil), p.Investigations...),
		Drugs:           append([]DrugLine(nil), p.Drugs...),
		Advice:          append([]string(nil), p.Advice...),
		FollowUp:        p.FollowUp,
	}
}
