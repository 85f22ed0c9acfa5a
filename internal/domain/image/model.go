package image

import "time"

// PatientImage maps to the patient_image table. The file itself lives in
// the image store; Path references it.
type PatientImage struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientRegNo uint      `gorm:"column:patient_reg_no;index;not null" json:"patient_reg_no"`
	Path         string    `gorm:"column:image_path;not null" json:"path"`
	Description  string    `gorm:"column:description" json:"description"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (PatientImage) TableName() string { return "patient_image" }
