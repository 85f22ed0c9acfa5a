package doctor

import (
	"time"

	"github.com/rxpad/rxpad/internal/platform/form"
)

// Profile maps to the doctor table. Exactly one row exists once the profile
// has been saved.
type Profile struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	Name           string    `gorm:"column:name" json:"name" validate:"required"`
	Degrees        string    `gorm:"column:degrees" json:"degrees"`
	Designation    string    `gorm:"column:designation" json:"designation"`
	Institution    string    `gorm:"column:institution" json:"institution"`
	RegistrationNo string    `gorm:"column:registration_no" json:"registration_no"`
	Phone          string    `gorm:"column:phone" json:"phone"`
	Email          string    `gorm:"column:email" json:"email" validate:"omitempty,email"`
	Address        string    `gorm:"column:address" json:"address"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"-"`
}

func (Profile) TableName() string { return "doctor" }

// DefaultProfile is shown until the clinician saves their own details.
func DefaultProfile() Profile {
	return Profile{
		Name:           "Your Name",
		Degrees:        "MBBS, FCPS",
		Designation:    "Assistant Professor",
		Institution:    "Dhaka Medical College Hospital",
		RegistrationNo: "A-12345",
		Phone:          "01XXXXXXXXX",
		Email:          "doctor@email.com",
		Address:        "Dhaka, Bangladesh",
	}
}

// Fields is the doctor profile form.
var Fields = form.Schema{
	{Name: "name", Label: "Name", Kind: form.Text, Required: true, Rule: "max=200"},
	{Name: "degrees", Label: "Degrees", Kind: form.Text},
	{Name: "designation", Label: "Designation", Kind: form.Text},
	{Name: "institution", Label: "Institution", Kind: form.Text},
	{Name: "registration_no", Label: "Registration number", Kind: form.Text},
	{Name: "phone", Label: "Phone", Kind: form.Text},
	{Name: "email", Label: "Email", Kind: form.Text, Rule: "omitempty,email"},
	{Name: "address", Label: "Address", Kind: form.Text},
}

// ProfileFromForm builds a profile from raw form input.
func ProfileFromForm(raw map[string]string) (*Profile, error) {
	v, err := Fields.Extract("doctor form", raw)
	if err != nil {
		return nil, err
	}
	return &Profile{
		Name:           v.String("name"),
		Degrees:        v.String("degrees"),
		Designation:    v.String("designation"),
		Institution:    v.String("institution"),
		RegistrationNo: v.String("registration_no"),
		Phone:          v.String("phone"),
		Email:          v.String("email"),
		Address:        v.String("address"),
	}, nil
}
