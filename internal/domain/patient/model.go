package patient

import (
	"time"

	"github.com/rxpad/rxpad/internal/platform/form"
)

var Genders = []string{"Male", "Female", "Other"}

// Patient maps to the patient table. RegNo is assigned by the store on
// insert and never changes afterwards.
type Patient struct {
	RegNo     uint      `gorm:"column:reg_no;primaryKey;autoIncrement" json:"reg_no"`
	Name      string    `gorm:"column:name;not null" json:"name" validate:"required,max=200"`
	Age       int       `gorm:"column:age" json:"age" validate:"gte=0,lte=150"`
	Gender    string    `gorm:"column:gender" json:"gender" validate:"oneof=Male Female Other"`
	Weight    float64   `gorm:"column:weight" json:"weight" validate:"gte=0,lte=300"`
	Phone     string    `gorm:"column:phone;index" json:"phone"`
	Address   string    `gorm:"column:address" json:"address"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Patient) TableName() string { return "patient" }

// RegistrationFields is the registration / edit form.
var RegistrationFields = form.Schema{
	{Name: "name", Label: "Name", Kind: form.Text, Required: true, Rule: "max=200"},
	{Name: "age", Label: "Age", Kind: form.Integer, Rule: "gte=0,lte=150"},
	{Name: "gender", Label: "Gender", Kind: form.Enum, Options: Genders},
	{Name: "weight", Label: "Weight (kg)", Kind: form.Real, Rule: "gte=0,lte=300"},
	{Name: "phone", Label: "Phone", Kind: form.Text},
	{Name: "address", Label: "Address", Kind: form.Text},
}

// FromForm builds an unsaved patient from raw form input.
func FromForm(raw map[string]string) (*Patient, error) {
	v, err := RegistrationFields.Extract("patient form", raw)
	if err != nil {
		return nil, err
	}
	return &Patient{
		Name:    v.String("name"),
		Age:     v.Int("age"),
		Gender:  v.String("gender"),
		Weight:  v.Float("weight"),
		Phone:   v.String("phone"),
		Address: v.String("address"),
	}, nil
}
