// Package form turns raw operator input into typed values. A Schema is an
// ordered list of field descriptors; each descriptor declares the semantic
// type of the field and the rule its parsed value must satisfy, so record
// mapping never depends on how the value was entered.
package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rxpad/rxpad/internal/platform/apperr"
)

// Kind is the semantic type of a field.
type Kind int

const (
	Text Kind = iota
	Integer
	Real
	Enum
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Enum:
		return "enum"
	default:
		return "text"
	}
}

// Field describes one input field.
type Field struct {
	Name     string
	Label    string
	Kind     Kind
	Required bool
	// Options lists the allowed values of an Enum field. The first option is
	// used when the field is left blank.
	Options []string
	// Rule is a validator tag applied to the parsed value, e.g. "gte=0".
	Rule string
}

func (f Field) label() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Schema is an ordered field descriptor list.
type Schema []Field

// Values holds extracted, typed field values keyed by field name.
type Values map[string]any

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) Int(name string) int {
	i, _ := v[name].(int)
	return i
}

func (v Values) Float(name string) float64 {
	f, _ := v[name].(float64)
	return f
}

var validate = validator.New()

// Extract parses raw string input according to the schema. All field
// problems are collected and returned as one validation error.
func (s Schema) Extract(op string, raw map[string]string) (Values, error) {
	out := make(Values, len(s))
	var problems []string
	for _, f := range s {
		val, err := f.parse(strings.TrimSpace(raw[f.Name]))
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		out[f.Name] = val
	}
	if len(problems) > 0 {
		return nil, apperr.Validation(op, "%s", strings.Join(problems, "; "))
	}
	return out, nil
}

func (f Field) parse(s string) (any, error) {
	if s == "" && f.Required {
		return nil, fmt.Errorf("%s is required", f.label())
	}

	var val any
	switch f.Kind {
	case Text:
		val = s
	case Integer:
		n := 0
		if s != "" {
			var err error
			if n, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("%s must be a whole number", f.label())
			}
		}
		val = n
	case Real:
		x := 0.0
		if s != "" {
			var err error
			if x, err = strconv.ParseFloat(s, 64); err != nil {
				return nil, fmt.Errorf("%s must be a number", f.label())
			}
		}
		val = x
	case Enum:
		if s == "" && len(f.Options) > 0 {
			s = f.Options[0]
		}
		matched := false
		for _, opt := range f.Options {
			if strings.EqualFold(opt, s) {
				s, matched = opt, true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("%s must be one of %s", f.label(), strings.Join(f.Options, ", "))
		}
		val = s
	default:
		return nil, fmt.Errorf("%s has unsupported kind %s", f.label(), f.Kind)
	}

	if f.Rule != "" {
		if err := validate.Var(val, f.Rule); err != nil {
			return nil, fmt.Errorf("%s fails rule %q", f.label(), f.Rule)
		}
	}
	return val, nil
}

// ValidateStruct checks the `validate` tags of a record and reports the
// failing fields as one validation error.
func ValidateStruct(op string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(op, "%v", err)
	}
	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			problems = append(problems, fmt.Sprintf("%s is required", fe.Field()))
			continue
		}
		problems = append(problems, fmt.Sprintf("%s fails rule %q", fe.Field(), ruleOf(fe)))
	}
	return apperr.Validation(op, "%s", strings.Join(problems, "; "))
}

func ruleOf(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}
