package validate

import (
	"github.com/go-playground/validator/v10"

	"github.com/applytrack/applytrack/internal/apperr"
	"github.com/applytrack/applytrack/internal/models"
)

var v = validator.New()

// Field is one entry of a declarative schema: a JSON field name, the
// validator rule for it, and the value under test.
type Field struct {
	Name string
	Rule string
	Value any
}

// Fields evaluates a schema in order and reports the first violation
// as a ValidationError. Create and Update share the same schemas so
// their rules cannot drift apart.
func Fields(fields ...Field) error {
	for _, f := range fields {
		if err := v.Var(f.Value, f.Rule); err != nil {
			return &apperr.ValidationError{Field: f.Name, Reason: reason(f.Rule, err)}
		}
	}
	return nil
}

func reason(rule string, err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return "is invalid (" + rule + ")"
	}
	fe := errs[0]
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}

// Application is the schema for application create and update.
func Application(company, position string, status models.ApplicationStatus, notes string) error {
	return Fields(
		Field{Name: "company", Rule: "required,max=100", Value: company},
		Field{Name: "position", Rule: "required,max=100", Value: position},
		Field{Name: "status", Rule: "oneof=applied interview offer rejected", Value: string(status)},
		Field{Name: "notes", Rule: "max=1000", Value: notes},
	)
}

// Task is the schema for task create and update. Parent ownership is
// checked by the store, not here.
func Task(title, notes string) error {
	return Fields(
		Field{Name: "title", Rule: "required,max=200", Value: title},
		Field{Name: "notes", Rule: "max=1000", Value: notes},
	)
}

// Credentials is the schema for sign-up.
func Credentials(email, password string) error {
	return Fields(
		Field{Name: "email", Rule: "required,email", Value: email},
		Field{Name: "password", Rule: "required,min=8,max=72", Value: password},
	)
}
