package builder

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ValidationError reports a missing required field at save time.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// commitFields are the fields required before a backend save. The
// document itself never enforces them; only the commit path does.
type commitFields struct {
	VersionName string `validate:"required"`
	FullName    string `validate:"required"`
}

// ValidateForSave checks the required fields for a backend commit.
// It returns the first missing field so the caller can point at it.
func (d *Document) ValidateForSave() error {
	fields := commitFields{
		VersionName: d.VersionName,
		FullName:    d.Personal.FullName,
	}

	validate := validator.New()
	err := validate.Struct(&fields)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}

	switch errs[0].Field() {
	case "VersionName":
		return &ValidationError{Field: "version_name", Message: "version name is required"}
	case "FullName":
		return &ValidationError{Field: "full_name", Message: "full name is required"}
	default:
		return &ValidationError{Field: errs[0].Field(), Message: "is required"}
	}
}
