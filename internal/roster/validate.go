package roster

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rosterkit/rosterkit/internal/types"
)

// validate is shared by every operation. Field names in error messages
// come from the json struct tags ("roll_no", not "RollNo") so the shell
// can echo them to the operator verbatim.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkRecord runs the struct-tag rules on a candidate record and
// converts the first failure into a *ValidationError with a plain
// English reason.
func checkRecord(rec types.StudentRecord) *ValidationError {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}

	// validator.Struct only returns ValidationErrors for well-formed
	// structs; anything else would be a programming error.
	validateErrs := err.(validator.ValidationErrors)
	e := validateErrs[0]

	var reason string
	switch e.ActualTag() {
	case "required":
		reason = "must not be empty"
	case "gte":
		reason = fmt.Sprintf("must be at least %s", e.Param())
	case "lte":
		reason = fmt.Sprintf("cannot exceed %s", e.Param())
	default:
		reason = fmt.Sprintf("failed the %s rule", e.ActualTag())
	}

	return &ValidationError{Field: e.Field(), Reason: reason}
}
