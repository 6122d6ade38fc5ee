package users

import (
	"errors"
	"strings"

	reasoncodes "github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/reason_codes"
	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/rest"

	"github.com/go-playground/validator/v10"
)

const noFieldsMessage = "At least one field (name, email, or age) must be provided for update."

var validate = validator.New()

// ValidateCreate applies the rules binding tags cannot express.
func ValidateCreate(r CreateUserRequest) error {
	if strings.TrimSpace(r.Name) == "" {
		return reasoncodes.Validation("Invalid request body", []rest.FieldError{
			rest.NewFieldError("body", "name", "name must not be empty", r.Name),
		})
	}
	return nil
}

// ValidatePatch checks every supplied field. An explicit null is rejected since
// none of the columns are nullable.
func ValidatePatch(p UserPatch) error {
	var details []rest.FieldError

	check := func(field string, set, null bool, value any, rule string) {
		switch {
		case !set:
		case null:
			details = append(details, rest.NewFieldError("body", field, field+" must not be null", nil))
		default:
			var ve validator.ValidationErrors
			if err := validate.Var(value, rule); errors.As(err, &ve) {
				for _, fe := range ve {
					details = append(details, rest.NewFieldError("body", field, rest.RuleMessage(field, fe.Tag(), fe.Param()), value))
				}
			}
		}
	}

	check("name", p.Name.Set, p.Name.Null, strings.TrimSpace(p.Name.Value), "required")
	check("email", p.Email.Set, p.Email.Null, strings.TrimSpace(p.Email.Value), "required,email")
	check("age", p.Age.Set, p.Age.Null, p.Age.Value, "gte=0")

	if len(details) > 0 {
		return reasoncodes.Validation("Invalid request body", details)
	}
	if !p.Name.Set && !p.Email.Set && !p.Age.Set {
		return reasoncodes.NoFieldsProvided(noFieldsMessage)
	}
	return nil
}
