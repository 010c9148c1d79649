// Package validation checks submitted contact forms before they are written.
//
// Format rules are expressed as validator tags on model.ContactForm. The uniqueness of the
// name needs a store lookup and is checked separately; it is a lookup-then-write and not atomic.
package validation

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gitlab.com/dirk.krummacker/contacts-web/internal/model"
	"gitlab.com/dirk.krummacker/contacts-web/internal/store"
)

// mobileIdPattern matches Indonesian mobile numbers, with either the 0 trunk prefix or the 62
// country code.
var mobileIdPattern = regexp.MustCompile(`^(\+?62|0)8(1[1-9]|2[1238]|3[1238]|5[1235-9]|7[78]|9[5-9]|8[1-9])[\s\d]{5,11}$`)

// FieldError is a single failed rule for a form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors is the list of field errors of one form submission.
type Errors []FieldError

func (e Errors) Error() string {
	return fmt.Sprintf("validation failed: %d field error(s)", len(e))
}

// Messages returns the error messages in field order.
func (e Errors) Messages() []string {
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Message)
	}
	return messages
}

// Has reports whether the field has at least one error.
func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Validator holds the validator instance with the custom rules registered.
type Validator struct {
	validate *validator.Validate
}

// New returns a validator with the mobile_id rule registered.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(formFieldName)
	err := v.RegisterValidation("mobile_id", func(fl validator.FieldLevel) bool {
		return IsMobileId(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register mobile_id: %v", err))
	}
	return &Validator{validate: v}
}

// IsMobileId reports whether s is an Indonesian mobile phone number.
func IsMobileId(s string) bool {
	return mobileIdPattern.MatchString(s)
}

// Contact validates a form for a new contact (ownId empty) or for an edited contact (ownId is
// the id of the stored record being replaced). The name is taken if another contact already
// has it; the stored record itself does not count, so keeping the name on edit passes. A
// non-nil error other than Errors means the store lookup failed.
func (v *Validator) Contact(ctx context.Context, contacts store.Store, form model.ContactForm, ownId string) error {
	var fieldErrors Errors

	if form.Name != "" {
		existing, err := contacts.FindByName(ctx, form.Name)
		switch {
		case err == nil && (ownId == "" || existing.Id != ownId):
			fieldErrors = append(fieldErrors, FieldError{Field: "name", Message: "Contact name is already in use!"})
		case !errors.Is(err, store.ErrNotFound):
			return err
		}
	}
	fieldErrors = append(fieldErrors, v.format(form)...)

	if len(fieldErrors) == 0 {
		return nil
	}
	sortByField(fieldErrors)
	return fieldErrors
}

// format runs the struct tag rules.
func (v *Validator) format(form model.ContactForm) Errors {
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return Errors{{Field: "form", Message: err.Error()}}
	}
	var fieldErrors Errors
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return fieldErrors
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s is required!", fe.Field())
	case "max":
		return fmt.Sprintf("The %s must not exceed %s characters!", fe.Field(), fe.Param())
	case "email":
		return "Email is not valid!"
	case "mobile_id":
		return "Phone number is not valid!"
	default:
		return fmt.Sprintf("The %s is not valid!", fe.Field())
	}
}

var fieldOrder = map[string]int{"name": 0, "email": 1, "phone": 2}

// sortByField orders errors name, email, phone while keeping the order within a field.
func sortByField(e Errors) {
	slices.SortStableFunc(e, func(a, b FieldError) int {
		return cmp.Compare(fieldOrder[a.Field], fieldOrder[b.Field])
	})
}

// formFieldName reports fields by their form name so messages read "name" rather than "Name".
func formFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return name
}
