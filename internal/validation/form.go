package validation

import (
	"fmt"
	"strings"
)

// Form is a snapshot of the registration form. All fields are raw strings;
// Country drives the phone-length rule.
type Form struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Gender          string `json:"gender"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	State           string `json:"state"`
	City            string `json:"city"`
	Country         string `json:"country"`
	Description     string `json:"description"`
}

// ErrorMap maps a field name to its error message. A missing key means the
// field is valid.
type ErrorMap map[string]string

// MandatoryFields must be non-blank before the form is submittable.
var MandatoryFields = []string{"name", "email", "password", "confirmPassword", "phone", "country"}

func (f *Form) field(name string) string {
	switch name {
	case "name":
		return f.Name
	case "email":
		return f.Email
	case "password":
		return f.Password
	case "confirmPassword":
		return f.ConfirmPassword
	case "gender":
		return f.Gender
	case "phone":
		return f.Phone
	case "address":
		return f.Address
	case "state":
		return f.State
	case "city":
		return f.City
	case "country":
		return f.Country
	case "description":
		return f.Description
	}
	return ""
}

// ValidateField returns the error message for one field, or "" when valid.
// confirmPassword and phone read their context from the rest of the form.
func ValidateField(field string, value string, form *Form) string {
	switch field {
	case "name":
		if !IsValidName(value, NameBasic) {
			return "Name should contain only letters."
		}
	case "email":
		if !IsEmail(value) {
			return "Enter a valid email"
		}
	case "password":
		if !StrongPassword(value) {
			return "Password must be 8+ chars incl. upper, lower, number, special"
		}
	case "confirmPassword":
		if value != form.Password {
			return "Passwords do not match"
		}
	case "phone":
		if !IsDigits(value) {
			return "Phone must contain digits only (no letters)"
		}
		if !IsPhone(value, form.Country) {
			return fmt.Sprintf("Phone must be %d digits", PhoneLength(form.Country))
		}
	case "country":
		if strings.TrimSpace(value) == "" {
			return "Country is required"
		}
	}
	return ""
}

// ValidateAll evaluates every mandatory field and returns the error map.
func ValidateAll(form *Form) ErrorMap {
	errs := ErrorMap{}
	for _, f := range MandatoryFields {
		if msg := ValidateField(f, form.field(f), form); msg != "" {
			errs[f] = msg
		}
	}
	return errs
}

// UpdateField is the incremental path used while editing: it recomputes only
// the changed field, plus confirmPassword whenever the password changes,
// since its validity depends on the password. form must already hold the new
// value.
func (m ErrorMap) UpdateField(field string, form *Form) {
	if field == "password" && form.ConfirmPassword != "" {
		if msg := ValidateField("confirmPassword", form.ConfirmPassword, form); msg != "" {
			m["confirmPassword"] = msg
		} else {
			delete(m, "confirmPassword")
		}
	}
	if msg := ValidateField(field, form.field(field), form); msg != "" {
		m[field] = msg
	} else {
		delete(m, field)
	}
}

// Valid reports whether the form is submittable: no errors and every
// mandatory field non-blank after trimming.
func Valid(form *Form, errs ErrorMap) bool {
	if len(errs) != 0 {
		return false
	}
	for _, f := range MandatoryFields {
		if strings.TrimSpace(form.field(f)) == "" {
			return false
		}
	}
	return true
}
