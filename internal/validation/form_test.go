package validation

import "testing"

func validForm() *Form {
	return &Form{
		Name:            "Anita Devi",
		Email:           "anita@example.com",
		Password:        "Passw0rd!",
		ConfirmPassword: "Passw0rd!",
		Phone:           "9999999999",
		Country:         "India",
	}
}

func TestValidateAllEmptyOnValidForm(t *testing.T) {
	form := validForm()
	errs := ValidateAll(form)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if !Valid(form, errs) {
		t.Fatal("expected form to be submittable")
	}
}

func TestValidateAllMissingCountry(t *testing.T) {
	form := validForm()
	form.Country = ""
	errs := ValidateAll(form)
	if _, ok := errs["country"]; !ok {
		t.Fatalf("expected country error, got %v", errs)
	}
	if Valid(form, errs) {
		t.Fatal("form with missing country must not be valid")
	}
}

func TestValidateAllBlankMandatoryFieldInvalidatesForm(t *testing.T) {
	// A whitespace-only optional-looking value on a mandatory field must
	// keep the form unsubmittable even when the error map is empty.
	form := validForm()
	form.Name = "   "
	errs := ValidateAll(form)
	if Valid(form, errs) {
		t.Fatal("blank name must not be submittable")
	}
}

func TestUpdateFieldRecomputesConfirmPassword(t *testing.T) {
	form := validForm()
	errs := ValidateAll(form)
	if len(errs) != 0 {
		t.Fatalf("precondition: expected valid form, got %v", errs)
	}

	// User edits password; confirmPassword no longer matches.
	form.Password = "NewSecr3t!"
	errs.UpdateField("password", form)

	if _, ok := errs["password"]; ok {
		t.Fatalf("new password is strong, got error %q", errs["password"])
	}
	if errs["confirmPassword"] != "Passwords do not match" {
		t.Fatalf("expected confirmPassword re-flagged, got %v", errs)
	}

	// Typing the matching confirmation clears it again.
	form.ConfirmPassword = "NewSecr3t!"
	errs.UpdateField("confirmPassword", form)
	if len(errs) != 0 {
		t.Fatalf("expected errors cleared, got %v", errs)
	}
}

func TestUpdateFieldOnlyTouchesChangedField(t *testing.T) {
	form := validForm()
	form.Email = "bad"
	errs := ValidateAll(form)
	if _, ok := errs["email"]; !ok {
		t.Fatalf("expected email error, got %v", errs)
	}

	form.Phone = "123"
	errs.UpdateField("phone", form)

	if _, ok := errs["email"]; !ok {
		t.Fatal("email error must survive an unrelated phone edit")
	}
	if _, ok := errs["phone"]; !ok {
		t.Fatal("expected phone error after edit")
	}
}

func TestValidateFieldPhoneMessages(t *testing.T) {
	form := validForm()
	form.Country = "United Kingdom"

	if got := ValidateField("phone", "12345abcde1", form); got != "Phone must contain digits only (no letters)" {
		t.Fatalf("expected letters message, got %q", got)
	}
	if got := ValidateField("phone", "1234567890", form); got != "Phone must be 11 digits" {
		t.Fatalf("expected length message, got %q", got)
	}
	if got := ValidateField("phone", "12345678901", form); got != "" {
		t.Fatalf("expected valid, got %q", got)
	}
}

func TestValidateFieldMessages(t *testing.T) {
	form := validForm()

	cases := []struct {
		field string
		value string
		want  string
	}{
		{"name", "Anita3", "Name should contain only letters."},
		{"email", "not-an-email", "Enter a valid email"},
		{"password", "short", "Password must be 8+ chars incl. upper, lower, number, special"},
		{"country", "  ", "Country is required"},
	}
	for _, tc := range cases {
		if got := ValidateField(tc.field, tc.value, form); got != tc.want {
			t.Errorf("ValidateField(%q, %q) = %q, want %q", tc.field, tc.value, got, tc.want)
		}
	}
}
