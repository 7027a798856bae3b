package repository

import (
	"regexp"
	"strings"
)

// field pairs a required-field name with its value for requireFields.
type field struct {
	name  string
	value string
}

// requireFields fails fast with a single message listing every
// missing field, so clients can fix a bad payload in one round trip.
func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return validationf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// validEmail treats an absent email as valid (the field is optional
// everywhere) and rejects only malformed non-empty values.
func validEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailRe.MatchString(email)
}

// checkEmail wraps validEmail into a ValidationError for optional
// email fields carried as pointers.
func checkEmail(email *string) error {
	if email == nil {
		return nil
	}
	if !validEmail(*email) {
		return validationf("invalid email format: %s", *email)
	}
	return nil
}
