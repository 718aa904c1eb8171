// Package forms implements the field validation rules for the two data-entry
// forms and the per-form field state they operate on.
//
// Validation is pure: the same values always produce the same errors, and no
// rule touches anything outside its own field. Per field, the first matching
// rule wins; a field never carries more than one message at a time.
package forms

import "strings"

// Kind selects which form's field set and rules apply.
type Kind string

const (
	KindSignUp Kind = "sign_up"
	KindSignIn Kind = "sign_in"
)

// ParseKind validates an external form-kind string.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindSignUp, KindSignIn:
		return Kind(s), true
	default:
		return "", false
	}
}

// Field names, fixed per form kind.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// Fields returns the field set for a form kind, in display order.
func (k Kind) Fields() []string {
	switch k {
	case KindSignUp:
		return []string{FieldName, FieldEmail, FieldPassword, FieldConfirmPassword}
	case KindSignIn:
		return []string{FieldEmail, FieldPassword}
	default:
		return nil
	}
}

// Values maps field name to the current input string. Missing fields read as
// the empty string, so Validate is total over any input.
type Values map[string]string

// Errors maps field name to a message. Only fields currently in error are
// present; an empty map means the form is submittable.
type Errors map[string]string

// User-facing validation messages.
const (
	MsgNameRequired     = "Name is required"
	MsgNameTooShort     = "Name must be at least 3 characters"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Invalid email format"
	MsgEmailNoAt        = "Email must contain @"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 6 characters"
	MsgConfirmRequired  = "Please confirm your password"
	MsgConfirmMismatch  = "Passwords do not match"
)

const (
	minNameLength     = 3
	minPasswordLength = 6
)

// Validate applies the rules for the given form kind and returns the fields
// in error. It never mutates values and has no side effects.
func Validate(kind Kind, values Values) Errors {
	switch kind {
	case KindSignUp:
		return validateSignUp(values)
	case KindSignIn:
		return validateSignIn(values)
	default:
		return Errors{}
	}
}

func validateSignUp(values Values) Errors {
	errs := Errors{}

	name := values[FieldName]
	if strings.TrimSpace(name) == "" {
		errs[FieldName] = MsgNameRequired
	} else if len(strings.TrimSpace(name)) < minNameLength {
		errs[FieldName] = MsgNameTooShort
	}

	email := values[FieldEmail]
	if strings.TrimSpace(email) == "" {
		errs[FieldEmail] = MsgEmailRequired
	} else if !strings.Contains(email, "@") {
		errs[FieldEmail] = MsgEmailInvalid
	}

	password := values[FieldPassword]
	if strings.TrimSpace(password) == "" {
		errs[FieldPassword] = MsgPasswordRequired
	} else if len(password) < minPasswordLength {
		errs[FieldPassword] = MsgPasswordTooShort
	}

	confirm := values[FieldConfirmPassword]
	if strings.TrimSpace(confirm) == "" {
		errs[FieldConfirmPassword] = MsgConfirmRequired
	} else if confirm != password {
		errs[FieldConfirmPassword] = MsgConfirmMismatch
	}

	return errs
}

func validateSignIn(values Values) Errors {
	errs := Errors{}

	email := values[FieldEmail]
	if strings.TrimSpace(email) == "" {
		errs[FieldEmail] = MsgEmailRequired
	} else if !strings.Contains(email, "@") {
		errs[FieldEmail] = MsgEmailNoAt
	}

	password := values[FieldPassword]
	if strings.TrimSpace(password) == "" {
		errs[FieldPassword] = MsgPasswordRequired
	} else if len(password) < minPasswordLength {
		errs[FieldPassword] = MsgPasswordTooShort
	}

	return errs
}

// ClearField returns a copy of errs without the given field. The input map
// is never mutated, so callers can treat error sets as values.
func ClearField(errs Errors, field string) Errors {
	next := make(Errors, len(errs))
	for k, v := range errs {
		if k != field {
			next[k] = v
		}
	}
	return next
}
