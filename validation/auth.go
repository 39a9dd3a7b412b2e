package validation

import (
	"strings"

	"devconnect/models"
)

const (
	passwordSpecials  = "@#$%&^+=!"
	passwordMinLength = 8
	// bcrypt only accepts inputs up to this many bytes.
	passwordMaxBytes = 72
)

// strongPassword requires at least eight characters with an upper case
// letter, a lower case letter, a digit and one of @#$%&^+=!.
func strongPassword(p string) bool {
	if jsLength(p) < passwordMinLength || strings.ContainsAny(p, "\n\r\u2028\u2029") {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func Signup(req models.SignupRequest) (Errors, bool) {
	errs := Errors{}

	name := normalize(req.Name)
	email := normalize(req.Email)
	password := normalize(req.Password)

	if !isLength(name, 2, 30) {
		errs["name"] = "Name must be between 2 and 30 characters"
	}
	if isEmpty(name) {
		errs["name"] = "Name field is required"
	}

	if !isEmail(email) {
		errs["email"] = "Email is invalid"
	}
	if isEmpty(email) {
		errs["email"] = "Email field is required"
	}

	if !strongPassword(password) {
		errs["password"] = "A good password should contain uppercase, lowercase, special characters @#$%&^+=! , digits and above 8 characters"
	}
	if len(password) > passwordMaxBytes {
		errs["password"] = "Password must not exceed 72 bytes"
	}
	if isEmpty(password) {
		errs["password"] = "Password field is required"
	}

	return errs, len(errs) == 0
}

func Login(req models.LoginRequest) (Errors, bool) {
	errs := Errors{}

	email := normalize(req.Email)
	password := normalize(req.Password)

	if !isEmail(email) {
		errs["email"] = "Email is invalid"
	}
	if isEmpty(email) {
		errs["email"] = "Email field is required"
	}

	if isEmpty(password) {
		errs["password"] = "Password field is required"
	}

	return errs, len(errs) == 0
}
