package composer

import (
	"fmt"
	"unicode"
)

// MinPassword is the minimum accepted password length.
const MinPassword = 6

// ValidatePassword checks the password and its confirmation field.
func ValidatePassword(password, confirm string) error {
	if password == "" || confirm == "" {
		return validationError("missing_password", "please fill in all password fields")
	}
	if password != confirm {
		return validationError("password_mismatch", "passwords do not match")
	}
	if len(password) < MinPassword {
		return validationError("password_too_short",
			fmt.Sprintf("password must be at least %d characters", MinPassword))
	}
	return nil
}

// PasswordStrength scores a password 0..5: length of 8+, an upper-case
// letter, a lower-case letter, a digit and a symbol each add one point.
func PasswordStrength(password string) int {
	strength := 0
	if len(password) >= 8 {
		strength++
	}

	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSymbol = true
		}
	}

	for _, ok := range []bool{hasUpper, hasLower, hasDigit, hasSymbol} {
		if ok {
			strength++
		}
	}
	return strength
}

// StrengthLabel maps a strength score onto the label shown next to the meter.
func StrengthLabel(strength int) string {
	switch {
	case strength <= 1:
		return "Weak"
	case strength <= 2:
		return "Fair"
	case strength <= 3:
		return "Good"
	default:
		return "Strong"
	}
}
