package utils

import "unicode/utf8"

// IsValidPassword is the single password policy predicate shared by signup,
// admin user creation and password change.  A candidate passes when it is
// 8-16 characters long, contains at least one uppercase ASCII letter and at
// least one character outside [A-Za-z0-9].  Length is counted in characters,
// not bytes, matching the other length rules at the edge.  An empty string
// fails the length check, so the function is safe to call on missing input.
func IsValidPassword(password string) bool {
	if n := utf8.RuneCountInString(password); n < 8 || n > 16 {
		return false
	}
	hasUpper := false
	hasSpecial := false
	for _, c := range password {
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		default:
			hasSpecial = true
		}
	}
	return hasUpper && hasSpecial
}
