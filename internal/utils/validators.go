package utils

import "unicode"

// IsValidUsername checks length and that the username is plain word
// characters, so it is safe to echo back into pages and URLs.
func IsValidUsername(username string) bool {
	if len(username) < 3 || len(username) > 100 {
		return false
	}
	for _, char := range username {
		if !unicode.IsLetter(char) && !unicode.IsDigit(char) && char != '_' && char != '-' {
			return false
		}
	}
	return true
}

// IsAcceptablePassword enforces the minimum password length.
func IsAcceptablePassword(password string) bool {
	return len(password) >= 8 && len(password) <= 200
}
