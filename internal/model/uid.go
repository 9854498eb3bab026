package model

// UIDLength is the length of resource and entry identifiers
const UIDLength = 64

// ValidUID reports whether s is exactly 64 lowercase hex characters
func ValidUID(s string) bool {
	if len(s) != UIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
