package sanitizer

import "strings"

// MaskEmail keeps the domain and the first character of the local part.
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") || local == "" {
		return email
	}
	if len(local) == 1 {
		return "*@" + domain
	}
	return local[:1] + strings.Repeat("*", len(local)-1) + "@" + domain
}

// MaskPhone shows only the last four digits.
func MaskPhone(phone string) string {
	digits := nonDigitRegex.ReplaceAllString(phone, "")
	if len(digits) < 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// MaskString preserves visibleChars runes at both ends and masks the middle.
func MaskString(s string, visibleChars int) string {
	if visibleChars < 0 {
		visibleChars = 1
	}

	runes := []rune(s)
	length := len(runes)
	if length <= visibleChars*2 {
		return strings.Repeat("*", length)
	}

	return string(runes[:visibleChars]) +
		strings.Repeat("*", length-visibleChars*2) +
		string(runes[length-visibleChars:])
}
