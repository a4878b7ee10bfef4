// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

var microchipRegex = regexp.MustCompile(`^[0-9A-Fa-f]{9,15}$`)

// ValidateMicrochip checks an ISO-style pet microchip identifier
// (9 to 15 hex digits)
func ValidateMicrochip(chip string) bool {
	return microchipRegex.MatchString(strings.TrimSpace(chip))
}
