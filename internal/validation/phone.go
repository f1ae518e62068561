package validation

import (
	"errors"
	"regexp"
)

// Accepted phone shapes: international with a leading plus, US-style
// dashed, or plain digits.
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\+\d{7,15}$`),
	regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`),
	regexp.MustCompile(`^\d{7,15}$`),
}

var ErrInvalidPhone = errors.New("Invalid phone format. Use +1234567890 or 123-456-7890 or plain digits.")

// ValidatePhone accepts an empty phone (the field is optional) and
// otherwise requires a match against one of the accepted shapes.
func ValidatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	for _, rx := range phonePatterns {
		if rx.MatchString(phone) {
			return nil
		}
	}
	return ErrInvalidPhone
}
