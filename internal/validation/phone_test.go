package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhoneAccepted(t *testing.T) {
	valid := []string{
		"",
		"+1234567",
		"+123456789012345",
		"+254755852877",
		"123-456-7890",
		"1234567",
		"123456789012345",
	}

	for _, phone := range valid {
		assert.NoError(t, ValidatePhone(phone), "phone %q should be valid", phone)
	}
}

func TestValidatePhoneRejected(t *testing.T) {
	invalid := []string{
		"+123456",           // too short after plus
		"+1234567890123456", // too long after plus
		"123456",            // too few plain digits
		"1234567890123456",  // too many plain digits
		"12-3456-7890",
		"123-45-67890",
		"abc-def-ghij",
		"+12 34567890",
		"(123) 456-7890",
		"123.456.7890",
		"++1234567",
	}

	for _, phone := range invalid {
		err := ValidatePhone(phone)
		require.Error(t, err, "phone %q should be rejected", phone)
		assert.Contains(t, err.Error(), "+1234567890 or 123-456-7890 or plain digits")
	}
}
