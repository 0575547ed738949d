package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Passw0rd!", true},
		{"valid upper special only", "ABCDEFG!", true},
		{"valid at min length", "Abcdef!8", true},
		{"valid at max length", "Abcdefghijklmn!9", true},
		{"empty", "", false},
		{"too short", "Abc!def", false},
		{"too long", "Abcdefghijklmno!17", false},
		{"no uppercase", "passw0rd!", false},
		{"no special", "Passw0rd1", false},
		{"only letters", "Password", false},
		{"unicode counts as special", "Passwörd1", true},
		// length is measured in characters, so a multibyte char still
		// counts as one
		{"multibyte below min length", "Abcdef€", false},
		{"multibyte at max length", "Abcdefghijklmno€", true},
		{"multibyte over max length", "Abcdefghijklmnop€", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsValidPassword(tc.password))
		})
	}
}
