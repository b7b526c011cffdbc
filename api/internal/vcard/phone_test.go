package vcard

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var e164 = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

func TestNormalizePhoneNumbers(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"international stays unchanged", []string{"+8801712345678"}, []string{"+8801712345678"}},
		{"national number gets BD prefix", []string{"01712345678"}, []string{"+8801712345678"}},
		{"separators are dropped", []string{"+880 1812-345678"}, []string{"+8801812345678"}},
		{"garbage is skipped", []string{"not-a-phone"}, []string{}},
		{"too short is invalid", []string{"12345"}, []string{}},
		{"order is preserved", []string{"01812345678", "junk", "+8801712345678"}, []string{"+8801812345678", "+8801712345678"}},
		{"empty input", nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhoneNumbers(tt.in, DefaultRegion)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), len(tt.in))
			for _, n := range got {
				assert.Regexp(t, e164, n)
			}
		})
	}
}

func TestNormalizePhoneNumbersEmptyRegionFallsBackToBD(t *testing.T) {
	assert.Equal(t, []string{"+8801712345678"}, NormalizePhoneNumbers([]string{"01712345678"}, ""))
}

func TestNormalizePhoneNumbersOtherRegion(t *testing.T) {
	got := NormalizePhoneNumbers([]string{"(201) 555-0123", "+8801712345678"}, "us")
	assert.Equal(t, []string{"+12015550123", "+8801712345678"}, got)
}
