package vcard

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is assumed for numbers written without a country code.
const DefaultRegion = "BD"

// NormalizePhoneNumbers parses every number against region and returns the valid ones
// in E.164 form, keeping input order. Unparseable or invalid numbers are dropped.
func NormalizePhoneNumbers(numbers []string, region string) []string {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = DefaultRegion
	}
	out := make([]string, 0, len(numbers))
	for _, raw := range numbers {
		num, err := phonenumbers.Parse(raw, region)
		if err != nil {
			continue
		}
		if !phonenumbers.IsValidNumber(num) {
			continue
		}
		out = append(out, phonenumbers.Format(num, phonenumbers.E164))
	}
	return out
}
