// Package vcard renders contact records as vCard 3.0 documents.
//
// Property values are written verbatim. Known limitation: ';', ',', '\' and line
// breaks inside a value are not escaped, so such values can corrupt the document
// structure. Downstream consumers rely on the unescaped output, keep it as is.
package vcard

import (
	"strings"

	"cardscan/api/internal/ocr/types"
)

const (
	ContentType = "text/vcard"

	header  = "BEGIN:VCARD"
	version = "VERSION:3.0"
	footer  = "END:VCARD"
)

// Lines returns the document lines in their fixed order:
// header, N/FN, titles, org, phones, email, address, url, footer.
func Lines(rec types.ContactRecord, region string) []string {
	lines := []string{header, version}

	if rec.Name != "" {
		first, last, _ := strings.Cut(rec.Name, " ")
		lines = append(lines, "N:"+last+";"+first+";;;", "FN:"+rec.Name)
	}
	for _, title := range rec.Titles {
		lines = append(lines, "TITLE:"+title)
	}
	if rec.Organization != "" {
		lines = append(lines, "ORG:"+rec.Organization)
	}
	for _, phone := range NormalizePhoneNumbers(rec.PhoneNumbers, region) {
		lines = append(lines, "TEL;TYPE=CELL:"+phone)
	}
	if rec.Email != "" {
		lines = append(lines, "EMAIL:"+rec.Email)
	}
	if rec.Address != "" {
		// unstructured address goes into the street slot
		lines = append(lines, "ADR:;;"+rec.Address)
	}
	if rec.URL != "" {
		lines = append(lines, "URL:"+rec.URL)
	}
	return append(lines, footer)
}

// Serialize joins Lines with '\n'. The same record always yields the same bytes.
func Serialize(rec types.ContactRecord, region string) string {
	return strings.Join(Lines(rec, region), "\n")
}

// Filename builds the attachment name for a contact: spaces and slashes become underscores.
func Filename(name string) string {
	if name == "" {
		name = "contact"
	}
	r := strings.NewReplacer(" ", "_", "/", "_")
	return r.Replace(name) + ".vcf"
}
