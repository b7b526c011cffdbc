package telegram

import (
	"strings"

	"cardscan/api/internal/ocr/types"
)

const (
	textHelp     = "Send me a photo of a business card and I'll reply with the contact details and a .vcf file.\nCommands: /health"
	textAccepted = "Got the photo, reading the card…"
	textNotImage = "Please upload a valid image file (JPG, PNG, etc.)"
	textNoName   = "No name found on the card, so there is no vCard this time."
)

func formatContact(rec types.ContactRecord) string {
	var b strings.Builder
	b.WriteString("📇 Contact:\n")
	line := func(label, v string) {
		if v = strings.TrimSpace(v); v != "" {
			b.WriteString(label + ": " + v + "\n")
		}
	}
	line("Name", rec.Name)
	line("Title", strings.Join(rec.Titles, "; "))
	line("Organization", rec.Organization)
	line("Phone", strings.Join(rec.PhoneNumbers, ", "))
	line("Email", rec.Email)
	line("Address", rec.Address)
	line("Web", rec.URL)
	return strings.TrimRight(b.String(), "\n")
}
