// Package prompt builds the instruction payloads sent to the vision model.
package prompt

import "cardscan/api/internal/ocr/types"

const (
	CLASSIFY = "classify"
	EXTRACT  = "extract"
)

// Payload is a provider-neutral request: one system instruction and one
// user turn made of a text part followed by the image.
type Payload struct {
	Name        string
	System      string
	Text        string
	Image       types.EncodedImage
	Temperature float32
}

// ContactSchema is the example object the model has to fill in.
const ContactSchema = `{
  "name": "Full Name",
  "titles": ["Full job title 1", "Full job title 2"],
  "organization": "Full organization name",
  "phone_numbers": ["+880..."],
  "email": "email@example.com",
  "address": "Full address with postal code and country",
  "url": "https://website.com"
}`

const extractSystem = "You are a professional document parser. Extract all visible information " +
	"from business card images into structured JSON. Preserve full titles, org names, addresses. " +
	"For any phone number detected, include the country code by assuming it's a real-world number. " +
	"Support text in multiple languages including Bengali/Bangla, English, and other languages. " +
	"Always return valid JSON regardless of the language of the text."

const extractRules = `⚠️ Instructions:
- Include full strings exactly as shown in the image. Don't shorten or summarize anything.
- If a field spans multiple lines (e.g., title, address), merge them into one full string.
- If a field is missing or unreadable, omit it completely.
- For phone numbers, detect and add the appropriate country code if missing.
- Support text in multiple languages including Bengali/Bangla, English, and others.`

const classifySystem = "You are an expert image content classifier. Determine whether the uploaded image clearly shows a business card. " +
	"Respond ONLY with 'yes' or 'no'. Do NOT explain anything."

const classifyText = "Does this image clearly contain a business card (not a person, selfie, scenery, or unrelated object)?"

// Extraction builds the transcription request for a business card image.
func Extraction(img types.EncodedImage) Payload {
	text := "Please extract the following fields from this business card image.\n" +
		"Return a raw, valid JSON object — do NOT wrap it in markdown or backticks.\n" +
		"Support text in any language including Bengali/Bangla.\n\n" +
		ContactSchema + "\n\n" + extractRules

	return Payload{
		Name:        EXTRACT,
		System:      extractSystem,
		Text:        text,
		Image:       img,
		Temperature: 0.2,
	}
}

// Classification builds the yes/no "is this a business card" request.
func Classification(img types.EncodedImage) Payload {
	return Payload{
		Name:        CLASSIFY,
		System:      classifySystem,
		Text:        classifyText,
		Image:       img,
		Temperature: 0,
	}
}
