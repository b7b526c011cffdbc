package ocr

import (
	"encoding/json"

	"cardscan/api/internal/ocr/types"
	"cardscan/api/internal/util"
)

// ParseExtractionResponse decodes the model answer into a contact record.
// A broken answer yields the placeholder record together with a KindExtractionParse
// error; callers log it and carry on with the placeholder.
func ParseExtractionResponse(raw string) (types.ContactRecord, error) {
	out := util.StripCodeFences(raw)

	var rec types.ContactRecord
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		return types.PlaceholderRecord(), &Error{Kind: KindExtractionParse, Message: "bad JSON from model", Err: err}
	}
	if rec.Titles == nil {
		rec.Titles = types.StringList{}
	}
	if rec.PhoneNumbers == nil {
		rec.PhoneNumbers = types.StringList{}
	}
	return rec, nil
}
