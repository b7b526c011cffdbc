package ocr

import "strings"

type Classification int

const (
	// Unknown means the classifier could not be asked; Scan treats it as a pass.
	Unknown Classification = iota
	IsCard
	NotCard
)

func (c Classification) String() string {
	switch c {
	case IsCard:
		return "is_card"
	case NotCard:
		return "not_card"
	default:
		return "unknown"
	}
}

// InterpretClassification maps the model's yes/no answer: anything that starts with
// "yes" (any case) is a card, everything else is not.
func InterpretClassification(answer string) Classification {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "yes") {
		return IsCard
	}
	return NotCard
}
