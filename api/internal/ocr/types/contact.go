package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrNameRequired is returned by Validate when the record has no name.
var ErrNameRequired = errors.New("Name is required to generate vCard")

const (
	PlaceholderName         = "Unable to parse name"
	PlaceholderOrganization = "Unable to parse organization"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ContactRecord is the structured content of a business card.
// Empty strings mean the field is absent.
type ContactRecord struct {
	Name         string     `json:"name,omitempty" validate:"required"`
	Titles       StringList `json:"titles"`
	Organization string     `json:"organization,omitempty"`
	PhoneNumbers StringList `json:"phone_numbers"` // raw, before E.164 normalisation
	Email        string     `json:"email,omitempty"`
	Address      string     `json:"address,omitempty"`
	URL          string     `json:"url,omitempty"`
}

// PlaceholderRecord is returned when the model answer cannot be decoded.
func PlaceholderRecord() ContactRecord {
	return ContactRecord{
		Name:         PlaceholderName,
		Titles:       StringList{},
		Organization: PlaceholderOrganization,
		PhoneNumbers: StringList{},
	}
}

// Validate checks the fields required before a vCard can be rendered.
func (c ContactRecord) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.StructField() == "Name" {
					return ErrNameRequired
				}
			}
		}
		return err
	}
	return nil
}

// StringList decodes an array, a single value or null. Numeric items, which models
// sometimes emit for phone numbers, are kept as their literal digits.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case nil:
		*l = StringList{}
	case []any:
		out := make(StringList, 0, len(v))
		for _, item := range v {
			switch it := item.(type) {
			case nil:
			case string:
				out = append(out, it)
			case json.Number:
				out = append(out, it.String())
			default:
				return fmt.Errorf("string list: unexpected item %T", item)
			}
		}
		*l = out
	case string:
		if strings.TrimSpace(v) == "" {
			*l = StringList{}
			return nil
		}
		*l = StringList{v}
	case json.Number:
		*l = StringList{v.String()}
	default:
		return fmt.Errorf("string list: unexpected %T", raw)
	}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}
