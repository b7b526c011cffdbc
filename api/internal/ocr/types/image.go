package types

import "encoding/base64"

// EncodedImage is an image ready to be sent to a model: normalised bytes plus their MIME type.
type EncodedImage struct {
	MIME string
	Data []byte
}

func (i EncodedImage) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURL renders the image as data:<mime>;base64,<payload>.
func (i EncodedImage) DataURL() string {
	return "data:" + i.MIME + ";base64," + i.Base64()
}
