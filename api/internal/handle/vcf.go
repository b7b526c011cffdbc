package handle

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"cardscan/api/internal/ocr/types"
	"cardscan/api/internal/vcard"
)

// GenerateVCF renders the posted contact record as a downloadable vCard.
func (h *Handle) GenerateVCF(w http.ResponseWriter, r *http.Request) {
	var rec types.ContactRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		h.log.Warn("generate-vcf: bad body", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := rec.Validate(); err != nil {
		if errors.Is(err, types.ErrNameRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	body := vcard.Serialize(rec, h.opts.DefaultRegion)
	filename := vcard.Filename(rec.Name)
	h.log.Debug("generated vcard", zap.String("filename", filename), zap.Int("bytes", len(body)))

	w.Header().Set("Content-Type", vcard.ContentType)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
