package handle

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"cardscan/api/internal/ocr/types"
	"cardscan/api/internal/vcard"
)

// Scanner turns a card image into a contact record.
type Scanner interface {
	Scan(ctx context.Context, img types.EncodedImage) (types.ContactRecord, error)
}

type Options struct {
	DefaultRegion  string
	MaxUploadBytes int64
}

type Handle struct {
	scanner Scanner
	opts    Options
	log     *zap.Logger
}

func New(scanner Scanner, opts Options, log *zap.Logger) *Handle {
	if opts.DefaultRegion == "" {
		opts.DefaultRegion = vcard.DefaultRegion
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handle{
		scanner: scanner,
		opts:    opts,
		log:     log,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// Preflight answers CORS preflight for the POST endpoints.
func (h *Handle) Preflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}

func (h *Handle) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
