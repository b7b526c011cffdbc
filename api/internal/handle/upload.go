package handle

import (
	"errors"
	"io"
	"maps"
	"mime"
	"mime/multipart"
	"net/http"
	"slices"
	"strings"

	"go.uber.org/zap"

	"cardscan/api/internal/ocr"
	"cardscan/api/internal/util"
)

const (
	msgNotImage     = "Please upload a valid image file (JPG, PNG, etc.)"
	msgNoImage      = "No image data found"
	msgInvalidImage = "Invalid image format"
)

var (
	errNotImage = errors.New(msgNotImage)
	errNoImage  = errors.New(msgNoImage)
)

// Upload accepts a card photo and answers with the extracted contact record.
//
// Every outcome, including errors, is sent with status 200 and a JSON body;
// the web client reads the "error" key rather than the status code.
func (h *Handle) Upload(w http.ResponseWriter, r *http.Request) {
	data, err := h.readImage(w, r)
	if err != nil {
		if errors.Is(err, errNotImage) || errors.Is(err, errNoImage) {
			writeError(w, http.StatusOK, err.Error())
			return
		}
		h.log.Warn("upload read failed", zap.Error(err))
		writeError(w, http.StatusOK, "Error processing image: "+err.Error())
		return
	}

	img, err := util.EncodeImage(data)
	if err != nil {
		h.log.Info("upload rejected", zap.Error(err), zap.Int("bytes", len(data)))
		writeError(w, http.StatusOK, msgInvalidImage)
		return
	}

	rec, err := h.scanner.Scan(r.Context(), img)
	if err != nil {
		switch ocr.KindOf(err) {
		case ocr.KindValidation:
			writeError(w, http.StatusOK, err.Error())
		case ocr.KindExtraction:
			h.log.Error("extraction failed", zap.Error(err))
			writeError(w, http.StatusOK, err.Error())
		default:
			h.log.Error("scan failed", zap.Error(err))
			writeError(w, http.StatusOK, "Error processing image: "+err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// readImage takes the multipart field "file" (or, when that field is absent, the
// first image part by field name) or, for image/* requests, the raw body.
func (h *Handle) readImage(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)

	ct := r.Header.Get("Content-Type")
	mt, _, _ := mime.ParseMediaType(ct)
	switch {
	case mt == "multipart/form-data":
		if err := r.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil {
			return nil, err
		}
		fh := pickImagePart(r.MultipartForm)
		if fh == nil {
			return nil, errNoImage
		}
		if !util.IsImageContentType(fh.Header.Get("Content-Type")) {
			return nil, errNotImage
		}
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	case util.IsImageContentType(ct):
		return io.ReadAll(r.Body)
	default:
		return nil, errNotImage
	}
}

func pickImagePart(form *multipart.Form) *multipart.FileHeader {
	if form == nil {
		return nil
	}
	if fhs := form.File["file"]; len(fhs) > 0 {
		return fhs[0]
	}
	for _, field := range slices.Sorted(maps.Keys(form.File)) {
		for _, fh := range form.File[field] {
			if strings.HasPrefix(strings.ToLower(fh.Header.Get("Content-Type")), "image/") {
				return fh
			}
		}
	}
	return nil
}
