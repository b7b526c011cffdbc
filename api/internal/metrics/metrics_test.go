package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418"))
	assert.Equal(t, before+1, after)
}

func TestMetricsCollapsesUnmatchedPaths(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, UnmatchedPath, "404"))
	for _, p := range []string{"/wp-login.php", "/.env", "/random/abc123"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		assert.Equal(t, http.StatusNotFound, rec.Code, p)
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, UnmatchedPath, "404"))
	assert.Equal(t, before+3, after)
}

func TestMetricsWithoutRouterContext(t *testing.T) {
	h := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, UnmatchedPath, "200"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/anything", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodPost, UnmatchedPath, "200")))
}

func TestRecordCounters(t *testing.T) {
	c0 := testutil.ToFloat64(classifications.WithLabelValues("test", "is_card"))
	e0 := testutil.ToFloat64(extractions.WithLabelValues("test", ExtractionPlaceholder))

	RecordClassification("test", "is_card")
	RecordExtraction("test", ExtractionPlaceholder)

	assert.Equal(t, c0+1, testutil.ToFloat64(classifications.WithLabelValues("test", "is_card")))
	assert.Equal(t, e0+1, testutil.ToFloat64(extractions.WithLabelValues("test", ExtractionPlaceholder)))
}
