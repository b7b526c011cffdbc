package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardscan/api/internal/ocr/types"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func runCmdStreams(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// fakeOpenAI answers the classification call with "yes" and every later call with extracted.
func fakeOpenAI(t *testing.T, extracted string) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := "yes"
		if calls.Add(1) > 1 {
			content = extracted
		}
		resp := map[string]any{
			"id":     "x",
			"object": "chat.completion",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("LLM_PROVIDER", "gpt")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", srv.URL)
	t.Setenv("PHONE_DEFAULT_REGION", "BD")
}

func writeCardImage(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 4, 4))))
	p := filepath.Join(t.TempDir(), "card.png")
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o644))
	return p
}

func writeContact(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "contact.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestVCFToStdout(t *testing.T) {
	t.Setenv("PHONE_DEFAULT_REGION", "")
	p := writeContact(t, `{"name":"Jane Roe","phone_numbers":["01812345678"],"email":"jane@example.com"}`)

	out, err := runCmd(t, "vcf", p)

	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCARD\nVERSION:3.0\nN:Roe;Jane;;;\nFN:Jane Roe\nTEL;TYPE=CELL:+8801812345678\nEMAIL:jane@example.com\nEND:VCARD", out)
}

func TestVCFRegionFlag(t *testing.T) {
	p := writeContact(t, `{"name":"Al","phone_numbers":["650-253-0000"]}`)

	out, err := runCmd(t, "--region", "us", "vcf", p)

	require.NoError(t, err)
	assert.Contains(t, out, "TEL;TYPE=CELL:+16502530000")
}

func TestVCFToDirectory(t *testing.T) {
	p := writeContact(t, `{"name":"Jane Roe"}`)
	dir := t.TempDir()

	out, err := runCmd(t, "vcf", p, "-o", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "Jane_Roe.vcf")
	b, err := os.ReadFile(filepath.Join(dir, "Jane_Roe.vcf"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "FN:Jane Roe")
}

func TestVCFRequiresName(t *testing.T) {
	p := writeContact(t, `{"email":"x@y.z"}`)

	_, err := runCmd(t, "vcf", p)

	assert.ErrorIs(t, err, types.ErrNameRequired)
}

func TestExtractRejectsNonImage(t *testing.T) {
	p := writeContact(t, `{"name":"not an image"}`)

	_, err := runCmd(t, "extract", p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "contact.json")
}

func TestExtractRequiresArg(t *testing.T) {
	_, err := runCmd(t, "extract")
	assert.Error(t, err)
}

func TestExtractPrintsJSONAndWritesVCF(t *testing.T) {
	fakeOpenAI(t, `{"name":"Jane Roe","organization":"Acme","phone_numbers":["01812345678"]}`)
	img := writeCardImage(t)
	dir := t.TempDir()

	stdout, stderr, err := runCmdStreams(t, "extract", img, "-o", dir)

	require.NoError(t, err)
	var rec types.ContactRecord
	require.NoError(t, json.Unmarshal([]byte(stdout), &rec))
	assert.Equal(t, "Jane Roe", rec.Name)
	assert.Equal(t, "Acme", rec.Organization)
	assert.Contains(t, stderr, "Jane_Roe.vcf")

	b, err := os.ReadFile(filepath.Join(dir, "Jane_Roe.vcf"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "TEL;TYPE=CELL:+8801812345678")
}

func TestExtractWithoutNameStillPrintsJSON(t *testing.T) {
	fakeOpenAI(t, `{"organization":"Acme"}`)
	img := writeCardImage(t)
	dir := t.TempDir()

	stdout, stderr, err := runCmdStreams(t, "extract", img, "-o", dir)

	require.NoError(t, err)
	assert.Contains(t, stdout, `"organization": "Acme"`)
	assert.Contains(t, stderr, "vCard not written")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
