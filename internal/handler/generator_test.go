package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/middleware"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
	"github.com/vaultpass/passgen-go/internal/strength"
)

func newTestGeneratorHandler() *GeneratorHandler {
	return NewGeneratorHandler(service.NewGeneratorService(service.GeneratorConfig{MaxCount: 3}))
}

func postJSON(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestHandleGenerate(t *testing.T) {
	h := newTestGeneratorHandler()
	rec := postJSON(t, h.HandleGenerate, `{"length": 20, "symbols": false, "count": 2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp model.GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Passwords, 2)
	for _, p := range resp.Passwords {
		assert.Len(t, p.Password, 20)
		assert.Equal(t, strength.Score(p.Password), p.Strength.Score)
		assert.NotEmpty(t, p.Strength.Label)
	}
}

func TestHandleGenerateWithoutBody(t *testing.T) {
	h := newTestGeneratorHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", nil)
	rec := httptest.NewRecorder()
	h.HandleGenerate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.GenerateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.First().Password, 16)
}

func TestHandleGenerateErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantDisplay string
	}{
		{"malformed json", `{"length":`, http.StatusBadRequest, ""},
		{"length too long", `{"length": 500}`, http.StatusBadRequest, ""},
		{"too many", `{"count": 4}`, http.StatusBadRequest, ""},
		{
			"no options",
			`{"uppercase": false, "lowercase": false, "numbers": false, "symbols": false}`,
			http.StatusUnprocessableEntity,
			service.NoOptionsText,
		},
		{
			"too restrictive",
			`{"uppercase": false, "lowercase": false, "symbols": false, "exclude_ambiguous": true, "exclude": "23456789"}`,
			http.StatusUnprocessableEntity,
			service.TooRestrictiveText,
		},
	}

	h := newTestGeneratorHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, h.HandleGenerate, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, tt.wantDisplay, body["display"])
		})
	}
}

func TestHandleGenerateBodyTooLarge(t *testing.T) {
	h := newTestGeneratorHandler()
	body := `{"exclude": "` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec := postJSON(t, h.HandleGenerate, body)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandleStrength(t *testing.T) {
	h := newTestGeneratorHandler()

	rec := postJSON(t, h.HandleStrength, `{"password": "aB3$efghijklmnop"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.StrengthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 100, resp.Score)
	assert.Equal(t, "Very Strong", resp.Label)
	assert.Equal(t, "#28a745", resp.Color)

	rec = postJSON(t, h.HandleStrength, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStrengthSentinelIsBlank(t *testing.T) {
	h := newTestGeneratorHandler()

	for _, text := range []string{service.NoOptionsText, service.TooRestrictiveText} {
		body, err := json.Marshal(model.StrengthRequest{Password: text})
		require.NoError(t, err)

		rec := postJSON(t, h.HandleStrength, string(body))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp model.StrengthResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, 0, resp.Score, text)
		assert.Empty(t, resp.Label, text)
		assert.Equal(t, strength.TrackColor, resp.Color, text)
		assert.Equal(t, strength.MutedTextColor, resp.TextColor, text)
	}
}

func TestHandleGenerateLogsClient(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	const secret = "s3cret"
	token, err := crypto.GenerateToken("ci-runner", secret, time.Hour)
	require.NoError(t, err)

	h := newTestGeneratorHandler()
	protected := middleware.JWTAuth(secret)(http.HandlerFunc(h.HandleGenerate))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(`{"count": 2}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "client=ci-runner")
	assert.Contains(t, buf.String(), "count=2")
}

func TestPageIndex(t *testing.T) {
	h := NewPageHandler(service.NewGeneratorService(service.GeneratorConfig{}))
	rec := httptest.NewRecorder()
	h.HandleIndex(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="generated-password"`)
	assert.Contains(t, body, `id="copy-password-btn"`)
	assert.Contains(t, body, `<span id="length-value">16</span>`)
	assert.Contains(t, body, "Very Strong")
	assert.NotContains(t, body, service.NoOptionsText)
}

func TestPageSubmit(t *testing.T) {
	tests := []struct {
		name     string
		form     url.Values
		contains []string
		sentinel string
	}{
		{
			name:     "no boxes checked",
			form:     url.Values{"length": {"12"}},
			sentinel: service.NoOptionsText,
			contains: []string{strength.TrackColor, strength.MutedTextColor},
		},
		{
			name:     "lowercase only",
			form:     url.Values{"length": {"8"}, "lowercase": {"on"}},
			contains: []string{`<span id="length-value">8</span>`, "Weak"},
		},
	}

	h := NewPageHandler(service.NewGeneratorService(service.GeneratorConfig{}))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			h.HandleSubmit(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
			if tt.sentinel != "" {
				assert.Contains(t, body, `value="`+tt.sentinel+`"`)
			}
		})
	}
}
