package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// pageView is the state of the generator form after a request.
type pageView struct {
	Password         string
	Strength         model.StrengthResponse
	Length           int
	MinLength        int
	MaxLength        int
	Uppercase        bool
	Lowercase        bool
	Numbers          bool
	Symbols          bool
	ExcludeAmbiguous bool
}

// PageHandler serves the HTML generator form.
type PageHandler struct {
	service *service.GeneratorService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(svc *service.GeneratorService) *PageHandler {
	return &PageHandler{service: svc}
}

// HandleIndex handles GET / requests, rendering the form with a fresh
// password for the default options.
func (h *PageHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, model.GenerateRequest{})
}

// HandleSubmit handles POST / form submissions.
func (h *PageHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	length, err := strconv.Atoi(r.PostFormValue("length"))
	if err != nil {
		length = 0
	}
	length = max(min(length, crypto.MaxLength), 0)

	// Unchecked boxes are absent from the form.
	checked := func(name string) *bool {
		v := r.PostFormValue(name) != ""
		return &v
	}

	h.render(w, model.GenerateRequest{
		Length:           length,
		Uppercase:        checked("uppercase"),
		Lowercase:        checked("lowercase"),
		Numbers:          checked("numbers"),
		Symbols:          checked("symbols"),
		ExcludeAmbiguous: r.PostFormValue("exclude_ambiguous") != "",
	})
}

func (h *PageHandler) render(w http.ResponseWriter, req model.GenerateRequest) {
	opts := h.service.Options(req)
	view := pageView{
		Length:           opts.Length,
		MinLength:        crypto.MinLength,
		MaxLength:        crypto.MaxLength,
		Uppercase:        opts.Uppercase,
		Lowercase:        opts.Lowercase,
		Numbers:          opts.Numbers,
		Symbols:          opts.Symbols,
		ExcludeAmbiguous: opts.ExcludeAmbiguous,
	}

	resp, err := h.service.Generate(req)
	switch {
	case err == nil:
		first := resp.First()
		view.Password = first.Password
		view.Strength = first.Strength
	default:
		text, ok := service.DisplayText(err)
		if !ok {
			slog.Error("generating password for page", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		view.Password = text
		view.Strength = service.Blank()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, view); err != nil {
		slog.Error("rendering page", "error", err)
	}
}
