package service

import (
	"errors"
	"fmt"
	"io"

	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/strength"
)

// Text shown in place of a password when the selection cannot produce one.
const (
	NoOptionsText      = "Select options!"
	TooRestrictiveText = "Too restrictive!"
)

// ErrTooMany is returned when a request asks for more passwords than allowed.
var ErrTooMany = errors.New("too many passwords requested")

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	generator     *crypto.Generator
	defaultLength int
	maxCount      int
}

// GeneratorConfig tunes request defaults. Zero values select built-in defaults.
type GeneratorConfig struct {
	DefaultLength int
	MaxCount      int
	// Random overrides the crypto/rand source.
	Random io.Reader
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(cfg GeneratorConfig) *GeneratorService {
	if cfg.DefaultLength == 0 {
		cfg.DefaultLength = crypto.DefaultLength
	}
	if cfg.MaxCount == 0 {
		cfg.MaxCount = 20
	}
	return &GeneratorService{
		generator:     crypto.NewGenerator(cfg.Random),
		defaultLength: cfg.DefaultLength,
		maxCount:      cfg.MaxCount,
	}
}

// Options converts a request into generator options, applying defaults.
func (s *GeneratorService) Options(req model.GenerateRequest) crypto.GeneratorOptions {
	opts := crypto.GeneratorOptions{
		Length:           req.Length,
		Uppercase:        boolOrDefault(req.Uppercase, true),
		Lowercase:        boolOrDefault(req.Lowercase, true),
		Numbers:          boolOrDefault(req.Numbers, true),
		Symbols:          boolOrDefault(req.Symbols, true),
		ExcludeAmbiguous: req.ExcludeAmbiguous,
		Exclude:          req.Exclude,
	}

	if opts.Length == 0 {
		opts.Length = s.defaultLength
	}

	return opts
}

// Generate produces one or more rated passwords based on the given request.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	count := req.Count
	if count <= 0 {
		count = 1
	}
	if count > s.maxCount {
		return model.GenerateResponse{}, fmt.Errorf("%w: %d (max %d)", ErrTooMany, count, s.maxCount)
	}

	opts := s.Options(req)
	passwords := make([]model.GeneratedPassword, 0, count)

	for i := 0; i < count; i++ {
		password, err := s.generator.Generate(opts)
		if err != nil {
			return model.GenerateResponse{}, err
		}
		passwords = append(passwords, model.GeneratedPassword{
			Password: password,
			Length:   len(password),
			Strength: s.Rate(password),
		})
	}

	return model.GenerateResponse{Passwords: passwords}, nil
}

// Rate returns the strength indicator for password. Sentinel text rates as Blank.
func (s *GeneratorService) Rate(password string) model.StrengthResponse {
	if IsSentinel(password) {
		return Blank()
	}
	return toStrengthResponse(strength.Evaluate(password))
}

// Blank is the strength indicator shown next to sentinel text.
func Blank() model.StrengthResponse {
	return toStrengthResponse(strength.Blank())
}

// DisplayText returns the sentinel shown instead of a password when err comes
// from a selection that cannot produce one.
func DisplayText(err error) (string, bool) {
	switch {
	case errors.Is(err, crypto.ErrNoCharacterTypes):
		return NoOptionsText, true
	case errors.Is(err, crypto.ErrTooRestrictive):
		return TooRestrictiveText, true
	default:
		return "", false
	}
}

// IsSentinel reports whether s is display text rather than a password.
func IsSentinel(s string) bool {
	return s == NoOptionsText || s == TooRestrictiveText
}

func toStrengthResponse(r strength.Report) model.StrengthResponse {
	return model.StrengthResponse{
		Score:       r.Score,
		Label:       r.Label,
		Color:       r.Color,
		TextColor:   r.TextColor(),
		EntropyBits: r.EntropyBits,
		GuessScore:  r.GuessScore,
		CrackTime:   r.CrackTime,
	}
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
