package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vaultpass/passgen-go/internal/clipboard"
	"github.com/vaultpass/passgen-go/internal/crypto"
	"github.com/vaultpass/passgen-go/internal/model"
	"github.com/vaultpass/passgen-go/internal/service"
	"github.com/vaultpass/passgen-go/internal/strength"
)

const (
	maxCount           = 1000
	maxEntropyAttempts = 20
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen", "g"},
		Short:   "Generate one or more passwords",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd)
		},
	}

	f := cmd.Flags()
	f.IntP("length", "l", crypto.DefaultLength, fmt.Sprintf("password length (%d-%d)", crypto.MinLength, crypto.MaxLength))
	f.Bool("uppercase", true, "include uppercase letters (A-Z)")
	f.Bool("lowercase", true, "include lowercase letters (a-z)")
	f.Bool("numbers", true, "include digits (0-9)")
	f.Bool("symbols", true, "include symbols")
	f.Bool("exclude-ambiguous", false, "drop look-alike characters ("+crypto.AmbiguousChars+")")
	f.String("exclude", "", "additional characters to never use")
	f.IntP("count", "c", 1, "number of passwords to generate")
	f.Bool("copy", false, "copy the generated password(s) to the clipboard")
	f.String("seed", "", "derive randomness from this seed (reproducible, NOT secure)")
	f.Float64("min-entropy", 0, "regenerate until each password reaches this many bits of entropy")
	f.BoolP("quiet", "q", false, "print passwords only")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command) error {
	v := a.v
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	count := v.GetInt("count")
	if count < 1 || count > maxCount {
		return fmt.Errorf("count must be between 1 and %d", maxCount)
	}

	cfg := service.GeneratorConfig{MaxCount: maxCount}
	if seed := v.GetString("seed"); seed != "" {
		r, err := crypto.NewSeededReader(seed)
		if err != nil {
			return err
		}
		cfg.Random = r
		a.logger.Warn("using seeded randomness, passwords are reproducible by anyone with the seed")
	}
	svc := service.NewGeneratorService(cfg)

	req := model.GenerateRequest{
		Length:           v.GetInt("length"),
		Uppercase:        boolPtr(v.GetBool("uppercase")),
		Lowercase:        boolPtr(v.GetBool("lowercase")),
		Numbers:          boolPtr(v.GetBool("numbers")),
		Symbols:          boolPtr(v.GetBool("symbols")),
		ExcludeAmbiguous: v.GetBool("exclude-ambiguous"),
		Exclude:          v.GetString("exclude"),
	}
	if req.Length == 0 {
		return crypto.ErrLengthTooShort
	}

	minBits := v.GetFloat64("min-entropy")
	passwords, err := generateWithEntropy(svc, req, count, func(password string) error {
		return strength.CheckEntropy(password, minBits)
	})
	if err != nil {
		if text, ok := service.DisplayText(err); ok {
			fmt.Fprintln(errOut, text)
		}
		return err
	}

	quiet := v.GetBool("quiet")
	for _, p := range passwords {
		if quiet {
			fmt.Fprintln(out, p.Password)
			continue
		}
		writeGenerated(out, p)
	}

	if v.GetBool("copy") {
		a.copyPasswords(errOut, passwords, quiet)
	}

	return nil
}

// generateWithEntropy produces count passwords, redrawing each one up to
// maxEntropyAttempts times until accept passes.
func generateWithEntropy(svc *service.GeneratorService, req model.GenerateRequest, count int, accept func(string) error) ([]model.GeneratedPassword, error) {
	passwords := make([]model.GeneratedPassword, 0, count)
	attempts := 0

	for len(passwords) < count {
		resp, err := svc.Generate(req)
		if err != nil {
			return nil, err
		}

		p := resp.First()
		if err := accept(p.Password); err != nil {
			attempts++
			if attempts >= maxEntropyAttempts {
				return nil, fmt.Errorf("gave up after %d attempts: %w", attempts, err)
			}
			continue
		}
		passwords = append(passwords, p)
		attempts = 0
	}

	return passwords, nil
}

func (a *app) copyPasswords(errOut io.Writer, passwords []model.GeneratedPassword, quiet bool) {
	texts := make([]string, 0, len(passwords))
	for _, p := range passwords {
		if service.IsSentinel(p.Password) {
			continue
		}
		texts = append(texts, p.Password)
	}

	method, err := clipboard.New(errOut, a.logger).Copy(strings.Join(texts, "\n"))
	if err != nil {
		// Copy failures never fail the command; the password is already on screen.
		if errors.Is(err, clipboard.ErrCopyFailed) {
			fmt.Fprintln(errOut, "Failed to copy password. Please copy manually.")
			return
		}
		a.logger.Warn("copy skipped", "error", err)
		return
	}
	if !quiet {
		fmt.Fprintf(errOut, "Copied to clipboard (%s).\n", method)
	}
}

func writeGenerated(w io.Writer, p model.GeneratedPassword) {
	fmt.Fprintln(w, p.Password)
	writeStrength(w, p.Strength)
}

func writeStrength(w io.Writer, s model.StrengthResponse) {
	fmt.Fprintf(w, "  strength: %s (%d/100), %.0f bits of entropy", s.Label, s.Score, s.EntropyBits)
	if s.CrackTime != "" {
		fmt.Fprintf(w, ", cracked in %s", s.CrackTime)
	}
	fmt.Fprintln(w)
}

func boolPtr(b bool) *bool { return &b }
