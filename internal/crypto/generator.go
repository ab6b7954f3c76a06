package crypto

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"strings"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:',.<>/?`~"

	// AmbiguousChars are visually confusable and dropped when ExcludeAmbiguous is set.
	AmbiguousChars = "Il1O0o"

	MinLength     = 1
	MaxLength     = 128
	DefaultLength = 16
)

var (
	ErrLengthTooShort   = errors.New("password length must be at least 1")
	ErrLengthTooLong    = errors.New("password length must be at most 128")
	ErrNoCharacterTypes = errors.New("at least one character type must be selected")
	ErrTooRestrictive   = errors.New("excluded characters leave nothing to generate from")
)

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length           int
	Uppercase        bool
	Lowercase        bool
	Numbers          bool
	Symbols          bool
	ExcludeAmbiguous bool
	// Exclude lists additional characters that must never appear.
	Exclude string
}

// DefaultOptions returns sensible defaults: 16 characters with all types enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:    DefaultLength,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// excluded returns the full set of characters filtered out by opts.
func (o GeneratorOptions) excluded() string {
	if o.ExcludeAmbiguous {
		return AmbiguousChars + o.Exclude
	}
	return o.Exclude
}

// Generator draws passwords from a random source.
type Generator struct {
	random io.Reader
}

// NewGenerator returns a Generator reading from random. A nil reader selects crypto/rand.
func NewGenerator(random io.Reader) *Generator {
	if random == nil {
		random = rand.Reader
	}
	return &Generator{random: random}
}

var defaultGenerator = NewGenerator(nil)

// Generate creates a random password with the default crypto/rand source.
func Generate(opts GeneratorOptions) (string, error) {
	return defaultGenerator.Generate(opts)
}

// Generate creates a random password based on the given options.
//
// Every selected class with at least one character left after exclusion is
// represented at least once. When Length is smaller than the number of such
// classes the result is a random subset of the guaranteed characters.
func (g *Generator) Generate(opts GeneratorOptions) (string, error) {
	if opts.Length < MinLength {
		return "", ErrLengthTooShort
	}
	if opts.Length > MaxLength {
		return "", ErrLengthTooLong
	}

	var pool string
	var requiredSets []string

	if opts.Uppercase {
		pool += uppercaseChars
		requiredSets = append(requiredSets, uppercaseChars)
	}
	if opts.Lowercase {
		pool += lowercaseChars
		requiredSets = append(requiredSets, lowercaseChars)
	}
	if opts.Numbers {
		pool += numberChars
		requiredSets = append(requiredSets, numberChars)
	}
	if opts.Symbols {
		pool += symbolChars
		requiredSets = append(requiredSets, symbolChars)
	}

	if len(requiredSets) == 0 {
		return "", ErrNoCharacterTypes
	}

	if excl := opts.excluded(); excl != "" {
		pool = removeChars(pool, excl)
		for i, set := range requiredSets {
			requiredSets[i] = removeChars(set, excl)
		}
	}

	if pool == "" {
		return "", ErrTooRestrictive
	}

	guaranteed := make([]byte, 0, len(requiredSets))
	for _, charset := range requiredSets {
		if charset == "" {
			continue
		}
		ch, err := g.randChar(charset)
		if err != nil {
			return "", err
		}
		guaranteed = append(guaranteed, ch)
	}

	if opts.Length < len(guaranteed) {
		if err := g.shuffle(guaranteed); err != nil {
			return "", err
		}
		return string(guaranteed[:opts.Length]), nil
	}

	result := make([]byte, opts.Length)
	copy(result, guaranteed)

	for i := len(guaranteed); i < opts.Length; i++ {
		ch, err := g.randChar(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := g.shuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

// randChar picks a uniformly random character from charset.
func (g *Generator) randChar(charset string) (byte, error) {
	n, err := rand.Int(g.random, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}

// shuffle performs an in-place Fisher-Yates shuffle.
func (g *Generator) shuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(g.random, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}

func removeChars(s, excluded string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(excluded, r) {
			return -1
		}
		return r
	}, s)
}
