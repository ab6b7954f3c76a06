// Package strength rates passwords with a length and character-variety
// heuristic, supplemented by entropy and guessability estimates.
package strength

import (
	"fmt"

	zxcvbn "github.com/ccojocar/zxcvbn-go"
	passwordvalidator "github.com/wagslane/go-password-validator"
)

const (
	MaxScore = 100

	// TrackColor is the bar color shown when there is nothing to rate.
	TrackColor = "#202225"
	// MutedTextColor is the label color paired with TrackColor.
	MutedTextColor = "#707070"
)

// Tier is a qualitative band of the 0-100 score.
type Tier int

const (
	VeryWeak Tier = iota
	Weak
	Medium
	Strong
	VeryStrong
)

var tierLabels = [...]string{"Very Weak", "Weak", "Medium", "Strong", "Very Strong"}
var tierColors = [...]string{"#d32f2f", "#fd7e14", "#ffc107", "#4CAF50", "#28a745"}

func (t Tier) String() string {
	if t < VeryWeak || t > VeryStrong {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierLabels[t]
}

// Color returns the bar color for the tier.
func (t Tier) Color() string {
	if t < VeryWeak || t > VeryStrong {
		return TrackColor
	}
	return tierColors[t]
}

// TierFor maps a score to its tier.
func TierFor(score int) Tier {
	switch {
	case score >= 90:
		return VeryStrong
	case score >= 75:
		return Strong
	case score >= 50:
		return Medium
	case score >= 25:
		return Weak
	default:
		return VeryWeak
	}
}

// Score rates password on a 0-100 scale from its length and the character
// classes it contains.
func Score(password string) int {
	if password == "" {
		return 0
	}

	score := 0
	n := len([]rune(password))

	if n >= 8 {
		score += 25
	}
	if n >= 12 {
		score += 25
	}
	if n >= 16 {
		score += 15
	}

	var hasUpper, hasLower, hasDigit, hasOther bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
	}

	if hasUpper {
		score += 10
	}
	if hasLower {
		score += 10
	}
	if hasDigit {
		score += 10
	}
	if hasOther {
		score += 15
	}

	return min(score, MaxScore)
}

// Report is the full rating of a single password.
type Report struct {
	Score       int
	Tier        Tier
	Label       string
	Color       string
	EntropyBits float64
	// GuessScore is the zxcvbn 0-4 guessability score.
	GuessScore int
	CrackTime  string
}

// TextColor is the color the label is rendered in.
func (r Report) TextColor() string {
	if r.Color == TrackColor {
		return MutedTextColor
	}
	return r.Color
}

// Blank is the report shown when no password was produced.
func Blank() Report {
	return Report{Tier: VeryWeak, Color: TrackColor}
}

// Evaluate rates password. An empty password yields Blank.
func Evaluate(password string) Report {
	if password == "" {
		return Blank()
	}

	score := Score(password)
	tier := TierFor(score)
	guess := zxcvbn.PasswordStrength(password, nil)

	return Report{
		Score:       score,
		Tier:        tier,
		Label:       tier.String(),
		Color:       tier.Color(),
		EntropyBits: passwordvalidator.GetEntropy(password),
		GuessScore:  guess.Score,
		CrackTime:   guess.CrackTimeDisplay,
	}
}

// CheckEntropy returns an error describing how to strengthen password when its
// estimated entropy is below minBits.
func CheckEntropy(password string, minBits float64) error {
	if minBits <= 0 {
		return nil
	}
	if err := passwordvalidator.Validate(password, minBits); err != nil {
		return fmt.Errorf("entropy below %.0f bits: %w", minBits, err)
	}
	return nil
}
