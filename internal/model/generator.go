package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length           int    `json:"length"`
	Uppercase        *bool  `json:"uppercase"`
	Lowercase        *bool  `json:"lowercase"`
	Numbers          *bool  `json:"numbers"`
	Symbols          *bool  `json:"symbols"`
	ExcludeAmbiguous bool   `json:"exclude_ambiguous"`
	Exclude          string `json:"exclude,omitempty"`
	Count            int    `json:"count,omitempty"`
}

// GeneratedPassword is one password with its rating.
type GeneratedPassword struct {
	Password string           `json:"password"`
	Length   int              `json:"length"`
	Strength StrengthResponse `json:"strength"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Passwords []GeneratedPassword `json:"passwords"`
}

// First returns the first generated password, or the zero value.
func (r GenerateResponse) First() GeneratedPassword {
	if len(r.Passwords) == 0 {
		return GeneratedPassword{}
	}
	return r.Passwords[0]
}

// StrengthRequest asks for the rating of an existing password.
type StrengthRequest struct {
	Password string `json:"password"`
}

// StrengthResponse is the strength indicator for a password.
type StrengthResponse struct {
	Score       int     `json:"score"`
	Label       string  `json:"label"`
	Color       string  `json:"color"`
	TextColor   string  `json:"text_color"`
	EntropyBits float64 `json:"entropy_bits"`
	GuessScore  int     `json:"guess_score"`
	CrackTime   string  `json:"crack_time,omitempty"`
}
