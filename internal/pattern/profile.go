package pattern

import (
	"encoding/json"
	"net/url"
	"strings"
)

const (
	profileBaseURL = "https://www.linkedin.com/in/"
	searchBaseURL  = "https://www.linkedin.com/search/results/people/?keywords="

	// ProfileSource marks a profile URL derived from the name alone
	ProfileSource = "pattern"
)

// ProfileGuess is a probable profile URL. An empty URL means no guess could
// be made; it is serialised as null.
type ProfileGuess struct {
	URL        string
	Confidence int
	Source     string
}

type profileGuessJSON struct {
	URL        *string `json:"url"`
	Confidence int     `json:"confidence"`
	Source     string  `json:"source"`
}

// MarshalJSON renders an empty URL as null
func (p ProfileGuess) MarshalJSON() ([]byte, error) {
	out := profileGuessJSON{Confidence: p.Confidence, Source: p.Source}
	if p.URL != "" {
		out.URL = &p.URL
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler
func (p *ProfileGuess) UnmarshalJSON(data []byte) error {
	var in profileGuessJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = ProfileGuess{Confidence: in.Confidence, Source: in.Source}
	if in.URL != nil {
		p.URL = *in.URL
	}
	return nil
}

// BuildProfile guesses a profile URL of the form /in/first-last.
// Short names are common and get a lower confidence; long ones are
// distinctive and get a higher one. A five-letter last name is not short,
// so "John Smith" stays at the baseline.
func BuildProfile(first, last string) ProfileGuess {
	first, last = letters(first), letters(last)
	if first == "" || last == "" {
		return ProfileGuess{Confidence: 0, Source: ProfileSource}
	}

	confidence := 70
	switch {
	case len(first) <= 4 && len(last) < 5:
		confidence = 50
	case len(first) > 7 || len(last) > 8:
		confidence = 85
	}

	return ProfileGuess{
		URL:        profileBaseURL + first + "-" + last,
		Confidence: confidence,
		Source:     ProfileSource,
	}
}

// BuildSearchURL returns a people-search URL for the name and company.
// It is never empty and is the fallback whenever BuildProfile is unsure.
func BuildSearchURL(first, last, companyName string) string {
	var terms []string
	for _, s := range []string{first, last, companyName} {
		if s = strings.TrimSpace(s); s != "" {
			terms = append(terms, s)
		}
	}
	return searchBaseURL + escapeComponent(strings.Join(terms, " "))
}

// escapeComponent encodes like encodeURIComponent: spaces become %20
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// letters lower-cases s and keeps only ASCII letters
func letters(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= 'a' && c <= 'z' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
