package pattern

import "slices"

// MaxAlternatives caps the number of runner-up addresses in a Result
const MaxAlternatives = 3

// Request is the input to Guess. First and Last are expected to be trimmed;
// Domain must be non-empty. CompanyName only feeds the search URL.
type Request struct {
	First       string
	Last        string
	Domain      string
	CompanyName string
	CompanySize CompanySize
	KnownEmails []KnownEmail
}

// Result is the ranked guess for one person
type Result struct {
	Best             EmailCandidate   `json:"best"`
	Alternatives     []EmailCandidate `json:"alternatives"`
	Profile          ProfileGuess     `json:"profile"`
	ProfileSearchURL string           `json:"profile_search_url"`
	Detected         *DetectedPattern `json:"detected,omitempty"`
}

// Clone returns a deep copy of the result
func (r Result) Clone() Result {
	out := r
	out.Alternatives = slices.Clone(r.Alternatives)
	if r.Detected != nil {
		d := *r.Detected
		d.Examples = slices.Clone(r.Detected.Examples)
		out.Detected = &d
	}
	return out
}

// Rank scores every candidate and sorts them by descending confidence.
// Equal scores keep template order.
func Rank(candidates []EmailCandidate, size CompanySize, detected *DetectedPattern) []EmailCandidate {
	scored := make([]EmailCandidate, len(candidates))
	for i, c := range candidates {
		c.Confidence = Score(c, size, detected)
		scored[i] = c
	}
	slices.SortStableFunc(scored, func(a, b EmailCandidate) int {
		return b.Confidence - a.Confidence
	})
	return scored
}

// Guess composes generation, detection, scoring and the profile heuristic
// into a single result. It never fails; empty name parts give a degenerate
// but well-formed result.
func Guess(req Request) Result {
	candidates := Generate(req.First, req.Last, req.Domain)

	var detected *DetectedPattern
	if len(req.KnownEmails) > 0 {
		detected = Detect(req.KnownEmails, req.Domain)
	}

	scored := Rank(candidates, req.CompanySize, detected)

	alternatives := scored[1:]
	if len(alternatives) > MaxAlternatives {
		alternatives = alternatives[:MaxAlternatives]
	}

	return Result{
		Best:             scored[0],
		Alternatives:     slices.Clone(alternatives),
		Profile:          BuildProfile(req.First, req.Last),
		ProfileSearchURL: BuildSearchURL(req.First, req.Last, req.CompanyName),
		Detected:         detected,
	}
}

// GuessContactEmail is Guess with positional arguments
func GuessContactEmail(first, last, domain, companyName string, size CompanySize, known []KnownEmail) Result {
	return Guess(Request{
		First:       first,
		Last:        last,
		Domain:      domain,
		CompanyName: companyName,
		CompanySize: size,
		KnownEmails: known,
	})
}
