package pattern

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessContactEmail_Scenarios(t *testing.T) {
	janeDoe := []KnownEmail{{DisplayName: "Jane Doe", Email: "jane.doe@acme.com"}}

	tests := []struct {
		name   string
		domain string
		size   CompanySize
		known  []KnownEmail
		want   int
	}{
		{"no hint", "acme.com", SizeUnknown, nil, 40},
		{"large hint", "acme.com", Large, nil, 60},
		{"detected pattern", "acme.com", SizeUnknown, janeDoe, 70},
		{"large and detected", "acme.com", Large, janeDoe, 90},
		{"unnormalized domain", "www.Acme.COM", SizeUnknown, nil, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GuessContactEmail("John", "Smith", tt.domain, "Acme Corp", tt.size, tt.known)
			assert.Equal(t, "john.smith@acme.com", got.Best.Email)
			assert.Equal(t, FirstDotLast, got.Best.Template)
			assert.Equal(t, tt.want, got.Best.Confidence)
			assert.Len(t, got.Alternatives, MaxAlternatives)
			for _, alt := range got.Alternatives {
				assert.NotEqual(t, got.Best.Email, alt.Email)
				assert.True(t, strings.HasSuffix(alt.Email, "@acme.com"))
			}
		})
	}
}

func TestGuess_DetectedPatternExposed(t *testing.T) {
	got := Guess(Request{
		First:       "John",
		Last:        "Smith",
		Domain:      "acme.com",
		KnownEmails: []KnownEmail{{DisplayName: "Jane Doe", Email: "jane.doe@acme.com"}},
	})
	require.NotNil(t, got.Detected)
	assert.Equal(t, FirstDotLast, got.Detected.Template)
	assert.Equal(t, 100, got.Detected.Confidence)

	got = Guess(Request{First: "John", Last: "Smith", Domain: "acme.com"})
	assert.Nil(t, got.Detected)
}

func TestGuess_DetectionReordersCandidates(t *testing.T) {
	got := Guess(Request{
		First:  "John",
		Last:   "Smith",
		Domain: "acme.com",
		KnownEmails: []KnownEmail{
			{DisplayName: "Jane Doe", Email: "jdoe@acme.com"},
			{DisplayName: "Bob Roe", Email: "broe@acme.com"},
		},
	})
	assert.Equal(t, "john.smith@acme.com", got.Best.Email)
	assert.Equal(t, 40, got.Best.Confidence)
	// flast: 10 + 30 ties first.last at 40 and loses on template order
	require.NotEmpty(t, got.Alternatives)
	assert.Equal(t, "jsmith@acme.com", got.Alternatives[0].Email)
	assert.Equal(t, 40, got.Alternatives[0].Confidence)
}

func TestGuess_SmallCompany(t *testing.T) {
	got := Guess(Request{First: "John", Last: "Smith", Domain: "acme.com", CompanySize: Small})
	// first.last 40, firstlast 25+15=40, first 15+15=30
	assert.Equal(t, "john.smith@acme.com", got.Best.Email)
	require.Len(t, got.Alternatives, 3)
	assert.Equal(t, "johnsmith@acme.com", got.Alternatives[0].Email)
	assert.Equal(t, 40, got.Alternatives[0].Confidence)
	assert.Equal(t, "john@acme.com", got.Alternatives[1].Email)
	assert.Equal(t, 30, got.Alternatives[1].Confidence)
}

func TestRank_SortedAndStable(t *testing.T) {
	for _, size := range []CompanySize{SizeUnknown, Small, Medium, Large} {
		ranked := Rank(Generate("Ann", "Lee", "acme.com"), size, &DetectedPattern{Template: FirstLast, Confidence: 50})
		require.Len(t, ranked, 7)
		for i := 1; i < len(ranked); i++ {
			prev, cur := ranked[i-1], ranked[i]
			assert.GreaterOrEqual(t, prev.Confidence, cur.Confidence)
			if prev.Confidence == cur.Confidence {
				assert.Less(t, int(prev.Template), int(cur.Template))
			}
		}
	}
}

func TestGuess_ProfileAndSearch(t *testing.T) {
	got := Guess(Request{First: "John", Last: "Smith", Domain: "acme.com", CompanyName: "Acme Corp"})
	assert.Equal(t, "https://www.linkedin.com/in/john-smith", got.Profile.URL)
	assert.Equal(t, 70, got.Profile.Confidence)
	assert.Contains(t, got.ProfileSearchURL, "John%20Smith%20Acme%20Corp")
}

func TestGuess_DegenerateInput(t *testing.T) {
	got := Guess(Request{First: "", Last: "", Domain: "acme.com"})
	assert.Equal(t, ".@acme.com", got.Best.Email)
	assert.Empty(t, got.Profile.URL)
	assert.Equal(t, 0, got.Profile.Confidence)
	assert.NotEmpty(t, got.ProfileSearchURL)
}

func TestResult_Clone(t *testing.T) {
	orig := GuessContactEmail("John", "Smith", "acme.com", "", SizeUnknown,
		[]KnownEmail{{DisplayName: "Jane Doe", Email: "jane.doe@acme.com"}})
	clone := orig.Clone()
	require.Empty(t, cmp.Diff(orig, clone))

	clone.Alternatives[0].Email = "x@acme.com"
	clone.Detected.Examples[0] = "x@acme.com"
	clone.Detected.Confidence = 1
	assert.NotEqual(t, "x@acme.com", orig.Alternatives[0].Email)
	assert.Equal(t, "jane.doe@acme.com", orig.Detected.Examples[0])
	assert.Equal(t, 100, orig.Detected.Confidence)
}

func TestGuess_FullResult(t *testing.T) {
	got := GuessContactEmail("Ana", "Li", "initech.io", "Initech", Small,
		[]KnownEmail{{DisplayName: "Bob Stone", Email: "bob@initech.io"}})

	want := Result{
		Best: EmailCandidate{Email: "ana@initech.io", Template: FirstOnly, Confidence: 60},
		Alternatives: []EmailCandidate{
			{Email: "ana.li@initech.io", Template: FirstDotLast, Confidence: 40},
			{Email: "anali@initech.io", Template: FirstLast, Confidence: 40},
			{Email: "ali@initech.io", Template: FirstInitialLast, Confidence: 10},
		},
		Profile: ProfileGuess{
			URL:        "https://www.linkedin.com/in/ana-li",
			Confidence: 50,
			Source:     ProfileSource,
		},
		ProfileSearchURL: "https://www.linkedin.com/search/results/people/?keywords=Ana%20Li%20Initech",
		Detected: &DetectedPattern{
			Template:   FirstOnly,
			Confidence: 100,
			Examples:   []string{"bob@initech.io"},
		},
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GuessContactEmail() mismatch (-want +got):\n%s", diff)
	}
}
