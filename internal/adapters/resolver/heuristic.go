package resolver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mikey/contact-email-guesser/internal/core"
	"go.uber.org/zap"
)

// SourceHeuristic identifies domains derived from the company name alone
const SourceHeuristic = "heuristic"

const heuristicConfidence = 0.3

// legalSuffixes are trailing words dropped from company names
var legalSuffixes = map[string]struct{}{
	"inc": {}, "incorporated": {}, "llc": {}, "llp": {}, "ltd": {}, "limited": {},
	"corp": {}, "corporation": {}, "co": {}, "company": {}, "gmbh": {}, "ag": {},
	"sa": {}, "sarl": {}, "bv": {}, "nv": {}, "plc": {}, "pty": {}, "oy": {}, "ab": {},
	"group": {}, "holdings": {},
}

// HeuristicResolver guesses "<company>.com" from the company name
type HeuristicResolver struct {
	logger *zap.Logger
}

// NewHeuristicResolver creates a new heuristic resolver
func NewHeuristicResolver(logger *zap.Logger) *HeuristicResolver {
	return &HeuristicResolver{logger: logger}
}

// ResolveDomain strips legal suffixes and punctuation and appends .com
func (r *HeuristicResolver) ResolveDomain(_ context.Context, companyName string) (*core.DomainResolution, error) {
	words := strings.FieldsFunc(strings.ToLower(companyName), func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '\t' || r == '&' || r == '/'
	})
	for len(words) > 1 {
		if _, ok := legalSuffixes[words[len(words)-1]]; !ok {
			break
		}
		words = words[:len(words)-1]
	}

	var b strings.Builder
	for _, w := range words {
		for i := 0; i < len(w); i++ {
			if c := w[i]; (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
				b.WriteByte(c)
			}
		}
	}
	if b.Len() == 0 {
		return nil, fmt.Errorf("no usable characters in company name %q", companyName)
	}

	domain := b.String() + ".com"
	r.logger.Debug("Derived domain from company name",
		zap.String("company", companyName),
		zap.String("domain", domain))

	return &core.DomainResolution{
		Domain:      domain,
		Confidence:  heuristicConfidence,
		Explanation: "derived from company name",
		Source:      SourceHeuristic,
	}, nil
}
