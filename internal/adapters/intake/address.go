package intake

import (
	"mime"
	"net/mail"
	"strings"

	"go.uber.org/zap"
)

// addressHeaders are the headers whose addresses are confirmed
var addressHeaders = []string{"From", "To", "Cc", "Reply-To"}

var wordDecoder = &mime.WordDecoder{}

// collectAddresses returns the unique addresses in a message's address
// headers, in header order, with decoded display names
func collectAddresses(header mail.Header, logger *zap.Logger) []*mail.Address {
	seen := make(map[string]struct{})
	var out []*mail.Address

	for _, key := range addressHeaders {
		raw := header.Get(key)
		if raw == "" {
			continue
		}

		addrs, err := header.AddressList(key)
		if err != nil {
			logger.Debug("Falling back to lenient address parsing",
				zap.String("header", key),
				zap.Error(err))
			addrs = parseLenient(raw)
		}

		for _, a := range addrs {
			email := strings.ToLower(strings.TrimSpace(a.Address))
			if email == "" {
				continue
			}
			if _, dup := seen[email]; dup {
				continue
			}
			seen[email] = struct{}{}
			out = append(out, &mail.Address{Name: decodeEncodedHeader(a.Name), Address: email})
		}
	}

	return out
}

// parseLenient parses each comma-separated entry on its own, dropping the
// ones that still do not parse
func parseLenient(raw string) []*mail.Address {
	var out []*mail.Address
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if a, err := mail.ParseAddress(decodeEncodedHeader(part)); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// decodeEncodedHeader decodes RFC 2047 encoded words, returning the input
// unchanged when it cannot be decoded
func decodeEncodedHeader(s string) string {
	if !strings.Contains(s, "=?") {
		return s
	}
	decoded, err := wordDecoder.DecodeHeader(s)
	if err != nil {
		return s
	}
	return decoded
}
