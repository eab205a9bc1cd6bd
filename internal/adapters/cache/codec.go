package cache

import (
	"encoding/json"
	"fmt"

	"github.com/mikey/contact-email-guesser/internal/pattern"
)

func encodeResult(result *pattern.Result) (string, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode guess result: %w", err)
	}
	return string(data), nil
}

func decodeResult(data string) (*pattern.Result, error) {
	var result pattern.Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, fmt.Errorf("failed to decode guess result: %w", err)
	}
	return &result, nil
}
