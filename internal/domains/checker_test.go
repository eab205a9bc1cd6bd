package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestChecker(t *testing.T) {
	c := NewChecker(DefaultPersonalProviders, zap.NewNop())

	tests := []struct {
		input string
		want  bool
	}{
		{"someone@gmail.com", true},
		{"Someone@GMail.COM", true},
		{"yahoo.com", true},
		{" Hotmail.com ", true},
		{"jane@acme.com", false},
		{"mail.gmail.com", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.IsPersonal(tt.input), "IsPersonal(%q)", tt.input)
	}
}

func TestChecker_Empty(t *testing.T) {
	c := NewChecker(nil, nil)
	assert.False(t, c.IsPersonal("someone@gmail.com"))
}
