package validation

import (
	"strings"
	"testing"

	"devconnect/models"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		text string
		want Errors
	}{
		{"Two Chars", "hi", Errors{}},
		{"Max Length", strings.Repeat("x", 300), Errors{}},
		{"One Char", "h", Errors{"text": "Minimum of words should be from 2 to 300"}},
		{"Too Long", strings.Repeat("x", 301), Errors{"text": "Minimum of words should be from 2 to 300"}},
		{"Empty", "", Errors{"text": "Text field is empty"}},
		{"Blank", "   ", Errors{"text": "Text field is empty"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs, ok := Text(models.TextRequest{Text: tt.text})
			assert.Equal(t, tt.want, errs)
			assert.Equal(t, len(tt.want) == 0, ok)
		})
	}
}
