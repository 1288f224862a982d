package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text untouched",
			input: "buy milk",
			want:  "buy milk",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "html tags stripped, text kept",
			input: "<b>important</b> task",
			want:  "important task",
		},
		{
			name:  "script removed with content",
			input: `before<script>alert("xss")</script>after`,
			want:  "beforeafter",
		},
		{
			name:  "script with mixed case",
			input: `x<SCRIPT type="text/javascript">evil()</SCRIPT>y`,
			want:  "xy",
		},
		{
			name:  "multiline script removed",
			input: "a<script>\nevil()\n</script>b",
			want:  "ab",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  padded  ",
			want:  "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeText(tt.input))
		})
	}
}
