package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "bare number", input: "704", want: 704},
		{name: "prefixed code", input: "sc-704", want: 704},
		{name: "upper prefixed code", input: "SC-12", want: 12},
		{name: "hash prefix", input: "#55", want: 55},
		{name: "surrounding spaces", input: "  42 ", want: 42},
		{name: "story url with query", input: "https://app.shortcut.com/org/story/9001?x=5", want: 9001},
		{name: "story url with slug", input: "https://app.shortcut.com/acme/story/123/fix-login-page", want: 123},
		{name: "digits in host", input: "https://app2.shortcut.com/org/story/77", want: 77},
		{name: "case insensitive path", input: "HTTPS://APP.SHORTCUT.COM/ORG/STORY/31", want: 31},
		{name: "epic url", input: "https://app.shortcut.com/org/epic/450/q3-roadmap", want: 450},
		{name: "story wins over epic", input: "https://app.shortcut.com/org/epic/1/story/2", want: 2},
		{name: "first digit run", input: "story 12 and 34", want: 12},
		{name: "zero", input: "0", want: 0},
		{name: "no digits", input: "sc-abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "url without id", input: "https://app.shortcut.com/org/stories", wantErr: true},
		{name: "overflow", input: "99999999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidIdentifier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_ErrorMentionsInput(t *testing.T) {
	t.Parallel()
	_, err := Parse("no-id-here")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"no-id-here"`)
}
