package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"crlf normalized", "a\r\nb\rc", "a\nb\nc"},
		{"trailing whitespace trimmed", "a  \t\nb", "a\nb"},
		{"blank runs collapsed", "a\n\n\n\n\nb", "a\n\nb"},
		{"surrounding whitespace trimmed", "\n\n  hello  \n\n", "hello"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CleanText(tc.input))
		})
	}
}

func TestExtractText_PlainText(t *testing.T) {
	got, err := ExtractText([]byte("5 years of Go\r\nand PostgreSQL"), ContentTypeText)

	require.NoError(t, err)
	assert.Equal(t, "5 years of Go\nand PostgreSQL", got)
}

func TestExtractText_UnsupportedType(t *testing.T) {
	_, err := ExtractText([]byte("data"), "application/msword")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported content type")
}

func TestExtractText_MalformedPDF(t *testing.T) {
	_, err := ExtractText([]byte("not a pdf"), ContentTypePDF)

	require.Error(t, err)
}

func TestExtractText_EmptyPlainText(t *testing.T) {
	got, err := ExtractText(nil, ContentTypeText)

	require.NoError(t, err)
	assert.Empty(t, got)
}
