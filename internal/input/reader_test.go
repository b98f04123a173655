package input_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbckr/insight/internal/apperr"
	"github.com/tbckr/insight/internal/entity"
	"github.com/tbckr/insight/internal/input"
	"github.com/tbckr/insight/internal/testutil"
)

func TestRead_Basic(t *testing.T) {
	r := strings.NewReader("example.com\ngoogle.com\n")
	inputs, err := input.Read(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "google.com"}, inputs)
}

func TestRead_TrimsWhitespace(t *testing.T) {
	r := strings.NewReader("  example.com  \n\tgoogle.com\t\n")
	inputs, err := input.Read(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "google.com"}, inputs)
}

func TestRead_DropsEmptyLines(t *testing.T) {
	r := strings.NewReader("example.com\n\n\ngoogle.com\n")
	inputs, err := input.Read(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "google.com"}, inputs)
}

func TestRead_Empty(t *testing.T) {
	r := strings.NewReader("")
	inputs, err := input.Read(r)
	require.NoError(t, err)
	assert.Nil(t, inputs)
}

func TestRead_WhitespaceOnly(t *testing.T) {
	r := strings.NewReader("   \n\t\n  \n")
	inputs, err := input.Read(r)
	require.NoError(t, err)
	assert.Nil(t, inputs)
}

func TestRead_NoTrailingNewline(t *testing.T) {
	r := strings.NewReader("example.com")
	inputs, err := input.Read(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, inputs)
}

func TestRead_DropsComments(t *testing.T) {
	r := strings.NewReader("# indicators\nexample.com\n  # trailing note\n8.8.8.8\n")
	inputs, err := input.Read(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "8.8.8.8"}, inputs)
}

func TestEntities(t *testing.T) {
	got, err := input.Entities([]string{"example.com", "8.8.8.8", "not valid!", "EXAMPLE.com", "+1 202-555-0199"}, testutil.NopLogger())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, entity.New(entity.KindDomain, "example.com"), got[0])
	assert.Equal(t, entity.New(entity.KindIPv4, "8.8.8.8"), got[1])
	assert.Equal(t, entity.NewPhone("+1 202-555-0199"), got[2])
}

func TestEntities_NothingUsable(t *testing.T) {
	_, err := input.Entities([]string{"not valid!", ""}, testutil.NopLogger())
	require.ErrorIs(t, err, apperr.ErrInvalidInput)
}
