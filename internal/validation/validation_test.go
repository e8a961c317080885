package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain", raw: "Test Chat", want: "Test Chat"},
		{name: "surrounding spaces", raw: "  Trimmed Title  ", want: "Trimmed Title"},
		{name: "tabs and newlines", raw: "\t\r\n Title \n\t", want: "Title"},
		{name: "inner whitespace kept", raw: " a  b ", want: "a  b"},
		{name: "empty", raw: "", wantErr: true},
		{name: "whitespace only", raw: " \t\r\n ", wantErr: true},
		{name: "exactly max", raw: strings.Repeat("a", MaxTitleLength), want: strings.Repeat("a", MaxTitleLength)},
		{name: "max after trimming", raw: "   " + strings.Repeat("a", MaxTitleLength) + "   ", want: strings.Repeat("a", MaxTitleLength)},
		{name: "one over max", raw: strings.Repeat("a", MaxTitleLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTitle(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidTitle))
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateText(t *testing.T) {
	got, err := ValidateText("  Trimmed Text  ")
	require.NoError(t, err)
	assert.Equal(t, "Trimmed Text", got)

	got, err = ValidateText(strings.Repeat("x", MaxTextLength))
	require.NoError(t, err)
	assert.Len(t, got, MaxTextLength)

	_, err = ValidateText(strings.Repeat("x", MaxTextLength+1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidText)
	assert.False(t, errors.Is(err, ErrInvalidTitle))

	_, err = ValidateText("   ")
	assert.ErrorIs(t, err, ErrInvalidText)
}

func TestValidateTitle_CountsCharactersNotBytes(t *testing.T) {
	// Each of these is one character but several bytes.
	for _, r := range []string{"é", "日", "🙂"} {
		title := strings.Repeat(r, MaxTitleLength)
		require.Greater(t, len(title), MaxTitleLength)

		got, err := ValidateTitle(title)
		require.NoError(t, err, "rune %q", r)
		assert.Equal(t, title, got)

		_, err = ValidateTitle(title + r)
		assert.ErrorIs(t, err, ErrInvalidTitle, "rune %q", r)
	}
}

func TestTrimmingIsIdempotent(t *testing.T) {
	for _, raw := range []string{"  a  ", "\tb\n", "c", " mixed  text　 "} {
		once, err := ValidateTitle(raw)
		require.NoError(t, err)
		twice, err := ValidateTitle(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestValidationErrorDetails(t *testing.T) {
	_, err := ValidateTitle("   ")

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Details, 1)

	d := verr.Details[0]
	assert.Equal(t, "value_error", d.Type)
	assert.Equal(t, []string{"body", "title"}, d.Loc)
	assert.Equal(t, "Value error, Title cannot be empty or only whitespace", d.Msg)
	assert.Equal(t, "   ", d.Input)

	_, err = ValidateText(strings.Repeat("z", MaxTextLength+1))
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Value error, Text cannot exceed 5000 characters", verr.Details[0].Msg)
	assert.Equal(t, []string{"body", "text"}, verr.Details[0].Loc)
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, ValidatePage(1, 0, 100))
	assert.NoError(t, ValidatePage(100, 5000, 100))

	err := ValidatePage(0, 0, 100)
	require.ErrorIs(t, err, ErrInvalidPage)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "greater_than_equal", verr.Details[0].Type)
	assert.Equal(t, []string{"query", "limit"}, verr.Details[0].Loc)

	err = ValidatePage(101, 0, 100)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "less_than_equal", verr.Details[0].Type)
	assert.Equal(t, "Input should be less than or equal to 100", verr.Details[0].Msg)

	err = ValidatePage(0, -1, 100)
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Details, 2)
	assert.Equal(t, []string{"query", "offset"}, verr.Details[1].Loc)
}

func TestStruct(t *testing.T) {
	type body struct {
		Title *string `json:"title" validate:"required"`
	}

	err := Struct(body{})
	require.ErrorIs(t, err, ErrInvalidRequest)
	var verr *Error
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "missing", verr.Details[0].Type)
	assert.Equal(t, []string{"body", "title"}, verr.Details[0].Loc)

	title := ""
	assert.NoError(t, Struct(body{Title: &title}))
}

func TestInvalidInteger(t *testing.T) {
	err := InvalidInteger("query", "limit", "ten")
	assert.ErrorIs(t, err, ErrInvalidPage)
	assert.Equal(t, "int_parsing", err.Details[0].Type)

	err = InvalidInteger("path", "chat_id", "abc")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
