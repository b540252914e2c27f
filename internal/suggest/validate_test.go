package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "valid", input: "Tonkatsu", want: "Tonkatsu"},
		{name: "trims whitespace", input: "  Tonkatsu  ", want: "Tonkatsu"},
		{name: "minimum length", input: "Ox", want: "Ox"},
		{name: "too short", input: "X", wantErr: ErrNameLength},
		{name: "whitespace only", input: "   ", wantErr: ErrNameLength},
		{name: "too long", input: strings.Repeat("a", 101), wantErr: ErrNameLength},
		{name: "exactly max length", input: strings.Repeat("a", 100), want: strings.Repeat("a", 100)},
		{name: "cyrillic counted in runes", input: strings.Repeat("б", 100), want: strings.Repeat("б", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateName(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateDescription(t *testing.T) {
	t.Run("skip sentinel yields nil", func(t *testing.T) {
		got, err := ValidateDescription("-")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("text stored verbatim after trim", func(t *testing.T) {
		got, err := ValidateDescription("  crispy pork cutlet  ")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "crispy pork cutlet", *got)
	})

	t.Run("at max length", func(t *testing.T) {
		got, err := ValidateDescription(strings.Repeat("a", 500))
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("too long", func(t *testing.T) {
		_, err := ValidateDescription(strings.Repeat("a", 501))
		assert.ErrorIs(t, err, ErrDescTooLong)
	})
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr error
	}{
		{name: "dot separator", input: "299.99", want: 299.99},
		{name: "comma separator", input: "199,50", want: 199.5},
		{name: "integer", input: "100", want: 100},
		{name: "zero", input: "0", want: 0},
		{name: "upper bound", input: "1000000", want: 1_000_000},
		{name: "negative", input: "-1", wantErr: ErrPriceOutOfRange},
		{name: "above upper bound", input: "1000000.01", wantErr: ErrPriceOutOfRange},
		{name: "not a number", input: "cheap", wantErr: ErrPriceNotANumber},
		{name: "empty", input: "", wantErr: ErrPriceNotANumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
