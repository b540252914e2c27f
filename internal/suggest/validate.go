package suggest

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	NameMinLen = 2
	NameMaxLen = 100
	DescMaxLen = 500
	PriceMax   = 1_000_000

	// DescriptionSkip is the sentinel a user sends to leave the
	// description empty.
	DescriptionSkip = "-"
)

var (
	ErrNameLength      = errors.New("suggest: name must be 2 to 100 characters")
	ErrDescTooLong     = errors.New("suggest: description longer than 500 characters")
	ErrPriceNotANumber = errors.New("suggest: price is not a number")
	ErrPriceOutOfRange = errors.New("suggest: price must be between 0 and 1000000")
)

// ValidateName trims the input and checks its length in runes.
func ValidateName(input string) (string, error) {
	name := strings.TrimSpace(input)
	length := utf8.RuneCountInString(name)
	if length < NameMinLen || length > NameMaxLen {
		return "", ErrNameLength
	}
	return name, nil
}

// ValidateDescription maps the skip sentinel to nil and rejects
// descriptions longer than 500 runes.
func ValidateDescription(input string) (*string, error) {
	if input == DescriptionSkip {
		return nil, nil
	}
	description := strings.TrimSpace(input)
	if utf8.RuneCountInString(description) > DescMaxLen {
		return nil, ErrDescTooLong
	}
	return &description, nil
}

// ParsePrice accepts comma or dot as the fractional separator and
// checks the value against [0, 1000000].
func ParsePrice(input string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	price, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, ErrPriceNotANumber
	}
	if price < 0 || price > PriceMax {
		return 0, ErrPriceOutOfRange
	}
	return price, nil
}
