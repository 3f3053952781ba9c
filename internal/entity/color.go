package entity

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FallbackColorID is used when the palette has no entries at all.
const FallbackColorID int64 = 1

var validate = validator.New(validator.WithRequiredStructEnabled())

type Color struct {
	ID   int64  `validate:"gt=0"`
	Name string `validate:"required"`
	// Hex holds exactly six hex digits: no leading '#', no alpha channel.
	Hex string `validate:"len=6,hexadecimal"`
}

func (c Color) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: color %d: %v", ErrValidation, c.ID, err)
	}

	return nil
}

// ParseHex normalizes "#rrggbb" or "rrggbb" into the stored upper-case form.
func ParseHex(s string) (string, error) {
	hex := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err := validate.Var(hex, "len=6,hexadecimal"); err != nil {
		return "", fmt.Errorf("%w: hex %q: %v", ErrValidation, s, err)
	}

	return hex, nil
}

func DefaultColors() []Color {
	return []Color{
		{ID: 1, Name: "White", Hex: "FFFFFF"},
		{ID: 2, Name: "Red", Hex: "E57373"},
		{ID: 3, Name: "Pink", Hex: "F06292"},
		{ID: 4, Name: "Purple", Hex: "CE93D8"},
		{ID: 5, Name: "Blue", Hex: "2196F3"},
		{ID: 6, Name: "Cyan", Hex: "00ACC1"},
		{ID: 7, Name: "Teal", Hex: "26A69A"},
		{ID: 8, Name: "Green", Hex: "4CAF50"},
		{ID: 9, Name: "Light Green", Hex: "8BC34A"},
		{ID: 10, Name: "Lime", Hex: "CDDC39"},
		{ID: 11, Name: "Yellow", Hex: "FFEB3B"},
		{ID: 12, Name: "Orange", Hex: "FF9800"},
		{ID: 13, Name: "Brown", Hex: "BCAAA4"},
		{ID: 14, Name: "Gray", Hex: "9E9E9E"},
	}
}
