package session

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
)

// Field names a draft attribute that callers may edit.
type Field string

const (
	FieldTitle           Field = "title"
	FieldContent         Field = "content"
	FieldCategory        Field = "category"
	FieldCanBeCheckedOff Field = "can_be_checked_off"
	FieldIsCheckedOff    Field = "is_checked_off"
	FieldColorID         Field = "color_id"
)

func Fields() []Field {
	return []Field{
		FieldTitle, FieldContent, FieldCategory,
		FieldCanBeCheckedOff, FieldIsCheckedOff, FieldColorID,
	}
}

// apply merges value into note. Only type constraints are checked: empty
// strings are accepted.
func apply(note *entity.Note, field Field, value any) error {
	switch field {
	case FieldTitle, FieldContent, FieldCategory:
		s, ok := value.(string)
		if !ok {
			return typeError(field, "string", value)
		}
		switch field {
		case FieldTitle:
			note.Title = s
		case FieldContent:
			note.Content = s
		default:
			note.Category = s
		}

	case FieldCanBeCheckedOff, FieldIsCheckedOff:
		b, ok := value.(bool)
		if !ok {
			return typeError(field, "bool", value)
		}
		if field == FieldCanBeCheckedOff {
			note.CanBeCheckedOff = b
		} else {
			note.IsCheckedOff = b
		}

	case FieldColorID:
		id, ok := asInt64(value)
		if !ok {
			return typeError(field, "integer", value)
		}
		note.ColorID = id

	default:
		return fmt.Errorf("%w: unknown field %q", entity.ErrValidation, field)
	}

	return nil
}

func typeError(field Field, want string, got any) error {
	if n, ok := got.(json.Number); ok {
		return fmt.Errorf("%w: field %q wants %s, got number %s", entity.ErrValidation, field, want, n)
	}

	return fmt.Errorf("%w: field %q wants %s, got %T", entity.ErrValidation, field, want, got)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	default:
		return 0, false
	}
}

// floatToInt64 accepts integral values in [-2^63, 2^63).
func floatToInt64(f float64) (int64, bool) {
	if f != math.Trunc(f) || f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}

	return int64(f), true
}
