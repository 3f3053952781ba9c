package converter

import (
	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/repository/model"
)

func ConvertNoteToEntity(row model.Note) entity.Note {
	return entity.Note{
		ID:              row.ID,
		Title:           row.Title,
		Content:         row.Content,
		Category:        row.Category,
		CanBeCheckedOff: row.CanBeCheckedOff,
		IsCheckedOff:    row.IsCheckedOff,
		ColorID:         row.ColorID,
		IsInTrash:       row.InTrash,
	}
}

func ConvertNotesToEntity(rows []model.Note) []entity.Note {
	notes := make([]entity.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, ConvertNoteToEntity(row))
	}

	return notes
}

func ConvertNoteToModel(note entity.Note) model.Note {
	return model.Note{
		ID:              note.ID,
		Title:           note.Title,
		Content:         note.Content,
		Category:        note.Category,
		CanBeCheckedOff: note.CanBeCheckedOff,
		IsCheckedOff:    note.IsCheckedOff,
		ColorID:         note.ColorID,
		InTrash:         note.IsInTrash,
	}
}

// NoteValues returns the row values in model.NoteColumns order.
func NoteValues(note entity.Note) []any {
	return []any{
		note.ID, note.Title, note.Content, note.Category,
		note.CanBeCheckedOff, note.IsCheckedOff, note.ColorID, note.IsInTrash,
	}
}

func ConvertColorToEntity(row model.Color) entity.Color {
	return entity.Color{ID: row.ID, Name: row.Name, Hex: row.Hex}
}

func ConvertColorsToEntity(rows []model.Color) []entity.Color {
	colors := make([]entity.Color, 0, len(rows))
	for _, row := range rows {
		colors = append(colors, ConvertColorToEntity(row))
	}

	return colors
}

func ConvertColorToModel(color entity.Color) model.Color {
	return model.Color{ID: color.ID, Name: color.Name, Hex: color.Hex}
}
