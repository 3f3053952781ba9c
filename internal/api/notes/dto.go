package notes

import (
	"github.com/evgeniy-krivenko/mynotes/internal/entity"
)

type noteDTO struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	Category        string `json:"category"`
	CanBeCheckedOff bool   `json:"can_be_checked_off"`
	IsCheckedOff    bool   `json:"is_checked_off"`
	ColorID         int64  `json:"color_id"`
	IsInTrash       bool   `json:"is_in_trash"`
}

type colorDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type draftDTO struct {
	State string  `json:"state"`
	IsNew bool    `json:"is_new"`
	Note  noteDTO `json:"note"`
}

type sessionDTO struct {
	SessionID string   `json:"session_id"`
	Draft     draftDTO `json:"draft"`
}

type eventDTO struct {
	Kind    string    `json:"kind"`
	NoteIDs []int64   `json:"note_ids"`
	Active  []noteDTO `json:"active"`
}

type openSessionRequest struct {
	NoteID int64 `json:"note_id"`
}

type updateDraftRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

type restoreRequest struct {
	IDs []int64 `json:"ids"`
}

type purgeResponse struct {
	IDs []int64 `json:"ids"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toNoteDTO(n entity.Note) noteDTO {
	return noteDTO{
		ID:              n.ID,
		Title:           n.Title,
		Content:         n.Content,
		Category:        n.Category,
		CanBeCheckedOff: n.CanBeCheckedOff,
		IsCheckedOff:    n.IsCheckedOff,
		ColorID:         n.ColorID,
		IsInTrash:       n.IsInTrash,
	}
}

func toNoteDTOs(notes []entity.Note) []noteDTO {
	res := make([]noteDTO, 0, len(notes))
	for _, n := range notes {
		res = append(res, toNoteDTO(n))
	}

	return res
}

func toColorDTOs(colors []entity.Color) []colorDTO {
	res := make([]colorDTO, 0, len(colors))
	for _, c := range colors {
		res = append(res, colorDTO{ID: c.ID, Name: c.Name, Hex: c.Hex})
	}

	return res
}

func toDraftDTO(d entity.Draft) draftDTO {
	return draftDTO{
		State: d.State.String(),
		IsNew: d.IsNew(),
		Note:  toNoteDTO(d.Note),
	}
}

func toEventDTO(s entity.NotesSnapshot) eventDTO {
	ids := s.Event.NoteIDs
	if ids == nil {
		ids = []int64{}
	}

	return eventDTO{
		Kind:    string(s.Event.Kind),
		NoteIDs: ids,
		Active:  toNoteDTOs(s.Active),
	}
}
