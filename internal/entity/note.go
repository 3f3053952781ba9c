package entity

// NewNoteID marks a note that has not been persisted yet.
const NewNoteID int64 = 0

type Note struct {
	ID              int64
	Title           string
	Content         string
	Category        string
	CanBeCheckedOff bool
	IsCheckedOff    bool
	ColorID         int64
	IsInTrash       bool
}

func (n Note) IsNew() bool {
	return n.ID == NewNoteID
}

// DefaultNotes returns the rows inserted on the very first run.
func DefaultNotes() []Note {
	return []Note{
		{ID: 1, Title: "Thanapat Pongpipat", Content: "0963711479", Category: "Phone", ColorID: 1},
		{ID: 2, Title: "Ter", Content: "0816353115", Category: "Home", ColorID: 2},
	}
}

// NoteIDs collects ids preserving order.
func NoteIDs(notes []Note) []int64 {
	ids := make([]int64, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}

	return ids
}
