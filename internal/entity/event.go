package entity

type ChangeKind string

const (
	ChangeSeeded   ChangeKind = "seeded"
	ChangeCreated  ChangeKind = "created"
	ChangeUpdated  ChangeKind = "updated"
	ChangeTrashed  ChangeKind = "trashed"
	ChangeRestored ChangeKind = "restored"
	ChangeDeleted  ChangeKind = "deleted"
	ChangePurged   ChangeKind = "purged"
)

type NotesChangedEvent struct {
	Kind    ChangeKind
	NoteIDs []int64
}

// NotesSnapshot is handed to subscribers after a write completes.
type NotesSnapshot struct {
	Event  NotesChangedEvent
	Active []Note
}
