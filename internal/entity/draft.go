package entity

type SessionState int

const (
	SessionEmpty SessionState = iota
	SessionLoading
	SessionEditing
	SessionSaved
	SessionDiscarded
)

func (s SessionState) String() string {
	switch s {
	case SessionEmpty:
		return "empty"
	case SessionLoading:
		return "loading"
	case SessionEditing:
		return "editing"
	case SessionSaved:
		return "saved"
	case SessionDiscarded:
		return "discarded"
	default:
		return "unknown"
	}
}

func (s SessionState) Terminal() bool {
	return s == SessionSaved || s == SessionDiscarded
}

// Draft is the in-memory copy of a note owned by one edit session.
type Draft struct {
	Note  Note
	State SessionState
}

func (d Draft) IsNew() bool {
	return d.Note.IsNew()
}
