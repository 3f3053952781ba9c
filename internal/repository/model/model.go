// Package model holds the storage row shapes shared by the backends.
package model

type Note struct {
	ID              int64  `db:"id" json:"id"`
	Title           string `db:"title" json:"title"`
	Content         string `db:"content" json:"content"`
	Category        string `db:"category" json:"category"`
	CanBeCheckedOff bool   `db:"can_be_checked_off" json:"can_be_checked_off"`
	IsCheckedOff    bool   `db:"is_checked_off" json:"is_checked_off"`
	ColorID         int64  `db:"color_id" json:"color_id"`
	InTrash         bool   `db:"in_trash" json:"in_trash"`
}

type Color struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Hex  string `db:"hex" json:"hex"`
}

// NoteColumns lists the notes table columns in insert order.
var NoteColumns = []string{
	"id", "title", "content", "category",
	"can_be_checked_off", "is_checked_off", "color_id", "in_trash",
}

var ColorColumns = []string{"id", "name", "hex"}
