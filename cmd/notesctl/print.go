package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
)

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", raw)
	}

	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, raw := range args {
		id, err := parseID(raw)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func printNotes(out io.Writer, notes []entity.Note) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCONTENT\tCATEGORY\tCOLOR\tCHECK")
	for _, n := range notes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			n.ID, n.Title, n.Content, n.Category, n.ColorID, checkMark(n))
	}

	return tw.Flush()
}

func printNote(out io.Writer, n entity.Note) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%d\n", n.ID)
	fmt.Fprintf(tw, "title:\t%s\n", n.Title)
	fmt.Fprintf(tw, "content:\t%s\n", n.Content)
	fmt.Fprintf(tw, "category:\t%s\n", n.Category)
	fmt.Fprintf(tw, "color:\t%d\n", n.ColorID)
	fmt.Fprintf(tw, "checklist:\t%t\n", n.CanBeCheckedOff)
	fmt.Fprintf(tw, "checked:\t%t\n", n.IsCheckedOff)
	fmt.Fprintf(tw, "trash:\t%t\n", n.IsInTrash)

	return tw.Flush()
}

func checkMark(n entity.Note) string {
	switch {
	case !n.CanBeCheckedOff:
		return "-"
	case n.IsCheckedOff:
		return "[x]"
	default:
		return "[ ]"
	}
}
