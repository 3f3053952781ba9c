package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/session"
)

type noteFlags struct {
	title     string
	content   string
	category  string
	color     int64
	checklist bool
	checked   bool
}

func (f *noteFlags) bind(cmd *cobra.Command, withChecked bool) {
	cmd.Flags().StringVar(&f.title, "title", "", "Note title")
	cmd.Flags().StringVar(&f.content, "content", "", "Note content")
	cmd.Flags().StringVar(&f.category, "category", "", "Note category")
	cmd.Flags().Int64Var(&f.color, "color", 0, "Palette color id")
	cmd.Flags().BoolVar(&f.checklist, "checklist", false, "Note can be checked off")
	if withChecked {
		cmd.Flags().BoolVar(&f.checked, "checked", false, "Note is checked off")
	}
}

// apply pushes every flag the user set into the draft.
func (f *noteFlags) apply(cmd *cobra.Command, s *session.Session) error {
	edits := []struct {
		flag  string
		field session.Field
		value any
	}{
		{"title", session.FieldTitle, f.title},
		{"content", session.FieldContent, f.content},
		{"category", session.FieldCategory, f.category},
		{"color", session.FieldColorID, f.color},
		{"checklist", session.FieldCanBeCheckedOff, f.checklist},
		{"checked", session.FieldIsCheckedOff, f.checked},
	}

	for _, e := range edits {
		if !cmd.Flags().Changed(e.flag) {
			continue
		}
		if err := s.UpdateDraftField(e.field, e.value); err != nil {
			return fmt.Errorf("--%s: %w", e.flag, err)
		}
	}

	return nil
}

// saveDraft loads id into a fresh session, applies flags and saves.
func saveDraft(cmd *cobra.Command, a *app, id int64, flags *noteFlags) (entity.Note, error) {
	s, err := a.newSession()
	if err != nil {
		return entity.Note{}, err
	}
	defer s.Discard()

	ctx := cmd.Context()

	if err := s.LoadDraft(ctx, id); err != nil {
		return entity.Note{}, err
	}

	if err := flags.apply(cmd, s); err != nil {
		return entity.Note{}, err
	}

	return s.Save(ctx)
}

func newNewCmd(a *app) *cobra.Command {
	var flags noteFlags

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			note, err := saveDraft(cmd, a, entity.NewNoteID, &flags)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note created: %d\n", note.ID)
			return nil
		},
	}

	flags.bind(cmd, false)

	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var flags noteFlags

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Change fields of an existing note",
		Long:  `Only the flags that are given are changed; every other field keeps its stored value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			note, err := saveDraft(cmd, a, id, &flags)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note updated: %d\n", note.ID)
			return nil
		},
	}

	flags.bind(cmd, true)

	return cmd
}
