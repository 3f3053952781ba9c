package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			note, ok, err := a.store.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("note %d: %w", id, entity.ErrNoteNotFound)
			}

			return printNote(cmd.OutOrStdout(), note)
		},
	}
}
