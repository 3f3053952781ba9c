package main

import (
	"github.com/spf13/cobra"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
)

func newListCmd(a *app) *cobra.Command {
	var trash bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List active notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				list []entity.Note
				err  error
			)
			if trash {
				list, err = a.store.ListTrash(cmd.Context())
			} else {
				list, err = a.store.ListActive(cmd.Context())
			}
			if err != nil {
				return err
			}

			return printNotes(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().BoolVar(&trash, "trash", false, "List notes in the trash instead")

	return cmd
}
