package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trash [id]",
		Short: "Move a note to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			s, err := a.newSession()
			if err != nil {
				return err
			}
			defer s.Discard()

			if err := s.LoadDraft(cmd.Context(), id); err != nil {
				return err
			}

			if _, err := s.MoveToTrash(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Note moved to trash: %d\n", id)
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore [id...]",
		Short: "Take notes out of the trash",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			if err := a.store.Restore(cmd.Context(), ids...); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Notes restored: %v\n", ids)
			return nil
		},
	}
}

func newPurgeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Permanently delete every note in the trash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := a.store.PurgeTrash(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Notes purged: %d\n", len(ids))
			return nil
		},
	}
}
