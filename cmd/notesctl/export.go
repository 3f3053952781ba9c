package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/evgeniy-krivenko/mynotes/internal/entity"
)

type exportNote struct {
	ID              int64  `yaml:"id"`
	Title           string `yaml:"title"`
	Content         string `yaml:"content"`
	Category        string `yaml:"category"`
	CanBeCheckedOff bool   `yaml:"can_be_checked_off"`
	IsCheckedOff    bool   `yaml:"is_checked_off"`
	ColorID         int64  `yaml:"color_id"`
	IsInTrash       bool   `yaml:"in_trash"`
}

type exportDocument struct {
	Notes []exportNote `yaml:"notes"`
}

func newExportCmd(a *app) *cobra.Command {
	var trash bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write notes to stdout as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			list, err := a.store.ListActive(ctx)
			if err != nil {
				return err
			}

			if trash {
				trashed, err := a.store.ListTrash(ctx)
				if err != nil {
					return err
				}
				list = append(list, trashed...)
			}

			doc := exportDocument{Notes: make([]exportNote, 0, len(list))}
			for _, n := range list {
				doc.Notes = append(doc.Notes, toExportNote(n))
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encode notes: %v", err)
			}

			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&trash, "trash", false, "Include notes in the trash")

	return cmd
}

func toExportNote(n entity.Note) exportNote {
	return exportNote{
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
