package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/evgeniy-krivenko/mynotes/internal/config"
	"github.com/evgeniy-krivenko/mynotes/internal/storage"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/notes"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/session"
	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

// app carries the storage opened by the root command for its subcommands.
type app struct {
	cfgPath string
	verbose bool

	store  *notes.Store
	closer io.Closer
}

func execute(args []string, out io.Writer) error {
	a := &app{}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)

	return root.ExecuteContext(context.Background())
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "notesctl",
		Short: "Manage notes stored by mynotes",
		Long: `notesctl reads and edits the same note storage the mynotes server uses.
Storage is selected by the STORAGE_* and DB_* environment or by --config.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
	}

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "yaml, toml or env config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newNewCmd(a),
		newEditCmd(a),
		newTrashCmd(a),
		newRestoreCmd(a),
		newDeleteCmd(a),
		newPurgeCmd(a),
		newColorsCmd(a),
		newExportCmd(a),
	)

	return root
}

func (a *app) open(cmd *cobra.Command, _ []string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}

	level := "warn"
	if a.verbose {
		level = "debug"
	}
	if err := slogx.InitGlobal(os.Stderr, level, true); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	ctx := cmd.Context()

	repo, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	a.closer = closer

	store, err := notes.New(notes.NewOptions(repo))
	if err != nil {
		return fmt.Errorf("init notes usecase: %v", err)
	}
	a.store = store

	if cfg.App.Seed {
		if err := store.SeedIfEmpty(ctx); err != nil {
			return fmt.Errorf("seed storage: %w", err)
		}
	}

	return nil
}

func (a *app) config() (config.Config, error) {
	if a.cfgPath != "" {
		return config.ParseFile(a.cfgPath)
	}

	return config.Parse()
}

func (a *app) newSession() (*session.Session, error) {
	return session.New(session.NewOptions(a.store))
}

func (a *app) close() {
	if a.closer != nil {
		_ = a.closer.Close()
	}
}
