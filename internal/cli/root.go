package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"rotodendron/internal/editor"
	"rotodendron/internal/format"
	"rotodendron/internal/store"
	"rotodendron/internal/tree"
	"rotodendron/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	File       string
	Autoloop   bool
	PrettyJSON bool
	Format     string
}

// runLoop is the interactive session; tests replace it.
var runLoop = tui.Run

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "rotodendron",
		Short:        "Write and reread a branching tree of paragraphs",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		Example: strings.TrimSpace(`
  # Write into ./tree.sqlite
  rotodendron

  # Another tree, no idle timer
  rotodendron -f notes/dream --no-autoloop

  # Print what has been written
  rotodendron outline --render
  rotodendron records --format edn
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := runTUI(cmd, app); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&app.File, "file", "f", envOr("ROTODENDRON_FILE", store.DefaultBase), "Base name of the tree files (<file>.sqlite, .md, .csv)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("ROTODENDRON_FORMAT", "json"), "Output format (json|edn)")
	cmd.Flags().BoolVar(&app.Autoloop, "autoloop", true, "Count the idle timer down while no key is pressed")

	cmd.AddCommand(newOutlineCmd(app))
	cmd.AddCommand(newRecordsCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

// runTUI loads the tree, runs the session and always persists what was
// written, even when the session itself failed.
func runTUI(cmd *cobra.Command, app *App) error {
	cfg, err := store.LoadConfig()
	if err != nil {
		return err
	}

	edCfg := editor.DefaultConfig(app.Autoloop)
	if cfg.InitialTimer > 0 {
		edCfg.InitialTimer = cfg.InitialTimer
	}
	if cfg.ColumnWidth > 0 {
		edCfg.ColumnWidth = cfg.ColumnWidth
	}

	st := store.New(app.File)
	t, _, err := st.Load(cmd.Context())
	if err != nil {
		return err
	}
	ed := editor.New(t, edCfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := runLoop(ctx, ed, tui.Options{
		Autoloop: app.Autoloop,
		Delay:    cfg.AutoscrollDelay(),
		GapWidth: cfg.Gap(),
		Theme:    cfg.Theme,
		Glyphs:   cfg.Glyphs,
	})
	ed.Flush()

	// Saving must not be cut short by the signal that ended the session.
	saveErr := st.Save(context.WithoutCancel(ctx), ed.Tree())
	return errors.Join(runErr, saveErr)
}

// loadTree opens the stored snapshot for the read-only commands.
func loadTree(cmd *cobra.Command, app *App) (*tree.Tree, store.Store, error) {
	st := store.New(app.File)
	t, ok, err := st.Load(cmd.Context())
	if err != nil {
		return nil, st, err
	}
	if !ok {
		return nil, st, errNoSnapshot(st.SnapshotPath())
	}
	return t, st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
