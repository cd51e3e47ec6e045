package cli

import (
	"errors"
	"fmt"
	"os"

	"rotodendron/internal/store"
	"rotodendron/internal/tui"

	"github.com/spf13/cobra"
)

func newOutlineCmd(app *App) *cobra.Command {
	var render bool
	var width int

	cmd := &cobra.Command{
		Use:   "outline",
		Short: "Print the tree as a nested markdown outline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := loadTree(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			md := t.Outline()
			if render {
				cfg, err := store.LoadConfig()
				if err != nil {
					return writeErr(cmd, err)
				}
				tui.ApplyPreferences(cfg.Theme, cfg.Glyphs)
				md = tui.RenderMarkdown(md, width) + "\n"
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Format the outline for the terminal")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --render")
	return cmd
}

func newRecordsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "records",
		Short: "Print every paragraph as a flat record (pre-order)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := loadTree(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t.Records()})
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Rewrite the outline and CSV from the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store.New(app.File)
			if err := st.Export(cmd.Context()); err != nil {
				if errors.Is(err, os.ErrNotExist) {
					err = errNoSnapshot(st.SnapshotPath())
				}
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"outline": st.OutlinePath(),
				"csv":     st.CSVPath(),
			}})
		},
	}
}
