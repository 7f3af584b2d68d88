package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stahnma/gh-usermap/internal/dataset"
	"github.com/stahnma/gh-usermap/internal/render"
)

func (a *App) newRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Render the usage dataset as a world map image",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd)
		},
	}
}

func (a *App) runRender(cmd *cobra.Command) error {
	d, err := dataset.Load(a.Config.DatasetFile)
	if err != nil {
		return err
	}
	if d.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to render.")
		return nil
	}

	if err := render.Map(d, a.Config.MapFile); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d markers to %s\n", d.Len(), a.Config.MapFile)
	return nil
}
