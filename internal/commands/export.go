package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/stahnma/gh-usermap/internal/dataset"
	"github.com/stahnma/gh-usermap/internal/format"
)

// recordView is the JSON shape of one record in export output.
type recordView struct {
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (a *App) newExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the usage dataset in JSON format",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ExportJSON(cmd.OutOrStdout())
		},
	}
}

// ExportJSON writes the dataset's records to w as JSON.
func (a *App) ExportJSON(w io.Writer) error {
	d, err := dataset.Load(a.Config.DatasetFile)
	if err != nil {
		return err
	}

	views := make([]recordView, 0, d.Len())
	for _, r := range d.Records() {
		views = append(views, recordView{
			Name:      r.Name,
			Location:  r.Location,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}

	return format.WriteJSON(w, views, a.Config.SlackMode)
}
