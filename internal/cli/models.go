package cli

import (
	"github.com/spf13/cobra"
)

type modelInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Provider  string `json:"provider"`
	Host      string `json:"host"`
	SizeClass string `json:"size_class"`
}

func newModelsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List the models with benchmark data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			models := a.store.Models()
			infos := make([]modelInfo, 0, len(models))
			for _, m := range models {
				infos = append(infos, modelInfo{
					ID:        m.ID(),
					Name:      m.Name(),
					Provider:  m.Provider(),
					Host:      m.Host(),
					SizeClass: m.SizeClass(),
				})
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), infos)
			}
			s := newSection("Models")
			for _, info := range infos {
				s.field(info.ID, "%s by %s, hosted on %s", info.Name, info.Provider, info.Host)
			}
			s.blank()
			s.line(mutedStyle.Render("reference data: " + a.store.Source()))
			return s.writeTo(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
