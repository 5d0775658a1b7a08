package cli

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"chargemap/internal/models"
	"chargemap/internal/ui/store"
)

func newDashboardCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show aggregate station counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dashboard, err := env.Client.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "stations: %d (%.1f kW total)\n", dashboard.TotalStations, dashboard.TotalPowerOutput)
			for status, count := range dashboard.ByStatus {
				fmt.Fprintf(out, "  status %s: %d\n", status, count)
			}
			for connector, count := range dashboard.ByConnectorType {
				fmt.Fprintf(out, "  connector %s: %d\n", connector, count)
			}
			return nil
		},
	}
}

func newMapCommand(env *Env) *cobra.Command {
	var output string
	var status, connector, selectID string

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Render the station map to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The map re-renders from store state changes and reports
			// selections upward.
			env.Stations.Subscribe(func(st store.StationState) {
				env.Map.SetStations(st.Stations)
			})
			env.Map.OnSelect(func(s models.Station) {
				fmt.Fprintf(cmd.OutOrStdout(), "selected %s: %s (%s, %.1f kW, %s)\n",
					s.ID.Hex(), s.Name, s.Status, s.PowerOutput, s.ConnectorType)
			})

			filter := models.StationFilter{Status: status, ConnectorType: connector}
			if err := env.Stations.Load(cmd.Context(), filter); err != nil {
				return err
			}

			if selectID != "" {
				if err := env.Map.Select(selectID); err != nil {
					return err
				}
			}

			img, err := env.Map.Render(cmd.Context())
			if err != nil {
				return err
			}

			file, err := os.Create(output)
			if err != nil {
				return err
			}
			defer file.Close()

			if err := png.Encode(file, img); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d stations)\n", output, len(env.Stations.State().Stations))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "stations.png", "output PNG path")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&connector, "connector", "", "filter by connector type")
	cmd.Flags().StringVar(&selectID, "select", "", "emit a selection event for the given station id")
	return cmd
}
