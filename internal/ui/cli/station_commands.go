package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"chargemap/internal/models"
	"chargemap/internal/ui/form"
)

func newStationsCommand(env *Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stations",
		Short: "Station CRUD",
	}
	cmd.AddCommand(
		newStationsListCommand(env),
		newStationsGetCommand(env),
		newStationsCreateCommand(env),
		newStationsUpdateCommand(env),
		newStationsDeleteCommand(env),
	)
	return cmd
}

func newStationsListCommand(env *Env) *cobra.Command {
	var status, connector string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stations",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := models.StationFilter{Status: status, ConnectorType: connector}
			if err := env.Stations.Load(cmd.Context(), filter); err != nil {
				return err
			}
			printStations(cmd.OutOrStdout(), env.Stations.State().Stations)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&connector, "connector", "", "filter by connector type")
	return cmd
}

func newStationsGetCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one station",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			station, err := env.Stations.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printStations(cmd.OutOrStdout(), []models.Station{*station})
			return nil
		},
	}
}

func stationFormFlags(cmd *cobra.Command, f *form.StationForm) {
	cmd.Flags().StringVar(&f.Name, "name", "", "station name")
	cmd.Flags().Float64Var(&f.Latitude, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&f.Longitude, "lng", 0, "longitude")
	cmd.Flags().StringVar(&f.Address, "address", "", "street address")
	cmd.Flags().StringVar(&f.Status, "status", "", "status (active, inactive, maintenance)")
	cmd.Flags().Float64Var(&f.PowerOutput, "power", 0, "power output in kW")
	cmd.Flags().StringVar(&f.ConnectorType, "connector", "", "connector type")
}

func newStationsCreateCommand(env *Env) *cobra.Command {
	f := &form.StationForm{Mode: form.ModeCreate}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a station",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireSession(env)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			station, err := f.Submit(cmd.Context(), env.Stations)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created station %s\n", station.ID.Hex())
			return navigateToList(cmd, env)
		},
	}
	stationFormFlags(cmd, f)
	return cmd
}

func newStationsUpdateCommand(env *Env) *cobra.Command {
	f := &form.StationForm{Mode: form.ModeUpdate}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a station",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireSession(env)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f.StationID = args[0]
			station, err := f.Submit(cmd.Context(), env.Stations)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated station %s\n", station.ID.Hex())
			return navigateToList(cmd, env)
		},
	}
	stationFormFlags(cmd, f)
	return cmd
}

func newStationsDeleteCommand(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a station",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return requireSession(env)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := env.Stations.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted station %s\n", args[0])
			return nil
		},
	}
}

// navigateToList is the list redirect after a successful form submission.
func navigateToList(cmd *cobra.Command, env *Env) error {
	if err := env.Stations.Load(cmd.Context(), models.StationFilter{}); err != nil {
		return err
	}
	printStations(cmd.OutOrStdout(), env.Stations.State().Stations)
	return nil
}

func printStations(w io.Writer, stations []models.Station) {
	if len(stations) == 0 {
		fmt.Fprintln(w, "no stations")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSTATUS\tPOWER (kW)\tCONNECTOR\tLAT\tLNG")
	for _, s := range stations {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\t%.4f\t%.4f\n",
			s.ID.Hex(), s.Name, s.Status, s.PowerOutput, s.ConnectorType,
			s.Location.Latitude, s.Location.Longitude)
	}
	_ = tw.Flush()
}
