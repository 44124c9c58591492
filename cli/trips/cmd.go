// Package trips implements the trip management commands.
package trips

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/packpal/packpal/api"
	"github.com/packpal/packpal/internal/cli"
	"github.com/packpal/packpal/internal/configuration"
)

// NewCmd instantiates and returns the trips command.
func NewCmd(config *configuration.Config, client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trips",
		Short: "Manage your trips",
	}
	cmd.AddCommand(newListCmd(client))
	cmd.AddCommand(newShowCmd(client))
	cmd.AddCommand(newCreateCmd(client))
	cmd.AddCommand(newDeleteCmd(client))
	return cmd
}

func newListCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your trips",
		RunE: func(cmd *cobra.Command, args []string) error {
			trips, err := client.ListTrips(cmd.Context())
			if err != nil {
				return err
			}
			if len(trips) == 0 {
				cli.Title("No trips yet. Create one with 'packpal trips create'.")
				return nil
			}
			for _, trip := range trips {
				cli.Label("#%d ", trip.ID)
				cli.Value("%s", trip.Name)
				cli.Title("    %s to %s", trip.StartDate, trip.EndDate)
			}
			return nil
		},
	}
}

func newShowCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trip-id>",
		Short: "Show a trip and its packing list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tripID, err := parseTripID(args[0])
			if err != nil {
				return err
			}

			trip, err := client.GetTrip(ctx, tripID)
			if err != nil {
				if api.IsNotFound(err) {
					return fmt.Errorf("trip %d not found", tripID)
				}
				return err
			}
			items, err := client.GetPackingList(ctx, tripID)
			if err != nil {
				return err
			}

			cli.Separator()
			cli.Field("Name", trip.Name)
			cli.Field("Dates", fmt.Sprintf("%s to %s", trip.StartDate, trip.EndDate))
			if trip.Description != "" {
				cli.Field("About", trip.Description)
			}
			cli.Separator()
			if len(items) == 0 {
				cli.Title("Packing list is empty.")
				return nil
			}
			packed := 0
			for _, item := range items {
				check := "[ ]"
				if item.Packed {
					check = "[x]"
					packed++
				}
				line := fmt.Sprintf("%s #%d %s ×%d", check, item.ID, item.Name, item.Quantity)
				if item.Notes != "" {
					line += "  " + item.Notes
				}
				cli.Value("%s", line)
			}
			cli.Title("%d/%d packed", packed, len(items))
			return nil
		},
	}
}

func newCreateCmd(client *api.Client) *cobra.Command {
	var opts struct {
		StartDate   string
		EndDate     string
		Description string
	}
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			description := opts.Description
			if description == "" {
				cli.Title("Describe the trip (Ctrl+J to submit, empty to skip):")
				input, err := cli.PromptUser()
				if err != nil {
					return err
				}
				description = input
			}

			trip, err := client.CreateTrip(cmd.Context(), &api.TripRequest{
				Name:        args[0],
				Description: description,
				StartDate:   opts.StartDate,
				EndDate:     opts.EndDate,
			})
			if err != nil {
				return err
			}
			cli.Success("Created trip #%d '%s'.", trip.ID, trip.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.StartDate, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.EndDate, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.Description, "description", "", "Trip description")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func newDeleteCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <trip-id>",
		Short: "Delete a trip and its packing list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tripID, err := parseTripID(args[0])
			if err != nil {
				return err
			}

			trip, err := client.GetTrip(ctx, tripID)
			if err != nil {
				return err
			}
			if !cli.QueryUser(fmt.Sprintf("Delete '%s' and its packing list?", trip.Name)) {
				return nil
			}
			if err := client.DeleteTrip(ctx, tripID); err != nil {
				return err
			}
			cli.Success("Deleted trip #%d.", tripID)
			return nil
		},
	}
}

func parseTripID(arg string) (int64, error) {
	tripID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid trip id %q", arg)
	}
	return tripID, nil
}
