// Package items implements direct packing-list item commands, for quick
// edits that do not need an assistant session.
package items

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/packpal/packpal/api"
	"github.com/packpal/packpal/internal/cli"
	"github.com/packpal/packpal/internal/configuration"
)

// NewCmd instantiates and returns the items command.
func NewCmd(config *configuration.Config, client *api.Client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Edit packing-list items directly",
	}
	cmd.AddCommand(newAddCmd(client))
	cmd.AddCommand(newPackCmd(client))
	cmd.AddCommand(newRemoveCmd(client))
	return cmd
}

func newAddCmd(client *api.Client) *cobra.Command {
	var opts struct {
		Quantity int
		Notes    string
	}
	cmd := &cobra.Command{
		Use:   "add <trip-id> <name>",
		Short: "Add an item to a trip's packing list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			item, err := client.CreateItem(cmd.Context(), &api.ItemRequest{
				TripID:   tripID,
				Name:     args[1],
				Quantity: opts.Quantity,
				Notes:    opts.Notes,
			})
			if err != nil {
				return err
			}
			cli.Success("Added #%d %s ×%d.", item.ID, item.Name, item.Quantity)
			return nil
		},
	}
	cmd.Flags().IntVarP(&opts.Quantity, "quantity", "q", 1, "Quantity to pack")
	cmd.Flags().StringVarP(&opts.Notes, "notes", "n", "", "Free-form notes")
	return cmd
}

func newPackCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "pack <trip-id> <item-id>",
		Short: "Toggle an item's packed state",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			tripID, err := parseID(args[0], "trip")
			if err != nil {
				return err
			}
			itemID, err := parseID(args[1], "item")
			if err != nil {
				return err
			}

			items, err := client.GetPackingList(ctx, tripID)
			if err != nil {
				return err
			}
			for _, item := range items {
				if item.ID != itemID {
					continue
				}
				updated, err := client.UpdateItem(ctx, itemID, &api.ItemRequest{
					TripID:    tripID,
					Name:      item.Name,
					Quantity:  item.Quantity,
					Notes:     item.Notes,
					Packed:    !item.Packed,
					Returning: item.Returning,
				})
				if err != nil {
					return err
				}
				if updated.Packed {
					cli.Success("Packed %s.", updated.Name)
				} else {
					cli.Success("Unpacked %s.", updated.Name)
				}
				return nil
			}
			return fmt.Errorf("item %d not found on trip %d", itemID, tripID)
		},
	}
}

func newRemoveCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove an item from its packing list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0], "item")
			if err != nil {
				return err
			}
			if err := client.DeleteItem(cmd.Context(), itemID); err != nil {
				return err
			}
			cli.Success("Removed item #%d.", itemID)
			return nil
		},
	}
}

func parseID(arg, kind string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid %s id %q", kind, arg)
	}
	return id, nil
}
