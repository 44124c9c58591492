package assistant

import (
	"encoding/json"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/packpal/packpal/api"
	"github.com/packpal/packpal/draft"
	"github.com/packpal/packpal/internal/cli"
	"github.com/packpal/packpal/internal/configuration"
	"github.com/packpal/packpal/session"
	"github.com/packpal/packpal/store"
)

// NewCmd instantiates and returns the assistant command.
func NewCmd(config *configuration.Config, client *api.Client) *cobra.Command {
	var opts struct {
		Resume bool
	}
	cmd := &cobra.Command{
		Use:   "assistant <trip-id>",
		Short: "Edit a trip and its packing list with the assistant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tripID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid trip id %q", args[0])
			}

			journal, err := store.New(config.Assistant.JournalPath)
			if err != nil {
				return errors.Wrap(err, "opening draft journal")
			}
			defer journal.Close()

			var s *session.Session
			if opts.Resume {
				entry, err := journal.Get(tripID)
				if err != nil {
					return errors.Wrap(err, "reading draft journal")
				}
				if entry == nil {
					return fmt.Errorf("no saved draft for trip %d", tripID)
				}
				var recovered draft.Snapshot
				if err := json.Unmarshal(entry.Snapshot, &recovered); err != nil {
					return errors.Wrap(err, "decoding saved draft")
				}
				s, err = session.Resume(ctx, client, tripID, recovered)
				if err != nil {
					return err
				}
			} else {
				s, err = session.Load(ctx, client, tripID)
				if err != nil {
					return err
				}
			}

			m, err := New(ctx, config, s, journal)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithMouseCellMotion(),
			)

			// Set the program reference for async message sending
			m.SetProgram(p)

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running assistant: %w", err)
			}

			// Report the outcome once the alternate screen is gone.
			switch s.Transaction().State() {
			case session.Committed:
				snapshot := s.Snapshot()
				cli.Success("Saved '%s'.", snapshot.Trip.Name)
				printSnapshot(snapshot)
			case session.Discarded:
				cli.Title("Draft discarded. '%s' is unchanged on the server.", s.Original().Trip.Name)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Resume, "resume", "r", false, "Resume the saved draft for this trip")
	return cmd
}

func printSnapshot(snapshot draft.Snapshot) {
	cli.Separator()
	cli.Field("Name", snapshot.Trip.Name)
	cli.Field("Dates", fmt.Sprintf("%s to %s", snapshot.Trip.StartDate, snapshot.Trip.EndDate))
	if snapshot.Trip.Description != "" {
		cli.Field("About", snapshot.Trip.Description)
	}
	cli.Separator()
	for _, item := range snapshot.Items {
		check := "[ ]"
		if item.Packed {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s ×%d", check, item.Name, item.Quantity)
		if item.Notes != "" {
			line += "  " + item.Notes
		}
		cli.Value("%s", line)
	}
}
