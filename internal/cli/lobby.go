package cli

import (
	"github.com/spf13/cobra"
)

func newRoomsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List rooms waiting for a second player",
		RunE: func(cmd *cobra.Command, args []string) error {
			var rooms RoomList

			if err := client.Get(cmd.Context(), "/api/v1/rooms", &rooms); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(rooms)
			return nil
		},
	}
}

func newWinnersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "winners",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var winners WinnerList

			if err := client.Get(cmd.Context(), "/api/v1/winners", &winners); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(winners)
			return nil
		},
	}
}
