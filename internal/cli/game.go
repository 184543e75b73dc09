package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/seabattle-go/internal/protocol"
)

func newSendCmd() *cobra.Command {
	var (
		wait       time.Duration
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "send <type> [data]",
		Short: "Register, send one game request and print the replies",
		Long: `Register with --name/--password, send a single request and print every
message received until --wait elapses with nothing new.

Examples:
  sbctl send create_room --name alice --password secret
  sbctl send add_user_to_room '{"indexRoom":"<room id>"}' --name bob --password hunter2
  sbctl send attack '{"gameId":"<game>","indexPlayer":"<id>","x":5,"y":5}' --name alice --password secret`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data json.RawMessage
			if len(args) == 2 {
				data = json.RawMessage(args[1])
			}
			return sendRequest(cmd.Context(), args[0], data, wait, jsonOutput)
		},
	}

	cmd.Flags().DurationVar(&wait, "wait", 2*time.Second, "How long to wait for further replies")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output replies as JSON lines")

	return cmd
}

func sendRequest(ctx context.Context, msgType string, data json.RawMessage, wait time.Duration, jsonOutput bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Name == "" {
		return fmt.Errorf("--name is required")
	}

	conn, err := DialGame(ctx, cfg.WSURL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	regCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Welcome messages are only interesting with --verbose
	onOther := func(env *protocol.Envelope) {
		if cfg.Verbose {
			printEvent(env, jsonOutput)
		}
	}
	if _, err := conn.Register(regCtx, cfg.Name, cfg.Password, onOther); err != nil {
		return fmt.Errorf("reg failed: %w", err)
	}

	if err := conn.Send(msgType, data); err != nil {
		return err
	}

	for {
		readCtx, cancel := context.WithTimeout(ctx, wait)
		env, err := conn.Next(readCtx)
		cancel()
		if err != nil {
			if IsTimeout(err) {
				return nil
			}
			return err
		}
		printEvent(env, jsonOutput)
	}
}
