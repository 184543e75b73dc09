package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/mcoot/seabattle-go/internal/protocol"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream game protocol messages",
		Long: `Connect to the WebSocket endpoint and print every message the server sends.

With --name the connection registers first, so messages addressed to that
player (create_game, start_game, turn, attack, finish) are included.
Without it only broadcasts arrive:
  - update_room: joinable rooms changed
  - update_winners: leaderboard changed

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(cmd.Context(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// Event represents a received protocol message
type Event struct {
	Time time.Time       `json:"time"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func streamEvents(parent context.Context, jsonOutput bool) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	conn, err := DialGame(ctx, cfg.WSURL)
	if err != nil {
		return err
	}
	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}
		_ = conn.Close()
	}()

	show := func(env *protocol.Envelope) { printEvent(env, jsonOutput) }

	if cfg.Name != "" {
		index, err := conn.Register(ctx, cfg.Name, cfg.Password, show)
		if err != nil {
			return fmt.Errorf("reg failed: %w", err)
		}
		if !jsonOutput {
			fmt.Printf("Registered as %s (%s)\n", cfg.Name, index)
		}
	} else if !jsonOutput {
		fmt.Printf("Connected to %s\n", cfg.WSURL)
	}

	for {
		env, err := conn.Next(context.Background())
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) || ctx.Err() != nil {
				if !jsonOutput {
					fmt.Println("\nDisconnected")
				}
				return nil
			}
			return fmt.Errorf("stream error: %w", err)
		}
		show(env)
	}
}

func printEvent(env *protocol.Envelope, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		data := json.RawMessage(env.Data)
		if !json.Valid(data) {
			data, _ = json.Marshal(env.Data)
		}
		jsonData, _ := json.Marshal(Event{Time: now, Type: env.Type, Data: data})
		fmt.Println(string(jsonData))
		return
	}

	timestamp := now.Format("2006-01-02 15:04:05")
	// Truncate data if it's too long for display
	displayData := env.Data
	if len(displayData) > 100 {
		displayData = displayData[:100] + "..."
	}
	displayData = strings.ReplaceAll(displayData, "\n", " ")
	fmt.Printf("[%s] %s: %s\n", timestamp, env.Type, displayData)
}
