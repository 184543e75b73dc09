package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case HealthResult:
		o.printHealthResult(v)
	case RoomList:
		o.printRooms(v)
	case WinnerList:
		o.printWinners(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// HealthResult response type
type HealthResult struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
}

// RoomUser response type
type RoomUser struct {
	Name  string `json:"name"`
	Index string `json:"index"`
}

// Room response type (matches API)
type Room struct {
	ID        string     `json:"id"`
	Users     []RoomUser `json:"users"`
	CreatedAt time.Time  `json:"created_at"`
}

// RoomList is the rooms endpoint response
type RoomList []Room

// Winner response type
type Winner struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

// WinnerList is the winners endpoint response
type WinnerList []Winner

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
	fmt.Printf("Connections: %d\n", h.Connections)
}

func (o *Output) printRooms(rooms RoomList) {
	if len(rooms) == 0 {
		fmt.Println("No rooms waiting")
		return
	}
	fmt.Printf("Rooms (%d):\n", len(rooms))
	for _, r := range rooms {
		names := make([]string, len(r.Users))
		for i, u := range r.Users {
			names[i] = u.Name
		}
		fmt.Printf("  - %s: %s (since %s)\n", r.ID, strings.Join(names, ", "), r.CreatedAt.Format("15:04:05"))
	}
}

func (o *Output) printWinners(winners WinnerList) {
	if len(winners) == 0 {
		fmt.Println("No winners yet")
		return
	}
	for i, w := range winners {
		fmt.Printf("%2d. %-20s %d\n", i+1, w.Name, w.Wins)
	}
}
