package e2e_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/seabattle-go/internal/api"
	"github.com/mcoot/seabattle-go/internal/factory"
	"github.com/mcoot/seabattle-go/internal/services/directory"
	"github.com/mcoot/seabattle-go/internal/testutil"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	wsURL      string
}

func newCLIRunner(t *testing.T, ts *testServer) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(t.TempDir(), "sbctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/sbctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  ts.httpURL,
		wsURL:      ts.wsURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--ws", r.wsURL,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer runs both listeners the way cmd/server does
type testServer struct {
	httpURL string
	wsURL   string
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := testutil.NopLogger()
	app, err := factory.New(factory.Config{Logger: logger})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go app.Run(ctx)

	require.NoError(t, app.Seed(ctx, []directory.Credentials{{Name: "gamer", Password: "gamer"}}))

	httpCfg := api.DefaultServerConfig()
	httpCfg.Host, httpCfg.Port = "127.0.0.1", 0
	httpServer := api.NewServer(api.NewRouter(api.RouterConfig{
		Logger:     logger,
		Runner:     app.Dispatcher,
		Matchmaker: app.Matchmaker,
		Directory:  app.Directory,
		Conns:      app.Hub,
		WSHandler:  app.WSServer,
	}), httpCfg, logger)

	wsCfg := httpCfg
	wsServer := api.NewServer(api.NewWSRouter(logger, app.WSServer), wsCfg, logger)

	for _, s := range []*api.Server{httpServer, wsServer} {
		s := s
		require.NoError(t, s.Listen())
		go func() {
			if err := s.Start(); err != nil {
				t.Logf("server error: %v", err)
			}
		}()
	}

	ts := &testServer{
		httpURL: "http://" + httpServer.Addr(),
		wsURL:   "ws://" + wsServer.Addr(),
	}
	waitForServer(t, ts.httpURL+"/api/v1/health")

	t.Cleanup(func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		_ = httpServer.Shutdown(shutdownCtx)
		_ = wsServer.Shutdown(shutdownCtx)
		_ = app.Close()
		cancel()
	})

	return ts
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type healthResponse struct {
	Status      string `json:"status"`
	Connections int    `json:"connections"`
}

type roomResponse struct {
	ID    string `json:"id"`
	Users []struct {
		Name  string `json:"name"`
		Index string `json:"index"`
	} `json:"users"`
}

type winnerResponse struct {
	Name string `json:"name"`
	Wins int    `json:"wins"`
}

type eventLine struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func parseEvents(t *testing.T, output string) []eventLine {
	t.Helper()

	var events []eventLine
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var e eventLine
		require.NoError(t, json.Unmarshal([]byte(line), &e), "line: %s", line)
		events = append(events, e)
	}
	return events
}

func TestCLI(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping CLI e2e test in short mode")
	}

	ts := startTestServer(t)
	cli := newCLIRunner(t, ts)

	t.Run("health", func(t *testing.T) {
		out, err := cli.run("health")
		require.NoError(t, err, out)

		var resp healthResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, "ok", resp.Status)
	})

	t.Run("winners empty", func(t *testing.T) {
		out, err := cli.run("winners")
		require.NoError(t, err, out)

		var resp []winnerResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Empty(t, resp)
	})

	t.Run("seeded player logs in", func(t *testing.T) {
		out, err := cli.run("send", "create_room", "--name", "gamer", "--password", "gamer", "--json", "--wait", "500ms")
		require.NoError(t, err, out)

		events := parseEvents(t, out)
		require.NotEmpty(t, events)
		assert.Equal(t, "update_room", events[0].Type)
	})

	t.Run("rooms lists the new room", func(t *testing.T) {
		out, err := cli.run("rooms")
		require.NoError(t, err, out)

		var resp []roomResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		require.Len(t, resp, 1)
		require.Len(t, resp[0].Users, 1)
		assert.Equal(t, "gamer", resp[0].Users[0].Name)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		out, err := cli.run("send", "create_room", "--name", "gamer", "--password", "nope")
		assert.Error(t, err)
		assert.Contains(t, out, "Incorrect password")
	})

	t.Run("join pairs players", func(t *testing.T) {
		out, err := cli.run("rooms")
		require.NoError(t, err, out)
		var rooms []roomResponse
		require.NoError(t, json.Unmarshal([]byte(out), &rooms))
		require.Len(t, rooms, 1)

		data := `{"indexRoom":"` + rooms[0].ID + `"}`
		out, err = cli.run("send", "add_user_to_room", data, "--name", "rookie", "--password", "pw", "--json", "--wait", "500ms")
		require.NoError(t, err, out)

		var types []string
		for _, e := range parseEvents(t, out) {
			types = append(types, e.Type)
		}
		// The seeded player's connection is gone, so only this side is told
		assert.Contains(t, types, "create_game")

		out, err = cli.run("rooms")
		require.NoError(t, err, out)
		assert.JSONEq(t, `[]`, out)
	})
}
