package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/brewduel/internal/api"
	"github.com/mcoot/brewduel/internal/factory"
	redisstorage "github.com/mcoot/brewduel/internal/storage/redis"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "brewctl-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/brewctl")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
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

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T, cfg factory.Config) *testServer {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	cfg.Logger = logger

	app, err := factory.New(cfg)
	require.NoError(t, err)

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		Matchmaker:      app.Matchmaker,
		ResultSubmitter: app.ResultsController,
		Rooms:           app.RoomService,
		Snapshotter:     app.RoomService,
		DebugEndpoints:  true,
	})

	serverCfg := api.DefaultServerConfig()
	serverCfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(router, serverCfg, logger)

	go func() {
		if err := server.Serve(listener); err != nil {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := "http://" + listener.Addr().String()
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		addr: serverURL,
		shutdown: func() {
			_ = server.Shutdown(context.Background())
			_ = app.Close()
		},
	}
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
type joinResponse struct {
	RoomID string `json:"roomId"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type roomResponse struct {
	ID      string  `json:"id"`
	Player1 string  `json:"player1"`
	Player2 *string `json:"player2"`
	Status  string  `json:"status"`
}

type outcomeResponse struct {
	Winner       string  `json:"winner"`
	Player1Score float64 `json:"player1Score"`
	Player2Score float64 `json:"player2Score"`
	Margin       float64 `json:"margin"`
}

type submissionResponse struct {
	Status  string           `json:"status"`
	Winner  string           `json:"winner"`
	Results *outcomeResponse `json:"results"`
	Message string           `json:"message"`
}

type healthResponse struct {
	Status string `json:"status"`
}

func decode[T any](t *testing.T, output string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(output), &v), "output: %s", output)
	return v
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t, factory.Config{})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "ok", decode[healthResponse](t, output).Status)
}

func TestCLI_FullMatchFlow(t *testing.T) {
	ts := startTestServer(t, factory.Config{})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	runMatch(t, cli)
}

func TestCLI_FullMatchFlowRedis(t *testing.T) {
	mini := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	ts := startTestServer(t, factory.Config{
		StorageType: factory.StorageTypeRedis,
		RedisConfig: &redisCfg,
	})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	runMatch(t, cli)
}

func runMatch(t *testing.T, cli *cliRunner) {
	t.Helper()

	// Step 1: two wallets join
	output, err := cli.run("join", "alice")
	require.NoError(t, err, "output: %s", output)
	alice := decode[joinResponse](t, output)
	assert.Equal(t, "waiting", alice.Status)

	output, err = cli.run("join", "bob")
	require.NoError(t, err, "output: %s", output)
	bob := decode[joinResponse](t, output)
	assert.Equal(t, alice.RoomID, bob.RoomID)
	assert.Equal(t, "matched", bob.Status)

	output, err = cli.run("room", "get", alice.RoomID)
	require.NoError(t, err, "output: %s", output)
	room := decode[roomResponse](t, output)
	assert.Equal(t, "active", room.Status)
	require.NotNil(t, room.Player2)
	assert.Equal(t, "bob", *room.Player2)

	// Step 2: results are not ready until both report
	output, err = cli.run("submit", alice.RoomID, "alice", "--resource", "100", "--duration", "10")
	require.NoError(t, err, "output: %s", output)
	assert.Equal(t, "waiting_for_opponent", decode[submissionResponse](t, output).Status)

	output, err = cli.run("result", alice.RoomID)
	assert.Error(t, err)
	assert.Contains(t, output, "NOT_READY")

	// Step 3: second report completes the match
	output, err = cli.run("submit", alice.RoomID, "bob", "--resource", "200", "--duration", "20")
	require.NoError(t, err, "output: %s", output)
	completed := decode[submissionResponse](t, output)
	assert.Equal(t, "completed", completed.Status)
	assert.Equal(t, "player1", completed.Winner)

	output, err = cli.run("result", alice.RoomID)
	require.NoError(t, err, "output: %s", output)
	outcome := decode[outcomeResponse](t, output)
	assert.Equal(t, "player1", outcome.Winner)
	assert.Equal(t, 60.0, outcome.Player1Score)
	assert.Equal(t, 30.0, outcome.Player2Score)
	assert.Equal(t, 30.0, outcome.Margin)
}

func TestCLI_Duel(t *testing.T) {
	ts := startTestServer(t, factory.Config{})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	for i := 0; i < 3; i++ {
		output, err := cli.run("duel",
			"--wallet1", fmt.Sprintf("red-%d", i),
			"--wallet2", fmt.Sprintf("blue-%d", i),
			"--resource1", "300", "--duration1", "30",
			"--resource2", "100", "--duration2", "10")
		require.NoError(t, err, "output: %s", output)

		var duel struct {
			RoomID string             `json:"roomId"`
			Result submissionResponse `json:"result"`
		}
		require.NoError(t, json.Unmarshal([]byte(output), &duel), "output: %s", output)
		assert.Equal(t, "player2", duel.Result.Winner)
	}

	output, err := cli.run("room", "list")
	require.NoError(t, err, "output: %s", output)
	assert.Len(t, decode[[]roomResponse](t, output), 3)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t, factory.Config{})
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("room", "get", "room_missing")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")

	output, err = cli.run("submit", "room_x", "alice", "--resource", "0", "--duration", "10")
	assert.Error(t, err)
	assert.Contains(t, output, "INVALID_REQUEST")
}
