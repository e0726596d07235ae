package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/curtisos/curtisos/internal/db"
	"github.com/curtisos/curtisos/internal/domain"
	"github.com/curtisos/curtisos/internal/intelligence"
	"github.com/curtisos/curtisos/internal/llm"
	"github.com/curtisos/curtisos/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// testEnv points the configuration at a fresh database file with AI and
// mail disabled, and returns the database path.
func testEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "curtisos.db")
	t.Setenv("DATABASE_URL", path)
	t.Setenv("CURTISOS_AI_PROVIDER", "none")
	t.Setenv("CURTISOS_LOG_LEVEL", "error")
	t.Setenv("CURTISOS_LOG_FORMAT", "json")
	for _, name := range []string{"GEMINI_API_KEY", "GMAIL_CLIENT_ID", "GMAIL_CLIENT_SECRET", "GMAIL_REFRESH_TOKEN"} {
		t.Setenv(name, "")
	}
	return path
}

// seed opens the database directly and runs fn against fresh services.
func seed(t *testing.T, path string, fn func(ctx context.Context, svc *service.Services)) {
	t.Helper()
	database, err := db.OpenDB(path)
	require.NoError(t, err)
	defer database.Close()

	model, err := llm.New(context.Background(), llm.Config{Provider: llm.ProviderNone}, nil)
	require.NoError(t, err)
	fn(context.Background(), service.New(service.Deps{DB: database, Advisor: intelligence.NewAdvisor(model, nil)}))
}

// executeCmd runs the root command and captures stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestMigrate_ReportsTables(t *testing.T) {
	testEnv(t)

	out, err := executeCmd(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "SCHEMA READY")
	for _, table := range db.Tables {
		assert.Contains(t, out, table)
	}
}

func TestRoot_MissingDatabaseURL(t *testing.T) {
	testEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := executeCmd(t, "dashboard")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestRoot_ConfigFile(t *testing.T) {
	path := testEnv(t)
	t.Setenv("DATABASE_URL", "")
	cfgPath := filepath.Join(t.TempDir(), "curtisos.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf("database:\n  url: %q\n", path)), 0o600))

	out, err := executeCmd(t, "--config", cfgPath, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "leads")
}

func TestDevPlans_ListShowAndAdvance(t *testing.T) {
	path := testEnv(t)
	var planID int64
	seed(t, path, func(ctx context.Context, svc *service.Services) {
		p := &domain.Project{Name: "Acme site"}
		require.NoError(t, svc.Projects.Create(ctx, p))
		view, err := svc.DevPlans.Create(ctx, &domain.DevPlan{ProjectID: p.ID, Name: "Bakery launch"})
		require.NoError(t, err)
		planID = view.ID
	})

	out, err := executeCmd(t, "devplans")
	require.NoError(t, err)
	assert.Contains(t, out, "Bakery launch")
	assert.Contains(t, out, "Acme site")
	assert.Contains(t, out, "● planning")

	_, err = executeCmd(t, "devplans", "advance", fmt.Sprint(planID), "--stage", "live")
	require.Error(t, err)

	out, err = executeCmd(t, "devplans", "advance", fmt.Sprint(planID), "--stage", "build")
	require.NoError(t, err)
	assert.Contains(t, out, "● build")
	assert.Contains(t, out, "✔ planning")

	out, err = executeCmd(t, "plans", fmt.Sprint(planID))
	require.NoError(t, err)
	assert.Contains(t, out, "Acme site")

	_, err = executeCmd(t, "devplans", "nope")
	assert.Error(t, err)
}

func TestExport_WritesCSVFile(t *testing.T) {
	path := testEnv(t)
	seed(t, path, func(ctx context.Context, svc *service.Services) {
		require.NoError(t, svc.Leads.Create(ctx, &domain.Lead{Name: "Dana", Company: "Acme"}))
	})

	outFile := filepath.Join(t.TempDir(), "leads.csv")
	out, err := executeCmd(t, "export", "--tables", "leads", "--format", "csv", "--out", outFile)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote")

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,"))
	assert.Contains(t, lines[1], "Acme")
}

func TestExport_StdoutJSON(t *testing.T) {
	testEnv(t)

	out, err := executeCmd(t, "export", "--tables", "tags")
	require.NoError(t, err)
	assert.Contains(t, out, `"tags"`)
}

func TestSyncEmail_NotConfigured(t *testing.T) {
	testEnv(t)

	_, err := executeCmd(t, "sync-email")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestDashboard_PrintsCounts(t *testing.T) {
	path := testEnv(t)
	seed(t, path, func(ctx context.Context, svc *service.Services) {
		require.NoError(t, svc.Leads.Create(ctx, &domain.Lead{Name: "Dana"}))
		require.NoError(t, svc.Revenue.Create(ctx, &domain.Revenue{Amount: 1500}))
	})

	out, err := executeCmd(t, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "Open leads")
	assert.Contains(t, out, "$1,500.00")

	_, err = executeCmd(t, "dashboard", "--context", "mars")
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestServe_ShutsDownWhenContextEnds(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	})}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, ln, time.Second, zap.NewNop()) }()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))
	client.CloseIdleConnections()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
