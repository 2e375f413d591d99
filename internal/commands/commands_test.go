package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcon/internal/api"
	"mcon/internal/config"
	"mcon/internal/models"
	"mcon/internal/templates"
)

// fakeServer serves the subset of the platform API the commands use
type fakeServer struct {
	mu      sync.Mutex
	buckets []models.Bucket
	created []models.Authorization
	cells   int
	vars    int
	srv     *httptest.Server

	// templateStatus answers template fetches by ID when set
	templateStatus int
	listCalls      int
}

func newFakeServer(t *testing.T, bucketNames ...string) *fakeServer {
	t.Helper()
	f := &fakeServer{}
	for i, name := range bucketNames {
		f.buckets = append(f.buckets, models.Bucket{ID: "b" + strconv.Itoa(i), OrgID: "org1", Name: name})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v2/buckets", func(w http.ResponseWriter, r *http.Request) {
		reply(t, w, map[string]any{"buckets": f.buckets})
	})
	mux.HandleFunc("POST /api/v2/authorizations", func(w http.ResponseWriter, r *http.Request) {
		var auth models.Authorization
		require.NoError(t, json.NewDecoder(r.Body).Decode(&auth))
		f.mu.Lock()
		f.created = append(f.created, auth)
		f.mu.Unlock()
		auth.ID = "auth1"
		auth.Token = "generated-secret"
		reply(t, w, auth)
	})
	mux.HandleFunc("POST /api/v2/dashboards", func(w http.ResponseWriter, r *http.Request) {
		var d models.Dashboard
		require.NoError(t, json.NewDecoder(r.Body).Decode(&d))
		d.ID = "dash1"
		reply(t, w, d)
	})
	mux.HandleFunc("POST /api/v2/variables", func(w http.ResponseWriter, r *http.Request) {
		var v models.Variable
		require.NoError(t, json.NewDecoder(r.Body).Decode(&v))
		f.mu.Lock()
		f.vars++
		f.mu.Unlock()
		v.ID = "var-" + v.Name
		reply(t, w, v)
	})
	mux.HandleFunc("POST /api/v2/dashboards/{id}/cells", func(w http.ResponseWriter, r *http.Request) {
		var c models.Cell
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		f.mu.Lock()
		f.cells++
		c.ID = "cell" + strconv.Itoa(f.cells)
		f.mu.Unlock()
		reply(t, w, c)
	})
	mux.HandleFunc("PATCH /api/v2/dashboards/{id}/cells/{cell}/view", func(w http.ResponseWriter, r *http.Request) {
		var v models.View
		require.NoError(t, json.NewDecoder(r.Body).Decode(&v))
		v.ID = "view-" + r.PathValue("cell")
		reply(t, w, v)
	})

	system, err := templates.Load(filepath.Join("..", "templates", "testdata", "system.json"))
	require.NoError(t, err)
	mux.HandleFunc("GET /api/v2/documents/templates", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.listCalls++
		f.mu.Unlock()
		reply(t, w, map[string]any{"documents": []models.TemplateSummary{system.Summary()}})
	})
	mux.HandleFunc("GET /api/v2/documents/templates/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case f.templateStatus != 0:
			w.WriteHeader(f.templateStatus)
		case r.PathValue("id") == system.ID:
			reply(t, w, system)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func reply(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the root command with a fresh HOME and returns stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	globalConfig = config.Default()

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestTokenCreate_SpecificBuckets(t *testing.T) {
	withHome(t)
	f := newFakeServer(t, "a", "b", "c")

	out, err := run(t, "--host", f.srv.URL, "--org-id", "org1", "--token", "secret",
		"token", "create", "-d", "telegraf", "--read", "a,c", "--write", "b")
	require.NoError(t, err)

	require.Len(t, f.created, 1)
	auth := f.created[0]
	assert.Equal(t, "telegraf", auth.Description)
	assert.Equal(t, "org1", auth.OrgID)
	require.Len(t, auth.Permissions, 3)
	assert.Equal(t, models.ActionWrite, auth.Permissions[0].Action)
	assert.Equal(t, "b1", auth.Permissions[0].Resource.ID)
	assert.Equal(t, "b0", auth.Permissions[1].Resource.ID)
	assert.Equal(t, "b2", auth.Permissions[2].Resource.ID)

	assert.Contains(t, out, "generated-secret")
	assert.Contains(t, out, "3 permissions")
}

func TestTokenCreate_AllBucketsIsWildcard(t *testing.T) {
	withHome(t)
	f := newFakeServer(t, "a", "b")

	_, err := run(t, "--host", f.srv.URL, "--org-id", "org1", "--token", "secret",
		"token", "create", "--read", "a,b")
	require.NoError(t, err)

	require.Len(t, f.created, 1)
	require.Len(t, f.created[0].Permissions, 1)
	p := f.created[0].Permissions[0]
	assert.Equal(t, models.ActionRead, p.Action)
	assert.True(t, p.Resource.IsWildcard())
	assert.Equal(t, "org1", p.Resource.OrgID)
}

func TestTokenCreate_RejectsUnknownBucket(t *testing.T) {
	withHome(t)
	f := newFakeServer(t, "a", "b")

	_, err := run(t, "--host", f.srv.URL, "--org-id", "org1", "--token", "secret",
		"token", "create", "--read", "a,typo")
	require.ErrorIs(t, err, models.ErrUnknownBucket)
	assert.Contains(t, err.Error(), "typo")
	assert.Empty(t, f.created)
}

func TestTokenCreate_RequiresPermissions(t *testing.T) {
	withHome(t)
	f := newFakeServer(t, "a")

	_, err := run(t, "--host", f.srv.URL, "--org-id", "org1", "--token", "secret", "token", "create")
	require.ErrorIs(t, err, models.ErrNoPermissions)
}

func TestTokenCreate_EmptyOrganizationRequiresPermissions(t *testing.T) {
	withHome(t)
	f := newFakeServer(t)

	_, err := run(t, "--host", f.srv.URL, "--org-id", "org1", "--token", "secret", "token", "create", "-d", "x")
	require.ErrorIs(t, err, models.ErrNoPermissions)
	assert.Empty(t, f.created)
}

func TestTemplateShow_ByName(t *testing.T) {
	withHome(t)
	f := newFakeServer(t)

	out, err := run(t, "--host", f.srv.URL, "--org-id", "org1", "--token", "secret", "template", "show", "system")
	require.NoError(t, err)
	assert.Contains(t, out, "CPU Usage")
	assert.Contains(t, out, "Variables (1)")
}

func TestTemplateShow_IDLookupErrorIsReturned(t *testing.T) {
	withHome(t)
	f := newFakeServer(t)
	f.templateStatus = http.StatusUnauthorized

	_, err := run(t, "--host", f.srv.URL, "--org-id", "org1", "--token", "secret", "template", "show", "ffffffffffffffff")
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.NotErrorIs(t, err, models.ErrTemplateNotFound)
	assert.Equal(t, 0, f.listCalls)
}

func TestTemplateShow_UnknownIDFallsBackToName(t *testing.T) {
	withHome(t)
	f := newFakeServer(t)

	_, err := run(t, "--host", f.srv.URL, "--org-id", "org1", "--token", "secret", "template", "show", "ffffffffffffffff")
	require.ErrorIs(t, err, models.ErrTemplateNotFound)
	assert.Equal(t, 1, f.listCalls)
}

func TestSession_RequiresLogin(t *testing.T) {
	withHome(t)
	t.Setenv(config.EnvToken, "")

	_, err := run(t, "--org-id", "org1", "bucket", "list")
	require.ErrorIs(t, err, models.ErrNotLoggedIn)
}

func TestSession_RequiresOrganization(t *testing.T) {
	withHome(t)
	f := newFakeServer(t, "a")

	_, err := run(t, "--host", f.srv.URL, "--token", "secret", "bucket", "list")
	require.ErrorIs(t, err, models.ErrNoOrganization)
}

func TestBucketList(t *testing.T) {
	withHome(t)
	f := newFakeServer(t, "telegraf", "system")

	out, err := run(t, "--host", f.srv.URL, "--org-id", "org1", "--token", "secret", "bucket", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "telegraf")
	assert.Contains(t, out, "system")
}

func TestDashboardFromTemplateFile_RecordsHistory(t *testing.T) {
	withHome(t)
	f := newFakeServer(t)
	file, err := filepath.Abs(filepath.Join("..", "templates", "testdata", "system.json"))
	require.NoError(t, err)

	out, err := run(t, "--host", f.srv.URL, "--org-id", "org1", "--token", "secret",
		"dashboard", "from-template", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "dash1")
	assert.Contains(t, out, "2 cells")
	assert.Equal(t, 2, f.cells)
	assert.Equal(t, 1, f.vars)

	out, err = run(t, "history", "--kind", "dashboards")
	require.NoError(t, err)
	assert.Contains(t, out, "dash1")
}

func TestDashboardFromTemplate_NeedsSource(t *testing.T) {
	withHome(t)

	_, err := run(t, "--token", "secret", "dashboard", "from-template")
	require.Error(t, err)
}

func TestConfigSetAndGet(t *testing.T) {
	home := withHome(t)

	_, err := run(t, "config", "set", "--org-id", "org9", "--retry-max", "0")
	require.NoError(t, err)

	out, err := run(t, "config", "get", "org-id")
	require.NoError(t, err)
	assert.Equal(t, "org9\n", out)

	out, err = run(t, "config", "get", "retry-max")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	_, err = os.Stat(filepath.Join(home, ".mcon", "config.json"))
	assert.NoError(t, err)

	_, err = run(t, "config", "get", "nope")
	assert.Error(t, err)
}

func TestAuthLogout_RemovesToken(t *testing.T) {
	home := withHome(t)
	store := models.NewTokenStore(filepath.Join(home, ".mcon"))
	require.NoError(t, store.SaveToken("secret"))

	_, err := run(t, "auth", "logout")
	require.NoError(t, err)

	_, err = store.GetToken()
	assert.ErrorIs(t, err, models.ErrNotLoggedIn)
}
