package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"poster_events/internal/auth"
	"poster_events/internal/config"
	"poster_events/internal/extract"
	"poster_events/internal/handlers"
	"poster_events/internal/metrics"
	"poster_events/internal/models"
	"poster_events/internal/response"
	"poster_events/internal/storage"
	"poster_events/internal/ws"
)

func TestVersionFlag(t *testing.T) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := RunWithArgs("0.1.0-test", []string{"--version"})

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)

	assert.NoError(t, err)
	assert.Equal(t, "poster-events 0.1.0-test", strings.TrimSpace(buf.String()))
}

func TestCommandsRegistered(t *testing.T) {
	parser, _, _ := buildParser("test")
	for _, name := range []string{"serve", "analyze", "migrate", "token"} {
		assert.NotNil(t, parser.Find(name), name)
	}
}

func TestAnalyzeRequiresFile(t *testing.T) {
	parser, _, _ := buildParser("test")
	_, err := parser.ParseArgs([]string{"analyze"})
	assert.Error(t, err)
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := storage.Open(config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "cli.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { storage.Close(db) })
	return db
}

type stubModel struct{ text string }

func (m stubModel) Generate(context.Context, string, []byte, string) (string, error) {
	return m.text, nil
}

func TestAnalyzeCommand(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	path := filepath.Join(t.TempDir(), "poster.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	var out bytes.Buffer
	cmd := &AnalyzeCommand{File: path, globals: &GlobalFlags{}, out: &out}
	db := testDB(t)

	err = cmd.executeWith(context.Background(), db, stubModel{
		text: `{"title": "Robotics Meetup", "event_date": "2024-09-01", "event_time": "6 pm"}`,
	})
	require.NoError(t, err)

	var ev response.EventResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &ev))
	assert.Equal(t, "Robotics Meetup", *ev.Title)
	assert.Equal(t, "2024-09-01", *ev.EventDate)
	assert.Equal(t, "18:00:00", *ev.EventTime)

	var n int64
	require.NoError(t, db.Model(&models.Poster{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestAnalyzeCommand_MissingFile(t *testing.T) {
	cmd := &AnalyzeCommand{File: filepath.Join(t.TempDir(), "nope.png"), globals: &GlobalFlags{}}
	err := cmd.executeWith(context.Background(), testDB(t), stubModel{})
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_UPLOAD_SECRET", "cli-secret")

	var out bytes.Buffer
	cmd := &TokenCommand{Subject: "alice", TTL: time.Hour, globals: &GlobalFlags{}, out: &out}
	require.NoError(t, cmd.Execute(nil))

	subject, err := auth.ParseToken(strings.TrimSpace(out.String()), []byte("cli-secret"))
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestTokenCommand_NoSecret(t *testing.T) {
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("JWT_UPLOAD_SECRET", "")

	cmd := &TokenCommand{Subject: "alice", TTL: time.Hour, globals: &GlobalFlags{}, out: &bytes.Buffer{}}
	assert.Error(t, cmd.Execute(nil))
}

func TestMigrateCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.db")
	t.Setenv("ENV_CHEK", "1")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)

	require.NoError(t, (&MigrateCommand{globals: &GlobalFlags{}}).Execute(nil))

	db, err := storage.Open(config.DBConfig{Driver: "sqlite", SQLitePath: path})
	require.NoError(t, err)
	defer storage.Close(db)
	assert.True(t, db.Migrator().HasTable(&models.Poster{}))
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testDB(t)
	require.NoError(t, storage.Migrate(db))
	store := storage.NewEventStore(db)

	cfg := config.DefaultConfig()
	cfg.Auth.UploadSecret = "router-secret"

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	hub := ws.NewHub()
	go hub.Run()
	defer hub.Stop()

	pipeline := extract.NewPipeline(stubModel{}, store)
	h := handlers.New(pipeline, store, 1<<20, func(ctx context.Context) error { return storage.Ping(ctx, db) })
	r := newRouter(cfg, h, hub, m, reg)

	do := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	rec := do(http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(handlers.RequestIDHeader))

	rec = do(http.MethodPost, "/analyze-poster")
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "upload is guarded when a secret is configured")

	rec = do(http.MethodGet, "/events/upcoming")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = do(http.MethodGet, "/swagger/doc.json")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/analyze-poster")

	rec = do(http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `poster_http_requests_total{method="GET",route="/healthz",status="200"} 1`)
}
