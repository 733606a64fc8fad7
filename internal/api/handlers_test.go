package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cuenta-regresiva/backend/internal/clock"
	"github.com/cuenta-regresiva/backend/internal/content"
	"github.com/cuenta-regresiva/backend/internal/i18n"
	"github.com/cuenta-regresiva/backend/internal/models"
	"github.com/cuenta-regresiva/backend/internal/page"
	"github.com/cuenta-regresiva/backend/internal/session"
	"github.com/cuenta-regresiva/backend/internal/testutil"
)

type testEnv struct {
	e        *echo.Echo
	clock    *clock.Fixed
	sessions *session.Manager
	store    *testutil.MockStorage
	profile  *models.PageProfile
}

func newTestEnv(t *testing.T, profileID string, lifetime context.Context) *testEnv {
	t.Helper()

	doc, err := content.LoadDefault()
	require.NoError(t, err)
	profile, err := doc.Profile(profileID)
	require.NoError(t, err)
	bundle, err := i18n.LoadEmbedded()
	require.NoError(t, err)

	clk := clock.NewFixed(profile.Event.Date.Add(-90061 * time.Second))
	store := testutil.NewMockStorageWithPhotos("", 12)
	store.AddFile("airplane.png", []byte("png"))
	store.AddPhotos("Monterrey", 10)
	store.AddPhotos("Madrid", 3)

	svc := page.NewService(profile, doc.Cities(), store, bundle.Localizer("es-MX"), clk, page.Options{
		MarkerImage:   "airplane.png",
		MinimumPhotos: 10,
	})
	sessions := session.NewManager(doc.Cities(), clk, 0)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	RegisterRoutes(e, NewHandlers(&Dependencies{
		Page:            svc,
		Sessions:        sessions,
		Store:           store,
		Version:         "test",
		RefreshInterval: 20 * time.Millisecond,
		Lifetime:        lifetime,
	}))

	return &testEnv{e: e, clock: clk, sessions: sessions, store: store, profile: profile}
}

func (env *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) APIError {
	t.Helper()
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestHandleHealth(t *testing.T) {
	e := echo.New()
	h := NewHealthHandler("1.2.3", "v3")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if assert.NoError(t, h.HandleHealth(c)) {
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"version":"1.2.3"`)
		assert.Contains(t, rec.Body.String(), `"profile":"v3"`)
	}
}

func TestHandlePage(t *testing.T) {
	env := newTestEnv(t, "v3", context.Background())

	rec := env.do(http.MethodGet, "/api/page", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var info models.PageInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "v3", info.Profile.ID)
	assert.True(t, info.Profile.Features.Map)
	assert.Equal(t, "/api/photos/airplane.png", info.MarkerURL)
	assert.Len(t, info.Cities, 3)
}

func TestHandleCountdown(t *testing.T) {
	env := newTestEnv(t, "v1", context.Background())

	t.Run("json", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/countdown", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var snap models.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		assert.Equal(t, "1 días, 01 horas, 01 minutos, 01 segundos", snap.Text)
		assert.False(t, snap.Completed)
		assert.Greater(t, snap.Timeline.Now, 0.9)
	})

	t.Run("msgpack", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/countdown?format=msgpack", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, MIMEApplicationMsgpack, rec.Header().Get(echo.HeaderContentType))

		var snap models.Snapshot
		require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &snap))
		assert.Equal(t, models.Breakdown{Days: 1, Hours: 1, Minutes: 1, Seconds: 1}, snap.Remaining)
	})

	t.Run("unknown format", func(t *testing.T) {
		rec := env.do(http.MethodGet, "/api/countdown?format=xml", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, rec).Code)
	})

	t.Run("past due", func(t *testing.T) {
		env.clock.Set(env.profile.Event.Date.Add(time.Hour))
		rec := env.do(http.MethodGet, "/api/countdown", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var snap models.Snapshot
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
		assert.True(t, snap.Completed)
		assert.Equal(t, models.Breakdown{}, snap.Remaining)
		assert.Equal(t, 1.0, snap.Timeline.Now)
	})
}

func TestHandleCountdownStream(t *testing.T) {
	env := newTestEnv(t, "v1", context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/countdown/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	env.e.ServeHTTP(rec, req)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	frames := strings.Count(rec.Body.String(), "data: ")
	assert.GreaterOrEqual(t, frames, 2, "stream keeps pushing until the client leaves")
	assert.Contains(t, rec.Body.String(), `"profileId":"v1"`)
}

func TestHandleCountdownStream_StopsOnShutdown(t *testing.T) {
	lifetime, stop := context.WithCancel(context.Background())
	stop()
	env := newTestEnv(t, "v1", lifetime)

	done := make(chan struct{})
	rec := httptest.NewRecorder()
	go func() {
		defer close(done)
		env.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/countdown/stream", nil))
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not stop after shutdown")
	}
	assert.GreaterOrEqual(t, strings.Count(rec.Body.String(), "data: "), 1)
}

func TestHandleTimelineChart(t *testing.T) {
	env := newTestEnv(t, "v2", context.Background())

	rec := env.do(http.MethodGet, "/api/timeline/chart.png", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))
}
