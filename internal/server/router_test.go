package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canvas/internal/database"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type artworkJSON struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	ArtistEmail string `json:"artistEmail"`
	Visibility  string `json:"visibility"`
	Likes       int64  `json:"likes"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	m := database.NewManager(database.ManagerConfig{
		DSN:         fmt.Sprintf("file:e2e_%s?mode=memory&cache=shared", name),
		Options:     database.Options{Silent: true},
		AutoMigrate: true,
	})
	t.Cleanup(func() { _ = m.Close() })

	log, _ := test.NewNullLogger()
	return NewRouter(m, Options{Logger: log})
}

func do(t *testing.T, r http.Handler, method, path string, body any, headers ...string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

func ids(items []artworkJSON) []string {
	out := make([]string, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID)
	}
	return out
}

func TestRouter_VisibilityFlow(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/artworks", map[string]any{
		"title":       "Harbor",
		"artistEmail": "a@x.com",
		"visibility":  "Public",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[artworkJSON](t, env)
	require.NotEmpty(t, created.ID)

	_, env = do(t, r, http.MethodGet, "/api/v1/artworks", nil)
	assert.Contains(t, ids(decode[[]artworkJSON](t, env)), created.ID)

	w, env = do(t, r, http.MethodPatch, "/api/v1/artworks/"+created.ID, map[string]any{"visibility": "Private"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, map[string]int64{"matchedCount": 1}, decode[map[string]int64](t, env))

	_, env = do(t, r, http.MethodGet, "/api/v1/artworks", nil)
	assert.NotContains(t, ids(decode[[]artworkJSON](t, env)), created.ID)

	_, env = do(t, r, http.MethodGet, "/api/v1/artworks/recent", nil)
	assert.NotContains(t, ids(decode[[]artworkJSON](t, env)), created.ID)

	_, env = do(t, r, http.MethodGet, "/api/v1/artworks?email=A@x.com", nil)
	assert.Equal(t, []string{created.ID}, ids(decode[[]artworkJSON](t, env)))
}

func TestRouter_GetArtworkErrors(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/v1/artworks/not-an-id", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/api/v1/artworks/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestRouter_UpdateValidationAndProtectedFields(t *testing.T) {
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodPost, "/api/v1/artworks", map[string]any{"title": "x"}, "X-User-Email", "owner@x.com")
	created := decode[artworkJSON](t, env)
	assert.Equal(t, "owner@x.com", created.ArtistEmail)

	w, env := do(t, r, http.MethodPatch, "/api/v1/artworks/"+created.ID, map[string]any{"visibility": "Hidden"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	for i := 0; i < 3; i++ {
		w, env = do(t, r, http.MethodPatch, "/api/v1/artworks/"+created.ID+"/like", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[string]int64{"modifiedCount": 1}, decode[map[string]int64](t, env))
	}

	w, _ = do(t, r, http.MethodPut, "/api/v1/artworks/"+created.ID, map[string]any{"likes": 1000, "_id": "x", "title": "y"})
	require.Equal(t, http.StatusOK, w.Code)

	_, env = do(t, r, http.MethodGet, "/api/v1/artworks/"+created.ID, nil)
	got := decode[artworkJSON](t, env)
	assert.Equal(t, int64(3), got.Likes)
	assert.Equal(t, "y", got.Title)
	assert.Equal(t, created.ID, got.ID)
}

func TestRouter_CreateArtworkRequiresOwner(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/v1/artworks", map[string]any{"title": "orphan"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestRouter_DeleteIsIdempotent(t *testing.T) {
	r := newTestRouter(t)
	_, env := do(t, r, http.MethodPost, "/api/v1/artworks", map[string]any{"artistEmail": "a@x.com"})
	created := decode[artworkJSON](t, env)

	_, env = do(t, r, http.MethodDelete, "/api/v1/artworks/"+created.ID, nil)
	assert.Equal(t, map[string]int64{"deletedCount": 1}, decode[map[string]int64](t, env))

	w, env := do(t, r, http.MethodDelete, "/api/v1/artworks/"+created.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int64{"deletedCount": 0}, decode[map[string]int64](t, env))

	w, _ = do(t, r, http.MethodDelete, "/api/v1/artworks/nope", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_FavoritesConflictAndResolve(t *testing.T) {
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodPost, "/api/v1/artworks", map[string]any{
		"title": "Keep", "artistEmail": "a@x.com", "artistName": "Ann", "category": "Oil",
	})
	keep := decode[artworkJSON](t, env)
	_, env = do(t, r, http.MethodPost, "/api/v1/artworks", map[string]any{"title": "Gone", "artistEmail": "a@x.com"})
	gone := decode[artworkJSON](t, env)

	w, _ := do(t, r, http.MethodPost, "/api/v1/favorites", map[string]any{"artworkId": keep.ID, "userEmail": "u@x.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = do(t, r, http.MethodPost, "/api/v1/favorites", map[string]any{"artworkId": keep.ID}, "X-User-Email", "U@x.com")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	w, env = do(t, r, http.MethodPost, "/api/v1/favorites", map[string]any{"artworkId": strings.ToUpper(keep.ID), "userEmail": "u@x.com"})
	assert.Equal(t, http.StatusConflict, w.Code, "uuid case variants are the same pair")

	_, env = do(t, r, http.MethodGet, "/api/v1/favorites/count?artworkId="+strings.ToUpper(keep.ID), nil)
	assert.Equal(t, map[string]any{"artworkId": keep.ID, "count": float64(1)}, decode[map[string]any](t, env))

	w, _ = do(t, r, http.MethodPost, "/api/v1/favorites", map[string]any{"artworkId": gone.ID, "userEmail": "u@x.com"})
	require.Equal(t, http.StatusCreated, w.Code)

	_, env = do(t, r, http.MethodGet, "/api/v1/favorites/check?artworkId="+keep.ID+"&email=u@x.com", nil)
	assert.Equal(t, map[string]bool{"isFavorite": true}, decode[map[string]bool](t, env))

	_, _ = do(t, r, http.MethodDelete, "/api/v1/artworks/"+gone.ID, nil)

	_, env = do(t, r, http.MethodGet, "/api/v1/favorites?email=u@x.com", nil)
	assert.Len(t, decode[[]map[string]any](t, env), 2, "favorites are not cascaded")

	_, env = do(t, r, http.MethodGet, "/api/v1/favorites/resolved?email=u@x.com", nil)
	resolved := decode[[]map[string]any](t, env)
	require.Len(t, resolved, 1)
	assert.Equal(t, keep.ID, resolved[0]["artworkId"])
	assert.Equal(t, "Keep", resolved[0]["title"])
	assert.Equal(t, "Ann", resolved[0]["artistName"])
	assert.Equal(t, "Oil", resolved[0]["category"])

	_, env = do(t, r, http.MethodDelete, "/api/v1/favorites?artworkId="+keep.ID+"&email=u@x.com", nil)
	assert.Equal(t, map[string]int64{"deletedCount": 1}, decode[map[string]int64](t, env))
	w, env = do(t, r, http.MethodDelete, "/api/v1/favorites?artworkId="+keep.ID+"&email=u@x.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int64{"deletedCount": 0}, decode[map[string]int64](t, env))

	w, env = do(t, r, http.MethodGet, "/api/v1/favorites/resolved", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "EMAIL_REQUIRED", env.Error.Code)
}

func TestRouter_UserCreatedTwice(t *testing.T) {
	r := newTestRouter(t)

	type created struct {
		User struct {
			ID    string `json:"_id"`
			Email string `json:"email"`
			Name  string `json:"name"`
			Role  string `json:"role"`
		} `json:"user"`
		Created bool `json:"created"`
	}

	w, env := do(t, r, http.MethodPost, "/api/v1/users", map[string]any{"email": "Ann@x.com", "name": "Ann"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	first := decode[created](t, env)
	assert.True(t, first.Created)
	assert.Equal(t, "member", first.User.Role)

	w, env = do(t, r, http.MethodPost, "/api/v1/users", map[string]any{"email": "ann@x.com", "name": "Impostor"})
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[created](t, env)
	assert.False(t, second.Created)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Ann", second.User.Name)

	_, env = do(t, r, http.MethodGet, "/api/v1/users", nil)
	list := decode[struct {
		Total int64 `json:"total"`
	}](t, env)
	assert.Equal(t, int64(1), list.Total)
}

func TestRouter_UserLifecycle(t *testing.T) {
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodPost, "/api/v1/users", map[string]any{"email": "bo@x.com"})
	id := decode[struct {
		User struct {
			ID string `json:"_id"`
		} `json:"user"`
	}](t, env).User.ID

	w, _ := do(t, r, http.MethodPatch, "/api/v1/users/profile", map[string]any{"name": "Bo", "photoURL": "bo.png"}, "X-User-Email", "bo@x.com")
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodPatch, "/api/v1/users/"+id+"/role", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = do(t, r, http.MethodPatch, "/api/v1/users/"+id+"/role", map[string]any{"role": "owner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ROLE", env.Error.Code)

	_, env = do(t, r, http.MethodGet, "/api/v1/users/by-email?email=BO@x.com", nil)
	u := decode[map[string]any](t, env)
	assert.Equal(t, "Bo", u["name"])
	assert.Equal(t, "bo.png", u["photoURL"])
	assert.Equal(t, "admin", u["role"])

	_, env = do(t, r, http.MethodGet, "/api/v1/users?role=admin", nil)
	assert.Equal(t, float64(1), decode[map[string]any](t, env)["total"])

	_, env = do(t, r, http.MethodDelete, "/api/v1/users/"+id, nil)
	assert.Equal(t, map[string]int64{"deletedCount": 1}, decode[map[string]int64](t, env))

	w, _ = do(t, r, http.MethodGet, "/api/v1/users/by-email?email=bo@x.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SetRoleWithChunkedEmptyBody(t *testing.T) {
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodPost, "/api/v1/users", map[string]any{"email": "cy@x.com"})
	id := decode[struct {
		User struct {
			ID string `json:"_id"`
		} `json:"user"`
	}](t, env).User.ID

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/users/"+id+"/role", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/json")
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	_, env = do(t, r, http.MethodGet, "/api/v1/users/by-email?email=cy@x.com", nil)
	assert.Equal(t, "admin", decode[map[string]any](t, env)["role"])
}

func TestRouter_AdminStats(t *testing.T) {
	r := newTestRouter(t)
	_, _ = do(t, r, http.MethodPost, "/api/v1/users", map[string]any{"email": "a@x.com"})
	_, _ = do(t, r, http.MethodPost, "/api/v1/artworks", map[string]any{"artistEmail": "a@x.com"})

	w, env := do(t, r, http.MethodGet, "/api/v1/admin/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	stats := decode[map[string]any](t, env)
	assert.Equal(t, float64(1), stats["totalUsers"])
	assert.Equal(t, float64(1), stats["totalArtworks"])
	assert.Equal(t, float64(0), stats["totalFavorites"])
	assert.Nil(t, stats["revenue"])
	assert.Nil(t, stats["growth"])
	assert.Equal(t, true, stats["estimated"])
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Canvas Running On Server!", w.Body.String())

	w, env := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sqlite", decode[map[string]string](t, env)["database"])

	w, _ = do(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "canvas_db_connection_opens 1")
	assert.Contains(t, w.Body.String(), `route="/health"`)
}

func TestRouter_MissingConnectionTarget(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := NewRouter(database.NewManager(database.ManagerConfig{}), Options{Logger: log})

	w, env := do(t, r, http.MethodGet, "/api/v1/artworks", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "CONFIGURATION_ERROR", env.Error.Code)

	w, env = do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "UNAVAILABLE", env.Error.Code)
}
