package storefront

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash06959/agronova/config"
	"github.com/akash06959/agronova/internal/backend"
	"github.com/akash06959/agronova/internal/storage"
	"github.com/akash06959/agronova/internal/store"
	"github.com/akash06959/agronova/internal/webserver"
)

// authEnv wires the storefront against a backend that accepts logins and
// profile edits for one account.
func authEnv(t *testing.T) *webserver.Env {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/auth/login" && r.Method == http.MethodPost:
			_, _ = w.Write([]byte(`{
				"access_token": "tok-farmer",
				"token_type": "bearer",
				"user": {"id": 7, "username": "farmer", "email": "farmer@example.com", "full_name": "Farmer"}
			}`))
		case r.URL.Path == "/users/me" && r.Method == http.MethodPut:
			if r.Header.Get("Authorization") != "Bearer tok-farmer" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			var patch map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
			name, _ := patch["full_name"].(string)
			_, _ = w.Write([]byte(`{"id": 7, "username": "farmer", "email": "farmer@example.com", "full_name": "` + name + `"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	st, err := storage.Open(filepath.Join(t.TempDir(), "agronova.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	bus := EventBus.New()
	client := backend.New(srv.URL)
	env := &webserver.Env{
		Config: config.DefaultAppConfig(),
		Users: store.NewSessionStore(store.SessionConfig{
			Strategy: &store.BackendStrategy{Client: client, Node: node},
			Storage:  st,
			Key:      storage.KeyUser,
			TokenKey: storage.KeyUserToken,
			DataKey:  storage.KeyUserData,
			Bus:      bus,
		}),
		Notify:  store.NewNotifyStore(bus, time.Minute),
		Backend: client,
		Bus:     bus,
	}
	t.Cleanup(env.Notify.Close)
	return env
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	env := authEnv(t)

	rec := doRequest(t, env, http.MethodPut, "/api/profile", `{"full_name":"Nobody"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateProfileSavesAndRefreshesSession(t *testing.T) {
	env := authEnv(t)

	rec := doRequest(t, env, http.MethodPost, "/api/auth/login", `{"username":"farmer","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok-farmer", env.Users.Token())

	rec = doRequest(t, env, http.MethodPut, "/api/profile", `{"full_name":"Farmer Jo","id":99}`)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Farmer Jo", resp.Data["full_name"])

	sess, ok := env.Users.Session()
	require.True(t, ok)
	assert.Equal(t, "Farmer Jo", sess.FullName, "saved profile folds back into the session")
}
