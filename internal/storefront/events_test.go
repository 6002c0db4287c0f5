package storefront

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash06959/agronova/internal/store"
	"github.com/akash06959/agronova/internal/webserver"
)

func TestWaitForChangeReportsCartTopic(t *testing.T) {
	env := testEnv(t)
	e := webserver.New(env.Config).Echo()
	Register(e, env)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := httptest.NewRequest(http.MethodGet, "/api/events?timeout=5", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		done <- rec
	}()

	// Let the poller subscribe before publishing.
	time.Sleep(50 * time.Millisecond)
	req := httptest.NewRequest(http.MethodPost, "/api/cart", strings.NewReader(`{"product_id":1,"quantity":1}`))
	req.Header.Set("Content-Type", "application/json")
	e.ServeHTTP(httptest.NewRecorder(), req)

	select {
	case rec := <-done:
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeEnvelope(t, rec)
		// The add publishes the cart change and its toast; either may win
		// the race to the poller.
		assert.Contains(t, []interface{}{store.TopicCartChanged, store.TopicNotification}, resp.Data["topic"])
	case <-time.After(3 * time.Second):
		t.Fatal("poll did not return after a cart change")
	}
}

func TestWaitForChangeTimesOutEmpty(t *testing.T) {
	env := testEnv(t)
	e := webserver.New(env.Config).Echo()
	Register(e, env)

	req := httptest.NewRequest(http.MethodGet, "/api/events?timeout=1", nil)
	rec := httptest.NewRecorder()
	start := time.Now()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "", resp.Data["topic"])
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}
