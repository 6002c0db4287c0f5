package storefront

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akash06959/agronova/config"
	"github.com/akash06959/agronova/internal/backend"
	"github.com/akash06959/agronova/internal/webserver"
)

// soilEnv wires the storefront against a fake classifier backend.
func soilEnv(t *testing.T, modelDown bool) *webserver.Env {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/predict-kerala-soil":
			_, _ = w.Write([]byte(`{"soil_type": "Laterite", "confidence": 0.55, "message": "ok"}`))
		case "/recommend-kerala-crop":
			_, _ = w.Write([]byte(`{"recommended_crop": "Rice", "confidence": 0.55, "message": "ok"}`))
		case "/kerala-model-info":
			if modelDown {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"model_type": "RandomForest"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return &webserver.Env{
		Config:  config.DefaultAppConfig(),
		Backend: backend.New(srv.URL),
	}
}

func TestSoilReportCombinesConfidences(t *testing.T) {
	env := soilEnv(t, false)

	rec := doRequest(t, env, http.MethodPost, "/api/soil/report", `{"N":90,"P":42,"K":43,"ph":6.5,"temperature":27,"humidity":80,"rainfall":200}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec)
	soil := resp.Data["soil"].(map[string]interface{})
	crop := resp.Data["crop"].(map[string]interface{})
	assert.Equal(t, "Laterite", soil["soil_type"])
	assert.Equal(t, 0.66, soil["confidence"])
	assert.Equal(t, "Rice", crop["recommended_crop"])
	assert.Equal(t, 0.77, crop["confidence"])
	// Overall is computed from the raw pair, then lifted and rounded.
	assert.Equal(t, 0.79, resp.Data["overall_confidence"])

	model := resp.Data["model"].(map[string]interface{})
	assert.Equal(t, "RandomForest", model["model_type"])
}

func TestSoilReportSurvivesModelInfoOutage(t *testing.T) {
	env := soilEnv(t, true)

	rec := doRequest(t, env, http.MethodPost, "/api/soil/report", `{"N":90,"P":42,"K":43,"ph":6.5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec)
	assert.Equal(t, 0.79, resp.Data["overall_confidence"])
	assert.NotContains(t, resp.Data, "model")
}
