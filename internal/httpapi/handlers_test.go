package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workingdad365/gitops-test/internal/clientaddr"
	"github.com/workingdad365/gitops-test/internal/config"
)

func doGet(t *testing.T, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	NewRouter(config.Defaults()).ServeHTTP(rec, req)
	return rec
}

func TestIPEndpoint_ForwardedHeader(t *testing.T) {
	rec := doGet(t, "/ip", func(req *http.Request) {
		req.Header.Set(clientaddr.ForwardedForHeader, "203.0.113.7, 10.0.0.1")
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"ip": "203.0.113.7"}, body)
}

func TestIPEndpoint_PeerAddressFallback(t *testing.T) {
	rec := doGet(t, "/ip", func(req *http.Request) {
		req.RemoteAddr = "192.168.1.1:41234"
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "192.168.1.1", body["ip"])
}

func TestIPEndpoint_NoInputs(t *testing.T) {
	rec := doGet(t, "/ip", func(req *http.Request) {
		req.RemoteAddr = ""
	})

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unknown", body["ip"])
}

func TestRootEndpoint(t *testing.T) {
	rec := doGet(t, "/", func(req *http.Request) {
		req.Header.Set(clientaddr.ForwardedForHeader, " 10.0.0.5 ")
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["message"])
	assert.Equal(t, "10.0.0.5", body["ip"])
}

func TestSayHello_Default(t *testing.T) {
	rec := doGet(t, "/sayhello", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"message": "Hello!"}, body)
}

func TestSayHello_EnvOverride(t *testing.T) {
	t.Setenv(config.EnvGreetingMessage, "Hi")

	rec := doGet(t, "/sayhello", nil)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Hi", body["message"])
}

func TestSayHello_EnvReadPerCall(t *testing.T) {
	router := NewRouter(config.Defaults())

	get := func() string {
		req := httptest.NewRequest("GET", "/sayhello", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body["message"]
	}

	assert.Equal(t, "Hello!", get())

	t.Setenv(config.EnvGreetingMessage, "Hola")
	assert.Equal(t, "Hola", get())
}

func TestHealthz(t *testing.T) {
	rec := doGet(t, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestUnknownPath(t *testing.T) {
	rec := doGet(t, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
