package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samurai-rail/ticketing/internal/handler"
)

func TestGetHealth_200(t *testing.T) {
	h := newRouter(nil, nil, nil, nil)

	rec := doRequest(t, h, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "ok", got["status"])
}

func TestGetOpenAPI(t *testing.T) {
	doc := []byte("openapi: \"3.0.3\"\n")
	h := handler.NewServer(nil, nil, nil, nil, doc).Routes()

	rec := doRequest(t, h, http.MethodGet, "/openapi.yaml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Equal(t, doc, rec.Body.Bytes())

	// Without an embedded document the route is simply absent.
	rec = doRequest(t, newRouter(nil, nil, nil, nil), http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
