package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClientPrintsResponse(t *testing.T) {
	var gotMethod, gotPath, gotBody, gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotMethod, gotPath, gotBody, gotType = r.Method, r.URL.Path, string(body), r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	defer server.Close()

	var out bytes.Buffer
	client := newAPIClient(server.URL+"/", &out)
	require.NoError(t, client.do(context.Background(), http.MethodPost, "/users", bytes.NewBufferString(`{"name":"Ada"}`)))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/users", gotPath)
	assert.Equal(t, `{"name":"Ada"}`, gotBody)
	assert.Equal(t, "application/json", gotType)
	assert.Contains(t, out.String(), "← 201 Created")
	assert.Contains(t, out.String(), `{"id":1}`)
}

func TestAPIClientTransportError(t *testing.T) {
	client := newAPIClient("http://127.0.0.1:1", io.Discard)

	assert.Error(t, client.do(context.Background(), http.MethodGet, "/items", nil))
}

func TestResourceArg(t *testing.T) {
	path, err := resourceArg([]string{"items"})
	require.NoError(t, err)
	assert.Equal(t, "/items", path)

	_, err = resourceArg([]string{"widgets"})
	assert.Error(t, err)
}
