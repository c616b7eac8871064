package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gymkeeper/internal/models"
	"github.com/iudanet/gymkeeper/pkg/api"
)

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL, "token")

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.Equal(t, "token", client.token)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)

	client = NewClient(baseURL, "", WithTimeout(5*time.Second))
	assert.Equal(t, 5*time.Second, client.httpClient.Timeout)
}

// TestClient_SetToken проверяет, что новый токен уходит в следующих запросах
func TestClient_SetToken(t *testing.T) {
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.Health(context.Background())
	require.NoError(t, err)

	client.SetToken("rotated")
	_, err = client.Health(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer rotated"}, got)
}

// TestClient_Push проверяет отправку пакета и заголовки запроса
func TestClient_Push(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sync/push", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req api.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Changes, 1)
		assert.Equal(t, "s1", req.Changes[0].ClientID)

		_ = json.NewEncoder(w).Encode(api.PushResponse{
			ServerTimestamp: ts,
			Results:         []api.ChangeResult{{ClientID: "s1", ServerID: "srv-1", Success: true}},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret")
	resp, err := client.Push(context.Background(), &api.PushRequest{
		Changes: []api.Change{{
			TableName:       string(models.TableSessions),
			Operation:       string(models.OperationCreate),
			ClientID:        "s1",
			ClientUpdatedAt: ts,
			Data:            json.RawMessage(`{}`),
		}},
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "srv-1", resp.Results[0].ServerID)
	assert.True(t, resp.ServerTimestamp.Equal(ts))
}

// TestClient_Pull проверяет передачу since
func TestClient_Pull(t *testing.T) {
	since := time.Date(2026, 3, 1, 10, 0, 0, 500, time.UTC)

	var gotQuery []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/sync/pull", r.URL.Path)
		gotQuery = append(gotQuery, r.URL.Query().Get("since"))
		_ = json.NewEncoder(w).Encode(api.PullResponse{ServerTimestamp: since})
	}))
	defer server.Close()

	client := NewClient(server.URL, "")

	_, err := client.Pull(context.Background(), time.Time{})
	require.NoError(t, err)
	_, err = client.Pull(context.Background(), since)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "2026-03-01T10:00:00.0000005Z"}, gotQuery)
}

// TestClient_Health проверяет health endpoint без токена
func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/health", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok", Version: "test"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL, "").Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

// TestClient_TransportErrors проверяет, что все отказы обмена возвращаются как TransportError
func TestClient_TransportErrors(t *testing.T) {
	tests := []struct {
		handler        http.HandlerFunc
		name           string
		expectedErrMsg string
		statusCode     int
	}{
		{
			name: "server error with JSON body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: "unauthorized", Message: "invalid token"})
			},
			statusCode:     http.StatusUnauthorized,
			expectedErrMsg: "server error: invalid token",
		},
		{
			name: "plain text 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("Internal Server Error"))
			},
			statusCode:     http.StatusInternalServerError,
			expectedErrMsg: "unexpected response: Internal Server Error",
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("{not json"))
			},
			statusCode:     http.StatusOK,
			expectedErrMsg: "failed to decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewClient(server.URL, "").Pull(context.Background(), time.Time{})
			require.Error(t, err)

			var terr *TransportError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, tt.statusCode, terr.StatusCode)
			assert.Contains(t, err.Error(), tt.expectedErrMsg)
		})
	}
}

// TestClient_Timeout проверяет, что таймаут превращается в TransportError
func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, "", WithTimeout(50*time.Millisecond))
	_, err := client.Health(context.Background())
	require.Error(t, err)

	var terr *TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, 0, terr.StatusCode)
}

// TestClient_Unreachable проверяет отказ соединения
func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewClient(url, "").Push(context.Background(), &api.PushRequest{})
	var terr *TransportError
	require.True(t, errors.As(err, &terr))
}
