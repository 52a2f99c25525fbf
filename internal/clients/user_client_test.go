package clients_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"microshop/internal/clients"
	"microshop/internal/services"
)

func newRegistryStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/u-1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"u-1"}`))
	})
	mux.HandleFunc("/api/v1/users/ghost", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"User not found"}`, http.StatusNotFound)
	})
	mux.HandleFunc("/api/v1/users/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/v1/users/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestUserClient_VerifyUser(t *testing.T) {
	server := newRegistryStub(t)
	client := clients.NewUserClient(server.URL, 5*time.Second, 2*time.Second)

	tests := []struct {
		name   string
		userID string
		want   services.Existence
	}{
		{"2xx confirms", "u-1", services.ExistenceConfirmed},
		{"404 denies", "ghost", services.ExistenceAbsent},
		{"5xx proves nothing", "boom", services.ExistenceUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, client.VerifyUser(context.Background(), tt.userID))
		})
	}
}

func TestUserClient_VerifyUser_Timeout(t *testing.T) {
	server := newRegistryStub(t)
	client := clients.NewUserClient(server.URL, 50*time.Millisecond, 2*time.Second)

	assert.Equal(t, services.ExistenceUnknown, client.VerifyUser(context.Background(), "slow"))
}

func TestUserClient_VerifyUser_Unreachable(t *testing.T) {
	server := newRegistryStub(t)
	server.Close()
	client := clients.NewUserClient(server.URL, time.Second, time.Second)

	assert.Equal(t, services.ExistenceUnknown, client.VerifyUser(context.Background(), "u-1"))
}

func TestUserClient_VerifyUser_CanceledContext(t *testing.T) {
	server := newRegistryStub(t)
	client := clients.NewUserClient(server.URL, time.Second, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, services.ExistenceUnknown, client.VerifyUser(ctx, "u-1"))
}

func TestUserClient_CheckHealth(t *testing.T) {
	server := newRegistryStub(t)
	client := clients.NewUserClient(server.URL, time.Second, time.Second)

	assert.NoError(t, client.CheckHealth(context.Background()))
}

func TestUserClient_CheckHealth_Unreachable(t *testing.T) {
	server := newRegistryStub(t)
	server.Close()
	client := clients.NewUserClient(server.URL, time.Second, time.Second)

	assert.Error(t, client.CheckHealth(context.Background()))
}

func TestUserClient_CheckHealth_BadStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "warming up", http.StatusServiceUnavailable)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := clients.NewUserClient(server.URL, time.Second, time.Second)
	assert.Error(t, client.CheckHealth(context.Background()))
}
