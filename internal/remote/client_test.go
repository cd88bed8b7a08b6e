package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"zervitravel/internal/sanitize"
)

func testLogger() *slog.Logger {
	return slog.Default()
}

func TestTableList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/tables/destinations", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"b","name":"newer"},{"id":"a","name":"older"}]`))
	}))
	defer srv.Close()

	table := New(srv.URL, testLogger()).Table("destinations")
	records, err := table.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	var first struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(records[0], &first))
	assert.Equal(t, "b", first.ID, "list must stay newest-first")
}

func TestTableInsertPassesPayloadThrough(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"x1","name":"Test","version":1}`))
	}))
	defer srv.Close()

	table := New(srv.URL, testLogger()).Table("destinations")
	created, err := table.Insert(context.Background(), sanitize.Fields{"id": "x1", "name": "Test"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"x1","name":"Test","version":1}`, string(created))
	assert.Equal(t, "Test", got["name"])
}

func TestTableUpdateErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"missing row", http.StatusNotFound, `{"error":"no such record"}`, ErrNotFound},
		{"stale base version", http.StatusConflict, `{"error":"version mismatch"}`, ErrConflict},
		{"gateway down", http.StatusServiceUnavailable, ``, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "3", r.Header.Get("If-Match"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			table := New(srv.URL, testLogger()).Table("trips")
			_, err := table.Update(context.Background(), "missing-id", 3, sanitize.Fields{"name": "Y"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTableRejectedRequestCarriesReason(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"duplicate id"}`))
	}))
	defer srv.Close()

	table := New(srv.URL, testLogger()).Table("suppliers")
	_, err := table.Insert(context.Background(), sanitize.Fields{"id": "dup"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "duplicate id", apiErr.Reason)
}

func TestTransportFailureIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	table := New(srv.URL, testLogger()).Table("destinations")
	_, err := table.List(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRemoveIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	table := New(srv.URL, testLogger()).Table("destinations")
	require.NoError(t, table.Remove(context.Background(), "gone"))
	require.NoError(t, table.Remove(context.Background(), "gone"))
}
