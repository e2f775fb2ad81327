package elastic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	applogger "github.com/MarkCoder7/pktvisor/pkg/logger"
)

func testLogger() *applogger.Logger {
	l, _ := applogger.New(&applogger.Config{Level: "error", Format: "console", Output: "stderr"})
	return l
}

func TestLogVariables(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/_search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"aggregations": {
				"pop_list":     {"buckets": [{"key": "ams01", "doc_count": 42}]},
				"network_list": {"buckets": [{"key": "10.0.0.0/8", "doc_count": 7}]},
				"host_list":    {"buckets": []}
			}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, testLogger())
	require.NoError(t, c.LogVariables(context.Background()))

	require.Zero(t, got.Size, "hits are not wanted, only aggregations")
	require.Len(t, got.Aggs, 3)
	require.Equal(t, "pop.raw", got.Aggs["pop_list"].Terms.Field)
	require.Equal(t, "network.raw", got.Aggs["network_list"].Terms.Field)
	require.Equal(t, "host.raw", got.Aggs["host_list"].Terms.Field)
	require.Equal(t, 100, got.Aggs["pop_list"].Terms.Size)
}

func TestLogVariablesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"index_not_found_exception"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second, testLogger())
	require.Error(t, c.LogVariables(context.Background()))
}

func TestLogVariablesUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := New(srv.URL, time.Second, testLogger())
	require.Error(t, c.LogVariables(context.Background()))
}
