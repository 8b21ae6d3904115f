package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	vegeta "github.com/tsenart/vegeta/v12/lib"
)

func TestSetupExchangeSuccess(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/exchange/create":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"exchange":{"exchange_id":"ex-load"}}`))
		case "/exchange/group/add":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"group":{"id":"g-1","label":"Load group 1"}}`))
		case "/exchange/participant/add":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"participant":{"id":"p-1"}}`))
		case "/exchange/participant/update":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"participant":{"id":"p-1","group_id":"g-1"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	id, err := setupExchange(srv.URL, "load", 2, 2)
	require.NoError(t, err)
	require.Equal(t, "ex-load", id)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{
		"/exchange/create",
		"/exchange/group/add",
		"/exchange/participant/add",
		"/exchange/participant/update",
		"/exchange/participant/add",
		"/exchange/participant/update",
	}, paths)
}

func TestSetupExchangeFailsOnBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := setupExchange(srv.URL, "load", 4, 1)
	require.Error(t, err)
}

func TestRunLoadTestCreatesResultsFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tmpFile := filepath.Join(t.TempDir(), "results.bin")
	prev := resultsFile
	resultsFile = tmpFile
	defer func() { resultsFile = prev }()

	require.NoError(t, runLoadTest(srv.URL, 1, 20*time.Millisecond, "ex-load", 4, 2))

	info, err := os.Stat(tmpFile)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestRunLoadTestRejectsZeroRate(t *testing.T) {
	require.Error(t, runLoadTest("http://localhost", 0, time.Second, "ex", 4, 2))
}

func TestDrawTargeterAlternatesEndpoints(t *testing.T) {
	targeter := newDrawTargeter("http://svc", "ex-1", 4, 2)

	var first, second vegeta.Target
	require.NoError(t, targeter(&first))
	require.NoError(t, targeter(&second))

	require.Equal(t, "http://svc/exchange/draw", first.URL)
	require.JSONEq(t, `{"exchange_id":"ex-1"}`, string(first.Body))

	require.Equal(t, "http://svc/draw/preview", second.URL)
	var body struct {
		Participants []struct {
			ID      string `json:"id"`
			GroupID string `json:"group_id"`
		} `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(second.Body, &body))
	require.Len(t, body.Participants, 4)
	require.Equal(t, "lg1", body.Participants[1].GroupID)
	require.Equal(t, "lg2", body.Participants[2].GroupID)
}

func TestRenderReportReadsFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "results.bin")
	file, err := os.Create(tmpFile)
	require.NoError(t, err)
	enc := vegeta.NewEncoder(file)
	now := time.Now()
	require.NoError(t, enc.Encode(&vegeta.Result{
		Code:      http.StatusOK,
		Timestamp: now,
		Latency:   time.Millisecond,
		BytesIn:   10,
		BytesOut:  5,
	}))
	require.NoError(t, enc.Encode(&vegeta.Result{
		Code:      http.StatusUnprocessableEntity,
		Timestamp: now.Add(time.Millisecond),
		Latency:   2 * time.Millisecond,
	}))
	require.NoError(t, file.Close())

	var buf bytes.Buffer
	require.NoError(t, renderReport(&buf, tmpFile))
	require.Contains(t, buf.String(), "Requests      [total")
}

func TestWritePlotInstructions(t *testing.T) {
	var buf bytes.Buffer
	prev := resultsFile
	resultsFile = "custom.bin"
	defer func() { resultsFile = prev }()

	writePlotInstructions(&buf)
	output := buf.String()
	require.Contains(t, output, "vegeta plot custom.bin")
	require.Contains(t, output, "go install github.com/tsenart/vegeta/v12@latest")
}
