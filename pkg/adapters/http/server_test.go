package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/errfix"
	"github.com/aretw0/errfix/internal/logging"
	"github.com/aretw0/errfix/internal/metrics"
	httpAdapter "github.com/aretw0/errfix/pkg/adapters/http"
	"github.com/aretw0/errfix/pkg/adapters/memory"
	"github.com/aretw0/errfix/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	collector := metrics.New(reg)

	eng, err := errfix.New([]domain.Transition{
		domain.NewTransition("A", "go", "B"),
		domain.NewTransition("B", "go", "C"),
		domain.NewTransition("C", "go", "A"),
		domain.NewTransition("C", "stop", "D"),
	}, errfix.WithStore(memory.NewStore()), errfix.WithHooks(collector.Hooks()))
	require.NoError(t, err)

	srv := httptest.NewServer(httpAdapter.NewHandler(eng,
		httpAdapter.WithGatherer(reg),
		httpAdapter.WithLogger(logging.NewNop()),
	))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func postWalks(t *testing.T, url string, body string) (int, []domain.Walk) {
	t.Helper()
	resp, err := http.Post(url+"/walks", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return resp.StatusCode, nil
	}
	var walks []domain.Walk
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&walks))
	return resp.StatusCode, walks
}

func TestServer_Model(t *testing.T) {
	srv := newServer(t)

	code, body := get(t, srv.URL+"/model")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, strings.HasPrefix(body, "States, and their Actions:"))

	code, body = get(t, srv.URL+"/model/states")
	assert.Equal(t, http.StatusOK, code)
	var states []httpAdapter.StateView
	require.NoError(t, json.Unmarshal([]byte(body), &states))
	require.Len(t, states, 4)
	assert.Equal(t, "B", states[0].ID)
	assert.Equal(t, httpAdapter.StateView{ID: "D", Actions: []string{}, DeadEnd: true}, states[3])
}

func TestServer_Graph(t *testing.T) {
	srv := newServer(t)

	code, body := get(t, srv.URL+"/graph")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "graph TD")

	code, body = get(t, srv.URL+"/graph?format=dot")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "digraph G")

	code, _ = get(t, srv.URL+"/graph?format=png")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_WalkLifecycle(t *testing.T) {
	srv := newServer(t)

	code, walks := postWalks(t, srv.URL, `{"start":"A","steps":5,"seed":3}`)
	require.Equal(t, http.StatusCreated, code)
	require.Len(t, walks, 1)
	created := walks[0]
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Measured)
	require.NotNil(t, created.Seed)
	assert.Equal(t, uint64(3), *created.Seed)

	code, body := get(t, srv.URL+"/walks/"+created.ID)
	assert.Equal(t, http.StatusOK, code)
	var loaded domain.Walk
	require.NoError(t, json.Unmarshal([]byte(body), &loaded))
	assert.Equal(t, created.Steps, loaded.Steps)

	code, body = get(t, srv.URL+"/graph?walk="+created.ID)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "class A visited;")

	code, body = get(t, srv.URL+"/walks")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, created.ID)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/walks/"+created.ID, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	code, _ = get(t, srv.URL+"/walks/"+created.ID)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestServer_Suite(t *testing.T) {
	srv := newServer(t)

	code, walks := postWalks(t, srv.URL, `{"start":"A","steps":8,"seed":1,"count":3}`)
	require.Equal(t, http.StatusCreated, code)
	require.Len(t, walks, 3)
	for i, w := range walks {
		assert.Equal(t, uint64(1+i), *w.Seed)
	}
}

func TestServer_WalkErrors(t *testing.T) {
	srv := newServer(t)

	code, _ := postWalks(t, srv.URL, `{"start":"Z","steps":5}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = postWalks(t, srv.URL, `{"start":"A","steps":2}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = postWalks(t, srv.URL, `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestServer_WalkLimits(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "Huge Count", body: `{"start":"A","steps":3,"count":4611686018427387904}`, want: http.StatusBadRequest},
		{name: "Count Above Max", body: fmt.Sprintf(`{"start":"A","steps":3,"count":%d}`, httpAdapter.MaxWalkCount+1), want: http.StatusBadRequest},
		{name: "Negative Count", body: `{"start":"A","steps":3,"count":-1}`, want: http.StatusBadRequest},
		{name: "Huge Steps", body: `{"start":"A","steps":1000000000000}`, want: http.StatusBadRequest},
		{name: "Negative Steps", body: `{"start":"A","steps":-5}`, want: http.StatusBadRequest},
		{name: "At The Limits", body: fmt.Sprintf(`{"start":"A","steps":%d,"count":2}`, httpAdapter.MaxStepLimit), want: http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := postWalks(t, srv.URL, tt.body)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	srv := newServer(t)

	code, _ := postWalks(t, srv.URL, `{"start":"A","steps":5,"seed":3}`)
	require.Equal(t, http.StatusCreated, code)

	code, body := get(t, srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "errfix_walks_total 1")
}
