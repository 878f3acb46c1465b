// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuffixTreeCollector(t *testing.T) {
	c := NewSuffixTreeCollector("test")

	c.ObserveBuild(3*time.Millisecond, 11, 7)
	c.BuildFailed()
	c.ObserveSearch(CacheMiss, 3)
	c.ObserveSearch(CacheHit, 3)
	c.ObserveSearch(CacheHit, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.buildsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.buildsTotal.WithLabelValues("invalid_input")))
	assert.Equal(t, 11.0, testutil.ToFloat64(c.nodes))
	assert.Equal(t, 7.0, testutil.ToFloat64(c.leaves))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.searchesTotal.WithLabelValues(CacheHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.searchesTotal.WithLabelValues(CacheMiss)))
}

func TestSuffixTreeCollector_Nil(t *testing.T) {
	var c *SuffixTreeCollector
	assert.NotPanics(t, func() {
		c.ObserveBuild(time.Second, 1, 1)
		c.BuildFailed()
		c.ObserveSearch(CacheDisabled, 1)
	})
}

func TestServer_Handler(t *testing.T) {
	conf := Conf{Namespace: "st"}
	collector := NewSuffixTreeCollectorFromConf(conf)
	server, err := NewMetricsServer(conf, collector)
	require.NoError(t, err)

	collector.ObserveBuild(time.Millisecond, 3, 2)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "st_suffixtree_builds_total")
	assert.Contains(t, string(body), "st_suffixtree_leaves 2")
	assert.Contains(t, string(body), `st_build_info{git_commit="",go_version="`)

	// a collector cannot be registered twice
	assert.Error(t, server.RegisterCollector(collector))
}

func TestServer_Pprof(t *testing.T) {
	get := func(server *Server, path string) int {
		rec := httptest.NewRecorder()
		server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusNotFound, get(NewServer(Conf{}), "/debug/pprof/heap"))
	assert.Equal(t, http.StatusOK, get(NewServer(Conf{Pprof: true}), "/debug/pprof/heap"))
}

func TestServer_StartListens(t *testing.T) {
	server := NewServer(Conf{Enable: true, Host: "127.0.0.1", Port: 0, Namespace: "live"})
	require.NoError(t, server.Start())
	defer server.Stop(context.Background())

	resp, err := http.Get("http://" + server.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_StartPortInUse(t *testing.T) {
	first := NewServer(Conf{Enable: true, Host: "127.0.0.1", Port: 0})
	require.NoError(t, first.Start())
	defer first.Stop(context.Background())

	_, port, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)

	second := NewServer(Conf{Enable: true, Host: "127.0.0.1", Port: p})
	assert.Error(t, second.Start())
	assert.Empty(t, second.Addr())
}

func TestServer_Disabled(t *testing.T) {
	server := NewServer(Conf{Enable: false})
	require.NoError(t, server.Start())
	assert.NoError(t, server.Stop(context.Background()))
}
