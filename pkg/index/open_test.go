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

package index

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/suffixtree/pkg/suffixtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openConfig = `
[cache]
enable = true

[search]
concurrency = 4

[log]
output = "stdout"
level = "ERROR"
`

func TestOpen(t *testing.T) {
	dir := writeConfig(t, openConfig)

	idx, cleanup, err := Open(context.Background(), dir, []byte("abcabxabcd"))
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, 4, idx.Concurrency())
	assert.Equal(t, []int{0, 3, 6}, idx.Search(context.Background(), []byte("ab")))
	assert.Equal(t, []int{0, 3, 6}, idx.Search(context.Background(), []byte("ab")))
}

func TestOpen_InvalidText(t *testing.T) {
	dir := writeConfig(t, openConfig)

	_, _, err := Open(context.Background(), dir, []byte("a$b"))
	assert.ErrorIs(t, err, suffixtree.ErrInvalidInput)
}

func TestOpen_MissingConfig(t *testing.T) {
	_, _, err := Open(context.Background(), t.TempDir(), []byte("abc"))
	assert.Error(t, err)
}

func TestOpen_ConcurrencyReload(t *testing.T) {
	dir := writeConfig(t, openConfig)

	idx, cleanup, err := Open(context.Background(), dir, []byte("abc"))
	require.NoError(t, err)
	defer cleanup()

	updated := []byte(`
[search]
concurrency = 6
`)
	deadline := time.Now().Add(5 * time.Second)
	for idx.Concurrency() != 6 && time.Now().Before(deadline) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), updated, 0o644))
		time.Sleep(100 * time.Millisecond)
	}
	assert.Equal(t, 6, idx.Concurrency())
}

func TestReloader(t *testing.T) {
	idx, err := New(context.Background(), []byte("abc"), DefaultConfig())
	require.NoError(t, err)
	r := &reloader{idx: idx}

	changed := func(concurrency int) *Config {
		c := DefaultConfig()
		c.Search.Concurrency = concurrency
		return &c
	}

	r.apply(changed(5), fsnotify.Event{Name: "config.toml", Op: fsnotify.Write})
	assert.Equal(t, 5, idx.Concurrency())

	invalid := changed(7)
	invalid.Tree.Terminator = "ab"
	r.apply(invalid, fsnotify.Event{Name: "config.toml", Op: fsnotify.Write})
	assert.Equal(t, 5, idx.Concurrency())

	// a closed index is left alone
	r.stop()
	r.apply(changed(9), fsnotify.Event{Name: "config.toml", Op: fsnotify.Write})
	assert.Equal(t, 5, idx.Concurrency())
}

func TestOpen_MetricsPortInUse(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()
	port := busy.Addr().(*net.TCPAddr).Port

	dir := writeConfig(t, fmt.Sprintf(`
[metrics]
enable = true
host = "127.0.0.1"
port = %d
`, port))

	_, _, err = Open(context.Background(), dir, []byte("abc"))
	assert.Error(t, err)
}
