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
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/suffixtree/pkg/conf"
	"github.com/go-arcade/suffixtree/pkg/log"
	"github.com/go-arcade/suffixtree/pkg/version"
)

// Open loads <confDir>/config.toml, installs the configured logger, starts
// the metrics server if enabled and builds an index over text. Later edits
// to search.concurrency are applied to the returned index until cleanup is
// called. The cleanup stops the metrics server and flushes the logger; the
// file watcher itself lives until the process exits.
func Open(ctx context.Context, confDir string, text []byte) (*Index, func(), error) {
	cfg, vCfg, err := LoadConfig(confDir)
	if err != nil {
		return nil, nil, err
	}
	if err := log.Init(&cfg.Log); err != nil {
		return nil, nil, err
	}

	v := version.GetVersion()
	log.Infow("opening index", "version", v.Version, "commit", v.GitCommit, "go", v.GoVersion)

	comps, cleanup, err := initComponents(cfg)
	if err != nil {
		return nil, nil, err
	}

	idx, err := New(ctx, text, *cfg, comps.options()...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	r := &reloader{idx: idx}
	conf.Watch(vCfg, func() any {
		c := DefaultConfig()
		return &c
	}, r.apply)

	return idx, func() {
		r.stop()
		cleanup()
		_ = log.Sync()
	}, nil
}

// reloader applies configuration changes to a live index. Viper offers no
// way to stop watching, so after stop the watcher keeps running but changes
// are dropped.
type reloader struct {
	idx     *Index
	stopped atomic.Bool
}

func (r *reloader) stop() {
	r.stopped.Store(true)
}

func (r *reloader) apply(changed any, _ fsnotify.Event) {
	if r.stopped.Load() {
		return
	}
	c := changed.(*Config)
	if err := c.Validate(); err != nil {
		log.Warnw("ignoring invalid configuration change", "error", err)
		return
	}
	if c.Search.Concurrency != r.idx.Concurrency() {
		r.idx.SetConcurrency(c.Search.Concurrency)
		log.Infow("search concurrency updated", "index_id", r.idx.ID(), "concurrency", c.Search.Concurrency)
	}
}
