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
	"time"

	"github.com/go-arcade/suffixtree/pkg/cache"
	"github.com/go-arcade/suffixtree/pkg/metrics"
	"github.com/google/wire"
)

// ProviderSet builds the components an Index is wired with from a Config.
var ProviderSet = wire.NewSet(
	wire.FieldsOf(new(*Config), "Cache", "Metrics"),
	cache.ProviderSet,
	metrics.ProviderSet,
	provideComponents,
)

// components are the collaborators Open hands to New.
type components struct {
	cache     *cache.ResultCache
	collector *metrics.SuffixTreeCollector
	server    *metrics.Server
}

// provideComponents starts the metrics server; the cleanup stops it.
func provideComponents(rc *cache.ResultCache, collector *metrics.SuffixTreeCollector, server *metrics.Server) (*components, func(), error) {
	if err := server.Start(); err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Stop(ctx)
	}
	return &components{cache: rc, collector: collector, server: server}, cleanup, nil
}

func (c *components) options() []Option {
	return []Option{WithCache(c.cache), WithCollector(c.collector)}
}
