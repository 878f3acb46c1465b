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

	"github.com/go-arcade/suffixtree/pkg/metrics"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Search returns the ascending offsets at which pattern occurs in the text,
// or nil if it does not occur.
func (i *Index) Search(ctx context.Context, pattern []byte) []int {
	ctx, span := i.tracer.Start(ctx, "index.Search", trace.WithAttributes(
		attribute.String("index.id", i.id),
		attribute.Int("pattern.len", len(pattern)),
	))
	defer span.End()

	offsets, outcome := i.search(ctx, pattern)
	span.SetAttributes(
		attribute.String("cache", outcome),
		attribute.Int("matches", len(offsets)),
	)
	i.collector.ObserveSearch(outcome, len(offsets))
	return offsets
}

func (i *Index) search(ctx context.Context, pattern []byte) ([]int, string) {
	if i.cache == nil {
		return i.tree.Search(pattern), metrics.CacheDisabled
	}

	if offsets, ok := i.cache.Get(i.id, pattern); ok {
		if len(offsets) == 0 {
			return nil, metrics.CacheHit
		}
		return offsets, metrics.CacheHit
	}

	offsets := i.tree.Search(pattern)
	if err := i.cache.Set(i.id, pattern, offsets); err != nil {
		i.log(ctx).Warnw("failed to cache search result", "index_id", i.id, "error", err)
	}
	return offsets, metrics.CacheMiss
}

// Contains reports whether pattern occurs in the text.
func (i *Index) Contains(pattern []byte) bool {
	return i.tree.Contains(pattern)
}

// Count returns the number of occurrences of pattern.
func (i *Index) Count(pattern []byte) int {
	return i.tree.Count(pattern)
}

// SearchAll searches every pattern concurrently, at most Concurrency at a
// time. Duplicate patterns share one entry in the result. It stops early and
// returns the context error if ctx is done.
func (i *Index) SearchAll(ctx context.Context, patterns []string) (map[string][]int, error) {
	ctx, span := i.tracer.Start(ctx, "index.SearchAll", trace.WithAttributes(
		attribute.String("index.id", i.id),
		attribute.Int("patterns", len(patterns)),
	))
	defer span.End()

	results := make([][]int, len(patterns))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(i.Concurrency())
	for k, pattern := range patterns {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[k] = i.Search(gctx, []byte(pattern))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, errors.Wrap(err, "search aborted")
	}

	out := make(map[string][]int, len(patterns))
	for k, pattern := range patterns {
		out[pattern] = results[k]
	}
	return out, nil
}
