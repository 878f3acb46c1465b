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

// Package index serves substring queries over a single text. It builds the
// suffix tree once and adds result caching, metrics, tracing and logging
// around the read-only tree.
package index

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-arcade/suffixtree/pkg/cache"
	"github.com/go-arcade/suffixtree/pkg/log"
	"github.com/go-arcade/suffixtree/pkg/metrics"
	"github.com/go-arcade/suffixtree/pkg/suffixtree"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/go-arcade/suffixtree/pkg/index"

// Index is safe for concurrent use.
type Index struct {
	id   string
	tree *suffixtree.Tree

	concurrency atomic.Int32

	cache     *cache.ResultCache
	collector *metrics.SuffixTreeCollector
	logger    *zap.SugaredLogger
	tracer    trace.Tracer
}

// Option configures New.
type Option func(*Index)

// WithCache serves repeated patterns from rc. A nil rc disables caching.
func WithCache(rc *cache.ResultCache) Option {
	return func(i *Index) {
		i.cache = rc
	}
}

// WithCollector records builds and searches in c.
func WithCollector(c *metrics.SuffixTreeCollector) Option {
	return func(i *Index) {
		i.collector = c
	}
}

// WithLogger replaces the global logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(i *Index) {
		i.logger = l
	}
}

// New builds the suffix tree of text. Text containing the configured
// terminator is rejected with an error matching suffixtree.ErrInvalidInput.
func New(ctx context.Context, text []byte, cfg Config, opts ...Option) (*Index, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid index config")
	}

	idx := &Index{
		id:     uuid.NewString(),
		tracer: otel.Tracer(tracerName),
	}
	idx.concurrency.Store(int32(cfg.Search.Concurrency))
	for _, opt := range opts {
		opt(idx)
	}

	ctx, span := idx.tracer.Start(ctx, "index.Build", trace.WithAttributes(
		attribute.String("index.id", idx.id),
		attribute.Int("index.text_len", len(text)),
	))
	defer span.End()

	start := time.Now()
	tree, err := suffixtree.Build(text, suffixtree.WithTerminator(cfg.terminator()))
	if err != nil {
		idx.collector.BuildFailed()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		idx.log(ctx).Warnw("rejected index text", "index_id", idx.id, "error", err)
		return nil, errors.Wrapf(err, "failed to build index %s", idx.id)
	}
	elapsed := time.Since(start)

	idx.tree = tree
	st := tree.Stats()
	idx.collector.ObserveBuild(elapsed, st.Nodes, st.Leaves)
	span.SetAttributes(
		attribute.Int("suffixtree.nodes", st.Nodes),
		attribute.Int("suffixtree.leaves", st.Leaves),
	)
	idx.log(ctx).Infow("index built",
		"index_id", idx.id,
		"text_len", len(text),
		"nodes", st.Nodes,
		"internal", st.Internal,
		"leaves", st.Leaves,
		"elapsed", elapsed,
	)
	return idx, nil
}

// ID identifies the index in logs, traces and cache keys.
func (i *Index) ID() string { return i.id }

// Len returns the length of the indexed text.
func (i *Index) Len() int { return i.tree.Len() }

// Tree returns the underlying suffix tree.
func (i *Index) Tree() *suffixtree.Tree { return i.tree }

// Stats returns the shape of the underlying suffix tree.
func (i *Index) Stats() suffixtree.Stats { return i.tree.Stats() }

// SetConcurrency changes the SearchAll limit. Values below one are ignored.
func (i *Index) SetConcurrency(n int) {
	if n < 1 {
		return
	}
	i.concurrency.Store(int32(n))
}

// Concurrency returns the SearchAll limit.
func (i *Index) Concurrency() int {
	return int(i.concurrency.Load())
}

func (i *Index) log(ctx context.Context) *zap.SugaredLogger {
	if i.logger != nil {
		return log.WithTrace(ctx, i.logger)
	}
	return log.WithContext(ctx)
}
