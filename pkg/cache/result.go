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

package cache

import (
	"github.com/VictoriaMetrics/fastcache"
	"github.com/bytedance/sonic"
)

// defaultMaxBytes is the default cache size (32MB)
const defaultMaxBytes = 32 * 1024 * 1024

// Conf holds result cache configuration.
type Conf struct {
	Enable   bool `mapstructure:"enable"`
	MaxBytes int  `mapstructure:"max_bytes"` // default 32MB
}

// ResultCache keeps search results in a VictoriaMetrics fastcache. Keys are
// namespaced so several indexes can share one cache. It is safe for
// concurrent use.
type ResultCache struct {
	cache *fastcache.Cache
}

// NewResultCache creates a ResultCache of conf.MaxBytes.
func NewResultCache(conf Conf) *ResultCache {
	maxBytes := conf.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	return &ResultCache{cache: fastcache.New(maxBytes)}
}

// Get returns the cached offsets of pattern in namespace.
func (rc *ResultCache) Get(namespace string, pattern []byte) ([]int, bool) {
	value := rc.cache.GetBig(nil, key(namespace, pattern))
	if len(value) == 0 {
		return nil, false
	}
	var offsets []int
	if err := sonic.Unmarshal(value, &offsets); err != nil {
		return nil, false
	}
	return offsets, true
}

// Set stores the offsets of pattern in namespace. Results larger than a
// single fastcache entry are chunked by SetBig.
func (rc *ResultCache) Set(namespace string, pattern []byte, offsets []int) error {
	if offsets == nil {
		offsets = []int{}
	}
	value, err := sonic.Marshal(offsets)
	if err != nil {
		return err
	}
	rc.cache.SetBig(key(namespace, pattern), value)
	return nil
}

// Reset drops every entry.
func (rc *ResultCache) Reset() {
	rc.cache.Reset()
}

func key(namespace string, pattern []byte) []byte {
	k := make([]byte, 0, len(namespace)+1+len(pattern))
	k = append(k, namespace...)
	k = append(k, 0)
	return append(k, pattern...)
}
