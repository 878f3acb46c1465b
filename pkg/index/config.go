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
	"fmt"

	"github.com/go-arcade/suffixtree/pkg/cache"
	"github.com/go-arcade/suffixtree/pkg/conf"
	"github.com/go-arcade/suffixtree/pkg/log"
	"github.com/go-arcade/suffixtree/pkg/metrics"
	"github.com/go-arcade/suffixtree/pkg/suffixtree"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const defaultConcurrency = 8

// Config is the root of config.toml.
type Config struct {
	Tree    TreeConf     `mapstructure:"tree"`
	Cache   cache.Conf   `mapstructure:"cache"`
	Search  SearchConf   `mapstructure:"search"`
	Log     log.Conf     `mapstructure:"log"`
	Metrics metrics.Conf `mapstructure:"metrics"`
}

type TreeConf struct {
	// Terminator is the single byte appended to the text. It must not occur
	// in the text itself.
	Terminator string `mapstructure:"terminator"`
}

type SearchConf struct {
	// Concurrency bounds the goroutines used by SearchAll.
	Concurrency int `mapstructure:"concurrency"`
}

// DefaultConfig returns a configuration with the cache and metrics disabled.
func DefaultConfig() Config {
	return Config{
		Tree:   TreeConf{Terminator: string(suffixtree.DefaultTerminator)},
		Cache:  cache.Conf{Enable: false},
		Search: SearchConf{Concurrency: defaultConcurrency},
		Log:    *log.SetDefaults(),
		Metrics: metrics.Conf{
			Host:      "127.0.0.1",
			Port:      9464,
			Namespace: "suffixtree",
		},
	}
}

// Validate checks the configuration and fills zero values with defaults.
func (c *Config) Validate() error {
	if c.Tree.Terminator == "" {
		c.Tree.Terminator = string(suffixtree.DefaultTerminator)
	}
	if len(c.Tree.Terminator) != 1 {
		return fmt.Errorf("tree.terminator must be exactly one byte, got %q", c.Tree.Terminator)
	}
	if c.Search.Concurrency <= 0 {
		c.Search.Concurrency = defaultConcurrency
	}
	if c.Metrics.Enable && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return fmt.Errorf("metrics.port %d out of range", c.Metrics.Port)
	}
	return c.Log.Validate()
}

func (c *Config) terminator() byte {
	return c.Tree.Terminator[0]
}

// LoadConfig reads <confDir>/config.toml on top of DefaultConfig.
func LoadConfig(confDir string) (*Config, *viper.Viper, error) {
	cfg := DefaultConfig()
	vCfg, err := conf.LoadConfigFile(confDir, &cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, vCfg, nil
}
