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

package conf

import (
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/suffixtree/pkg/log"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigName is the file name, without extension, looked up in the config dir.
	ConfigName = "config"
	ConfigType = "toml"
	// EnvPrefix prefixes environment overrides, e.g. SUFFIXTREE_TREE_TERMINATOR.
	EnvPrefix = "SUFFIXTREE"
)

// LoadConfigFile reads <confDir>/config.toml into cfg, which must be a
// non-nil pointer. Fields absent from the file keep their current values.
func LoadConfigFile(confDir string, cfg any) (*viper.Viper, error) {
	cfgValue := reflect.ValueOf(cfg)
	if cfgValue.Kind() != reflect.Ptr || cfgValue.IsNil() {
		return nil, errors.New("cfg must be a non-nil pointer")
	}

	vCfg := viper.New()
	vCfg.AddConfigPath(confDir)
	vCfg.SetConfigName(ConfigName)
	vCfg.SetConfigType(ConfigType)
	vCfg.SetEnvPrefix(EnvPrefix)
	vCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vCfg.AutomaticEnv()

	if err := vCfg.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration file in %s", confDir)
	}
	if err := vCfg.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal configuration file")
	}

	log.Infow("configuration loaded", "file", vCfg.ConfigFileUsed())
	return vCfg, nil
}

// Watch re-reads the configuration into a fresh value from newCfg whenever
// the file changes and hands it to onChange. Values that fail to unmarshal
// are logged and dropped.
func Watch(vCfg *viper.Viper, newCfg func() any, onChange func(cfg any, e fsnotify.Event)) {
	vCfg.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("configuration changed", "file", e.Name, "op", e.Op.String())
		cfg := newCfg()
		if err := vCfg.Unmarshal(cfg); err != nil {
			log.Errorw("failed to unmarshal changed configuration", "file", e.Name, "error", err)
			return
		}
		if onChange != nil {
			onChange(cfg, e)
		}
	})
	vCfg.WatchConfig()
}
