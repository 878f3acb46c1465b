//go:build wireinject
// +build wireinject

package index

import (
	"github.com/google/wire"
)

func initComponents(cfg *Config) (*components, func(), error) {
	panic(wire.Build(ProviderSet))
}
