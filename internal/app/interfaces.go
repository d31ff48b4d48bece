package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/tiendafacil/inventario/config"
	"github.com/tiendafacil/inventario/internal/store"
)

// GatewayProvider provides store gateway access
type GatewayProvider interface {
	Gateway() *store.Gateway
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// BusProvider provides event bus access
type BusProvider interface {
	Bus() EventBus.Bus
}

// AppContext combines the provider interfaces; collaborators should depend
// on the narrowest provider they need.
type AppContext interface {
	GatewayProvider
	ConfigProvider
	BusProvider
}
