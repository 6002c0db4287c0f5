package app

import (
	"github.com/akash06959/agronova/config"
	"github.com/akash06959/agronova/internal/backend"
	"github.com/akash06959/agronova/internal/store"
)

// ConfigProvider provides application configuration.
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the state containers.
type StoreProvider interface {
	Catalog() *store.CatalogStore
	Cart() *store.CartStore
	UserSessions() *store.SessionStore
	AdminSessions() *store.SessionStore
	Notify() *store.NotifyStore
}

// BackendProvider provides the remote API client.
type BackendProvider interface {
	Backend() *backend.Client
}
