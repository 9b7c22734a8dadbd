package config

import "github.com/nodeflow-project/clickhouse-node/utils"

const (
	ErrNoKey       = utils.Error("Config key does not exist")
	ErrInvalidType = utils.Error("Invalid destination type")
)

// ConfigProvider read-only access to a configuration source
type ConfigProvider interface {
	// Get de-serializes the whole configuration into dest
	Get(dest interface{}) error
	// GetKey de-serializes the value of a top-level key into dest
	GetKey(key string, dest interface{}) error
	// KeyExists returns true if the given top-level key exists
	KeyExists(key string) bool
}
