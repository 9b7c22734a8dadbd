package clickhouse

import (
	"os"
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/nodeflow-project/clickhouse-node/crypt/secure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConfig_Validate(t *testing.T) {
	testCases := []struct {
		name          string
		url           string
		expectedError error
	}{
		{"HttpURL", "http://localhost:8123", nil},
		{"HttpsURL", "https://ch.example.com", nil},
		{"NativeURL", "clickhouse://localhost:9000", nil},
		{"TcpURL", "tcp://localhost:9000", nil},
		{"EmptyURL", "", ErrEmptyURL},
		{"WhitespaceURL", "   ", ErrEmptyURL},
		{"NoHost", "http://", ErrInvalidURL},
		{"BadScheme", "ftp://localhost", ErrInvalidScheme},
		{"NoScheme", "localhost:8123", ErrInvalidURL},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewClientConfig()
			cfg.URL = tc.url
			err := cfg.Validate()
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientConfig_Options(t *testing.T) {
	t.Run("HttpDefaults", func(t *testing.T) {
		cfg := NewClientConfig()
		opts, err := cfg.Options()
		require.NoError(t, err)
		assert.Equal(t, []string{"localhost:8123"}, opts.Addr)
		assert.Equal(t, clickhouse.HTTP, opts.Protocol)
		assert.Equal(t, "default", opts.Auth.Database)
		assert.Equal(t, "default", opts.Auth.Username)
		assert.Empty(t, opts.Auth.Password)
		assert.Nil(t, opts.TLS)
		assert.Nil(t, opts.Settings)
	})

	t.Run("NativeScheme", func(t *testing.T) {
		cfg := NewClientConfig()
		cfg.URL = "clickhouse://ch.internal"
		opts, err := cfg.Options()
		require.NoError(t, err)
		assert.Equal(t, []string{"ch.internal:9000"}, opts.Addr)
		assert.Equal(t, clickhouse.Native, opts.Protocol)
		assert.Nil(t, opts.TLS)
	})

	t.Run("ExplicitPort", func(t *testing.T) {
		cfg := NewClientConfig()
		cfg.URL = "http://ch.internal:9999"
		opts, err := cfg.Options()
		require.NoError(t, err)
		assert.Equal(t, []string{"ch.internal:9999"}, opts.Addr)
	})

	t.Run("HttpsEnablesTLS", func(t *testing.T) {
		cfg := NewClientConfig()
		cfg.URL = "https://ch.example.com"
		opts, err := cfg.Options()
		require.NoError(t, err)
		assert.Equal(t, []string{"ch.example.com:8443"}, opts.Addr)
		require.NotNil(t, opts.TLS)
		assert.False(t, opts.TLS.InsecureSkipVerify)
	})

	t.Run("AllowUnauthorizedCerts", func(t *testing.T) {
		cfg := NewClientConfig()
		cfg.URL = "https://ch.example.com"
		cfg.AllowUnauthorizedCerts = true
		opts, err := cfg.Options()
		require.NoError(t, err)
		require.NotNil(t, opts.TLS)
		assert.True(t, opts.TLS.InsecureSkipVerify)
		// flag also carries the compression setting
		assert.Equal(t, 1, opts.Settings["enable_http_compression"])
	})

	t.Run("PasswordFromEnv", func(t *testing.T) {
		const envVar = "TEST_CLICKHOUSE_PASSWORD"
		require.NoError(t, os.Setenv(envVar, "somePassword"))
		defer os.Unsetenv(envVar)

		cfg := NewClientConfig()
		cfg.DefaultCredentialConfig = secure.DefaultCredentialConfig{PasswordEnvVar: envVar}
		opts, err := cfg.Options()
		require.NoError(t, err)
		assert.Equal(t, "somePassword", opts.Auth.Password)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		cfg := NewClientConfig()
		cfg.URL = "ftp://localhost"
		opts, err := cfg.Options()
		assert.ErrorIs(t, err, ErrInvalidScheme)
		assert.Nil(t, opts)
	})

	t.Run("FreshOptionsPerCall", func(t *testing.T) {
		cfg := NewClientConfig()
		first, err := cfg.Options()
		require.NoError(t, err)
		second, err := cfg.Options()
		require.NoError(t, err)
		assert.NotSame(t, first, second)
	})
}
