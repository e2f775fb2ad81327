package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validYAML = `
environment: test
server:
  port: 5006
dashboard:
  symbols: [AAPL, GOOG, INTC]
backend:
  type: csv
  data_dir: ./daily
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadValid(t *testing.T) {
	c, err := Load(writeConfig(t, validYAML))
	require.NoError(t, err)
	require.Equal(t, "test", c.Environment)
	require.Equal(t, 5006, c.Server.Port)
	require.Equal(t, "csv", c.Backend.Type)

	// Defaults fall back to the first two universe entries.
	require.Equal(t, "AAPL", c.Dashboard.Default1)
	require.Equal(t, "GOOG", c.Dashboard.Default2)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"no environment", `
backend: {type: csv}
dashboard: {symbols: [A, B]}
`},
		{"bad backend type", `
environment: test
backend: {type: postgres}
dashboard: {symbols: [A, B]}
`},
		{"too few symbols", `
environment: test
backend: {type: csv}
dashboard: {symbols: [A]}
`},
		{"equal defaults", `
environment: test
backend: {type: csv}
dashboard: {symbols: [A, B], default1: A, default2: A}
`},
		{"default outside universe", `
environment: test
backend: {type: csv}
dashboard: {symbols: [A, B], default1: A, default2: C}
`},
		{"kafka enabled without brokers", `
environment: test
backend: {type: csv}
dashboard: {symbols: [A, B]}
kafka: {enabled: true}
`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.yaml))
			require.Error(t, err)
		})
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("SYMBOLS", "MSFT,ORCL,IBM")
	t.Setenv("DATA_DIR", "/srv/daily")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("ELASTIC_URL", "http://es:9200")

	c, err := LoadWithEnv(writeConfig(t, validYAML))
	require.NoError(t, err)
	require.Equal(t, []string{"MSFT", "ORCL", "IBM"}, c.Dashboard.Symbols)
	require.Equal(t, "MSFT", c.Dashboard.Default1, "defaults re-derive from the overridden universe")
	require.Equal(t, "ORCL", c.Dashboard.Default2)
	require.Equal(t, "/srv/daily", c.Backend.DataDir)
	require.True(t, c.Kafka.Enabled, "setting brokers turns the producer on")
	require.Equal(t, []string{"k1:9092", "k2:9092"}, c.Kafka.Brokers)
	require.Equal(t, "http://es:9200", c.Elastic.URL)
}
