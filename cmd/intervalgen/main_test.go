package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/helixml/intervalgen/domain/interval"
	"github.com/helixml/intervalgen/internal/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "ERROR")

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_Table(t *testing.T) {
	out, err := execute(t, "generate", "--begin", "2016-01-03", "--end", "2016-01-30", "-g", "week", "--fixed")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, []string{"#", "BEGIN", "END", "DAYS", "PARTIAL"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "2016-01-03", "2016-01-03", "1", "yes"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "2016-01-04", "2016-01-10", "7"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"5", "2016-01-25", "2016-01-30", "6", "yes"}, strings.Fields(lines[5]))
}

func TestGenerate_JSON(t *testing.T) {
	out, err := execute(t, "generate", "--begin", "2016-01-01", "--end", "2016-01-01", "-g", "d", "-n", "3", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"begin_date":"2016-01-01","end_date":"2016-01-01","is_partial":true}]`, out)
}

func TestGenerate_YAML(t *testing.T) {
	out, err := execute(t, "generate", "--begin", "2011-01-01", "--end", "2015-12-31", "-g", "year", "-o", "yaml")
	require.NoError(t, err)

	var records []interval.Record
	require.NoError(t, yaml.Unmarshal([]byte(out), &records))
	require.Len(t, records, 5)
	assert.Equal(t, "2011-01-01", *records[0].BeginDate)
	assert.Equal(t, "2015-12-31", *records[4].EndDate)
	for _, r := range records {
		assert.False(t, *r.IsPartial)
	}
}

func TestGenerate_WeekStartFlag(t *testing.T) {
	out, err := execute(t, "generate", "--begin", "2016-01-03", "--end", "2016-01-16", "-g", "w", "--fixed", "--week-start", "sunday", "-o", "json")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "2016-01-09", records[0]["end_date"])
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want error
	}{
		{"reversed", []string{"--begin", "2016-02-01", "--end", "2016-01-01", "-g", "day"}, interval.ErrInvalidRange},
		{"bad date", []string{"--begin", "2016/01/01", "--end", "2016-01-01", "-g", "day"}, interval.ErrInvalidFieldType},
		{"granularity", []string{"--begin", "2016-01-01", "--end", "2016-01-02", "-g", "hour"}, interval.ErrUnsupportedGranularity},
		{"count", []string{"--begin", "2016-01-01", "--end", "2016-01-02", "-g", "day", "-n", "0"}, interval.ErrInvalidRepeatCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"generate"}, tt.args...)...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGenerate_UnknownOutput(t *testing.T) {
	_, err := execute(t, "generate", "--begin", "2016-01-01", "--end", "2016-01-02", "-g", "day", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestGenerate_MissingFlags(t *testing.T) {
	_, err := execute(t, "generate", "--begin", "2016-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "intervalgen version dev")
}

func TestApplyServeOverrides(t *testing.T) {
	cfg := config.NewAppConfig()

	unchanged := applyServeOverrides(cfg, "", 0)
	assert.Equal(t, cfg.Addr(), unchanged.Addr())

	overridden := applyServeOverrides(cfg, "127.0.0.1", 9090)
	assert.Equal(t, "127.0.0.1:9090", overridden.Addr())
}
