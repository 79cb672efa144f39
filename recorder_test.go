package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWritesResults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var buf bytes.Buffer

	require.NoError(t, run("", dir, false, &buf))

	summary := buf.String()
	assert.Contains(t, summary, "R134a")
	assert.Contains(t, summary, "Air side")
	assert.Contains(t, summary, "condensation")
	assert.Contains(t, summary, "Air outlet temperature")

	data, err := os.ReadFile(filepath.Join(dir, zonesFileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "zone,required_duty_w,area_m2,u_w_m2k"))
	assert.True(t, strings.HasPrefix(lines[1], "desuperheating,"))
	assert.True(t, strings.HasPrefix(lines[2], "condensation,"))
	assert.True(t, strings.HasPrefix(lines[3], "subcooling,"))

	data, err = os.ReadFile(filepath.Join(dir, resultFileName))
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "zones")
	assert.Contains(t, doc, "saturation_pressure")
	assert.Equal(t, "saturated-two-phase", doc["condensation"].(map[string]interface{})["phase"])
}

func TestRunWithoutZones(t *testing.T) {
	cfg := writeFile(t, "coil.ini", "[options]\nevaluate_zones = false\n")
	dir := t.TempDir()
	var buf bytes.Buffer

	require.NoError(t, run(cfg, dir, false, &buf))

	assert.NotContains(t, buf.String(), "Zones")
	_, err := os.Stat(filepath.Join(dir, zonesFileName))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, resultFileName))
	assert.NoError(t, err)
}

func TestRunNoOutputDir(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run("", "", false, &buf))
	assert.NotEmpty(t, buf.String())
}

func TestRunReportsCalculationError(t *testing.T) {
	cfg := writeFile(t, "coil.ini", "[refrigerant]\nmass_flow = 0\n")
	var buf bytes.Buffer

	err := run(cfg, "", false, &buf)
	assert.ErrorContains(t, err, "mass_flow")
	assert.Empty(t, buf.String())
}

func TestRootCommandJSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd(&buf)
	cmd.SetArgs([]string{"run", "--json", "--log", "warn"})
	require.NoError(t, cmd.Execute())

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	zones, ok := doc["zones"].([]interface{})
	require.True(t, ok)
	assert.Len(t, zones, 3)
}

func TestRootCommandRejectsLogLevel(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd(&buf)
	cmd.SetArgs([]string{"run", "--log", "loud"})
	assert.Error(t, cmd.Execute())
}
