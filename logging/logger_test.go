package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, log.DebugLevel, parseLevel("DEBUG"))
	require.Equal(t, log.WarnLevel, parseLevel("warning"))
	require.Equal(t, log.ErrorLevel, parseLevel("error"))
	require.Equal(t, log.InfoLevel, parseLevel(""))
}

func TestForRun_JSON(t *testing.T) {
	var buf bytes.Buffer
	SetupTo(&buf, "info", "json")
	t.Cleanup(func() { Setup("info", "text") })

	ForRun("run-42").WithField("page", 3).Info("page harvested")
	ForRun("run-42").Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "run-42", entry["run_id"])
	require.Equal(t, float64(3), entry["page"])
	require.Equal(t, "page harvested", entry["msg"])
}
