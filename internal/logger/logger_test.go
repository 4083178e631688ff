package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture runs fn with a fresh logger writing into a buffer.
func capture(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	t.Cleanup(UnsetTestOutput)
	InitLogger(level, format)
	fn()
	return buf.String()
}

// records decodes one JSON object per line.
func records(t *testing.T, out string) []map[string]interface{} {
	t.Helper()
	var recs []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		rec := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &rec), line)
		recs = append(recs, rec)
	}
	return recs
}

func TestLevels(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{level: "debug", want: []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{level: "info", want: []string{"INFO", "WARN", "ERROR"}},
		{level: "warning", want: []string{"WARN", "ERROR"}},
		{level: "error", want: []string{"ERROR"}},
		{level: "bogus", want: []string{"INFO", "WARN", "ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			out := capture(t, tt.level, FormatJSON, func() {
				Debug("reconciling sources")
				Info("launcher window opened")
				Warn("skipping app with invalid manifest")
				Error("failed to refresh source")
			})
			var got []string
			for _, rec := range records(t, out) {
				got = append(got, rec["level"].(string))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFields_JSON(t *testing.T) {
	out := capture(t, "debug", FormatJSON, func() {
		Warn("port lost", Fields{"path": "/dev/ttyACM0", "watchers": 2}, Fields{"retry": false})
		Success("app installed", Fields{"app": "official/blinky"})
		DebugfWithFields(Fields{"window": "launcher"}, "opening %s", "window")
	})

	recs := records(t, out)
	require.Len(t, recs, 3)

	assert.Equal(t, "port lost", recs[0]["msg"])
	assert.Equal(t, "/dev/ttyACM0", recs[0]["path"])
	assert.Equal(t, 2.0, recs[0]["watchers"])
	assert.Equal(t, false, recs[0]["retry"])

	assert.Equal(t, "INFO", recs[1]["level"])
	assert.Equal(t, "success", recs[1]["status"])
	assert.Equal(t, "official/blinky", recs[1]["app"])

	assert.Equal(t, "opening window", recs[2]["msg"])
	assert.Equal(t, "launcher", recs[2]["window"])
}

func TestFields_Text(t *testing.T) {
	out := capture(t, "info", FormatText, func() {
		Info("source added", Fields{"source": "community"})
		Infof("refreshed %d sources", 2)
		Debug("hidden")
	})

	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, `msg="source added" source=community`)
	assert.Contains(t, out, `msg="refreshed 2 sources"`)
	assert.NotContains(t, out, "hidden")
}

func TestSetLevelAndFormat(t *testing.T) {
	out := capture(t, "info", FormatText, func() {
		Debug("before")
		SetLevel("debug")
		SetOutputFormat(FormatJSON)
		Debug("after")
	})

	assert.NotContains(t, out, "before")
	assert.Contains(t, out, `"msg":"after"`)
	assert.Contains(t, out, `"level":"DEBUG"`)
}

func TestMergeFields_LaterWins(t *testing.T) {
	attrs := mergeFields(Fields{"app": "a"}, Fields{"app": "b", "source": "official"})
	got := map[string]interface{}{}
	for i := 0; i < len(attrs); i += 2 {
		got[attrs[i].(string)] = attrs[i+1]
	}
	assert.Equal(t, "official", got["source"])
	assert.Equal(t, "b", got["app"])
}

func TestGetLogger_InitializesIfNil(t *testing.T) {
	mu.Lock()
	logger = nil
	mu.Unlock()

	lg := GetLogger()
	require.NotNil(t, lg)
	assert.NotPanics(t, func() { lg.Info("ready") })
}
