package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lineChart = `
width: 300
height: 200
x:
  title: %s
series:
  - title: Load
    data:
      - {x: 1, y: 3}
      - {x: 2, y: 5}
      - {x: 3, y: 4}
`

func writeChart(t *testing.T, dir, title string) string {
	t.Helper()
	path := filepath.Join(dir, "chart.yaml")
	content := strings.Replace(lineChart, "%s", title, 1)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := New().WithOutput(&stdout, &stderr)
	err := app.ExecuteWithArgs(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

func TestApp_Version(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "xyplot version dev") {
		t.Errorf("version output missing 'xyplot version dev', got: %s", out)
	}
}

func TestApp_Help(t *testing.T) {
	out, _, err := run(t, "--help")
	require.NoError(t, err)
	for _, cmd := range []string{"render", "watch", "ticks", "version"} {
		assert.Contains(t, out, cmd)
	}
}

func TestApp_UnknownLogFormat(t *testing.T) {
	_, _, err := run(t, "--log-format", "xml", "version")
	assert.Error(t, err)
}

func TestApp_Ticks(t *testing.T) {
	out, _, err := run(t, "ticks", "--min", "0", "--max", "97", "--size", "400", "--total", "10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)
	assert.Equal(t, []string{"0", "0.00"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"90", "371.13"}, strings.Fields(lines[9]))
}

func TestApp_TicksErrors(t *testing.T) {
	tests := [][]string{
		{"ticks", "--type", "nonsense"},
		{"ticks", "--type", "ordinal"},
		{"ticks", "extra"},
	}
	for _, args := range tests {
		if _, _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestApp_Render(t *testing.T) {
	dir := t.TempDir()
	chart := writeChart(t, dir, "Hours")

	out, _, err := run(t, "render", chart)
	require.NoError(t, err)
	assert.Contains(t, out, "<svg")

	svg := filepath.Join(dir, "chart.svg")
	out, stderr, err := run(t, "--log-level", "info", "--log-format", "json", "render", "-o", svg, chart)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "rendered")
	assert.Contains(t, stderr, `"file":`)
	data, err := os.ReadFile(svg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hours")
}

func TestApp_RenderErrors(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "render", filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: [1"), 0o644))
	svg := filepath.Join(dir, "bad.svg")
	_, _, err = run(t, "render", "-o", svg, bad)
	assert.Error(t, err)
	assert.NoFileExists(t, svg)

	_, _, err = run(t, "render")
	assert.Error(t, err)
}

func TestApp_Watch(t *testing.T) {
	dir := t.TempDir()
	chart := writeChart(t, dir, "Before")
	svg := filepath.Join(dir, "chart.svg")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		var stdout, stderr bytes.Buffer
		app := New().WithOutput(&stdout, &stderr)
		done <- app.ExecuteWithArgs(ctx, []string{"watch", "-o", svg, chart})
	}()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(svg)
		return err == nil && strings.Contains(string(data), "Before")
	}, 5*time.Second, 20*time.Millisecond)

	// The watcher may not be set up yet, so keep rewriting.
	require.Eventually(t, func() bool {
		content := strings.Replace(lineChart, "%s", "After", 1)
		if err := os.WriteFile(chart, []byte(content), 0o644); err != nil {
			return false
		}
		data, err := os.ReadFile(svg)
		return err == nil && strings.Contains(string(data), "After")
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestApp_WatchNeedsOutput(t *testing.T) {
	dir := t.TempDir()
	chart := writeChart(t, dir, "X")
	_, _, err := run(t, "watch", chart)
	assert.Error(t, err)
}
