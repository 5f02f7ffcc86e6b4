package main

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
	"github.com/vdobler/facetplot/task"
	"go.uber.org/zap"
)

const probData = `[
  {"type": "a", "pRem": 0.1, "value": 1},
  {"type": "a", "pRem": 0.1, "value": 3},
  {"type": "b", "pRem": 0.2, "value": 2}
]`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := execute(t, "--list")
	require.NoError(t, err)
	assert.Equal(t, "multicast-prob\nmulticast-size\ntainted-admin\ntainted-dist\n", out)
}

func TestListWithConfig(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "tasks.yaml")
	require.NoError(t, os.WriteFile(config, []byte(`
tasks:
  - name: custom
    figures:
      - {x: pRem, y: value}
`), 0o644))

	out, err := execute(t, "--config", config, "--list")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(out, "\n"), "custom")
}

func TestArgs(t *testing.T) {
	_, err := execute(t)
	assert.Error(t, err)

	_, err = execute(t, "tainted-admin", "extra")
	assert.Error(t, err)

	_, err = execute(t, "--list", "tainted-admin")
	assert.Error(t, err)
}

func TestUnknownTask(t *testing.T) {
	_, err := execute(t, "no-such-task")
	assert.ErrorIs(t, err, task.ErrUnknownTask)
}

func TestRunTask(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "multicast-prob.json"), []byte(probData), 0o644))
	out := filepath.Join(dir, "figures")

	stdout, err := execute(t, "--dir", dir, "--out", out, "--format", "svg", "multicast-prob")
	require.NoError(t, err)

	want := filepath.Join(out, "multicast-prob-1.svg")
	assert.Equal(t, want+"\n", stdout)
	_, err = os.Stat(want)
	assert.NoError(t, err)
}

func TestRunMissingInput(t *testing.T) {
	_, err := execute(t, "--dir", t.TempDir(), "multicast-prob")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	called := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, zap.NewNop(), path, 10*time.Millisecond, func() error {
			called <- struct{}{}
			return nil
		})
	}()

	// The watcher may not be set up yet, so keep touching the file.
	deadline := time.After(10 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
wait:
	for {
		select {
		case <-called:
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte(probData), 0o644))
		case <-deadline:
			t.Fatal("watch callback was not called")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchFile did not return after cancel")
	}
}
