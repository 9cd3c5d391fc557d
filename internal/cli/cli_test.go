package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/ib-77/unexceptional/internal/config"
	"github.com/ib-77/unexceptional/pkg/uncheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestLs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("abc"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hidden"), nil, 0o600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o700))

	out, err := execute(t, "ls", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "a.txt")
	assert.Contains(t, out, "sub/")
	assert.NotContains(t, out, ".hidden")

	out, err = execute(t, "ls", "-a", dir)
	require.NoError(t, err)
	assert.Contains(t, out, ".hidden")
}

func TestLs_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := execute(t, "ls", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)

	kind, ok := uncheck.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, uncheck.KindIO, kind)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFreePort(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "freeport")
	require.NoError(t, err)

	port, err := strconv.Atoi(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Positive(t, port)
}

func TestFreePort_BusyRange(t *testing.T) {
	t.Parallel()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	busy := strconv.Itoa(l.Addr().(*net.TCPAddr).Port)
	_, err = execute(t, "freeport", "--range", busy+"-"+busy)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no free port")
}

func TestClassify(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o600))
	missing := filepath.Join(dir, "missing")

	out, err := execute(t, "classify", "--head", "3", file, missing)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "ok")
	assert.Contains(t, lines[1], "3 bytes")
	assert.Contains(t, lines[2], "io")
}

func TestPortRange_Set(t *testing.T) {
	t.Parallel()

	var r portRange
	require.NoError(t, r.Set("8000-8010"))
	assert.Equal(t, portRange{from: 8000, to: 8010}, r)
	assert.Equal(t, "8000-8010", r.String())

	require.NoError(t, r.Set("9000"))
	assert.Equal(t, portRange{from: 9000, to: 9000}, r)

	for _, bad := range []string{"x", "10-x", "0-10", "10-5", "1-70000"} {
		assert.Error(t, r.Set(bad), bad)
	}
	assert.Equal(t, "range", r.Type())
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&buf, config.Logging{Level: "warn", Format: "json"}, false)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "WARN", rec["level"])

	buf.Reset()
	newLogger(&buf, config.Logging{Level: "warn", Format: "text"}, true).Debug("debug on")
	assert.Contains(t, buf.String(), "debug on")
}

func TestRun_ReportsFailure(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "ls", filepath.Join(t.TempDir(), "missing")})

	assert.Error(t, run(context.Background(), cmd))
}
