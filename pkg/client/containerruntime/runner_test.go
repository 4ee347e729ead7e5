package containerruntime_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/devantler-tech/dbcli/pkg/client/containerruntime"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExecRunner_DefaultsBinary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, containerruntime.DefaultBinary, containerruntime.NewExecRunner("", nil).Binary())
	assert.Equal(t, "podman", containerruntime.NewExecRunner("podman", nil).Binary())
}

func TestExecRunner_QueryCapturesStdout(t *testing.T) {
	t.Parallel()

	runner := containerruntime.NewExecRunner("echo", nil)

	out, err := runner.Query(context.Background(), "db1", "db2")

	require.NoError(t, err)
	assert.Equal(t, "db1 db2\n", out)
}

func TestExecRunner_QueryNonZeroExit(t *testing.T) {
	t.Parallel()

	runner := containerruntime.NewExecRunner("false", nil)

	_, err := runner.Query(context.Background(), "ps")

	require.ErrorIs(t, err, containerruntime.ErrRuntime)
	assert.Contains(t, err.Error(), "false ps")
}

func TestExecRunner_QueryMissingBinary(t *testing.T) {
	t.Parallel()

	runner := containerruntime.NewExecRunner("dbcli-no-such-runtime", nil)

	_, err := runner.Query(context.Background(), "ps")

	require.ErrorIs(t, err, containerruntime.ErrRuntime)
}

func TestExecRunner_RunAttachesStreams(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	runner := containerruntime.NewExecRunner("cat", nil)

	err := runner.Run(context.Background(), containerruntime.Streams{
		In:     strings.NewReader("select 1;\n"),
		Out:    &stdout,
		ErrOut: &stderr,
	})

	require.NoError(t, err)
	assert.Equal(t, "select 1;\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestExecRunner_RunNonZeroExit(t *testing.T) {
	t.Parallel()

	runner := containerruntime.NewExecRunner("false", nil)

	err := runner.Run(context.Background(), containerruntime.Streams{}, "exec")

	require.ErrorIs(t, err, containerruntime.ErrRuntime)
	assert.Contains(t, err.Error(), "exit status 1")
}

func TestExecRunner_LogsRedactedArgs(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	runner := containerruntime.NewExecRunner("true", logger)

	_, err := runner.Query(context.Background(), "exec", "-it", "db", "mysql", "-u", "root", "-psecret")
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.DebugLevel, entry.Level)
	assert.Equal(t, "true", entry.Data["runtime"])
	assert.Equal(t, "exec -it db mysql -u root -p***", entry.Data["args"])
	assert.NotContains(t, entry.Data["args"], "secret")
}

func TestRedactArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "mysql attached password",
			args: []string{"exec", "-it", "db", "mysql", "-u", "root", "-pPa55"},
			want: []string{"exec", "-it", "db", "mysql", "-u", "root", "-p***"},
		},
		{
			name: "mongosh separated password",
			args: []string{"mongosh", "-u", "root", "-p", "Pa55", "admin"},
			want: []string{"mongosh", "-u", "root", "-p", "***", "admin"},
		},
		{
			name: "long password flag",
			args: []string{"--password", "Pa55", "--password=x"},
			want: []string{"--password", "***", "--password=***"},
		},
		{
			name: "nothing to redact",
			args: []string{"ps", "--format", "{{.Names}}"},
			want: []string{"ps", "--format", "{{.Names}}"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			original := append([]string(nil), tt.args...)

			assert.Equal(t, tt.want, containerruntime.RedactArgs(tt.args))
			assert.Equal(t, original, tt.args)
		})
	}
}
