package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testEnv is an isolated working directory and global templates directory.
type testEnv struct {
	root      string
	workDir   string
	globalDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	env := &testEnv{
		root:      root,
		workDir:   filepath.Join(root, "work"),
		globalDir: filepath.Join(root, "global"),
	}
	require.NoError(t, os.MkdirAll(env.workDir, 0o755))

	t.Setenv("STAMP_CONFIG", filepath.Join(root, "absent.yaml"))
	t.Setenv("STAMP_TEMPLATES_DIR", env.globalDir)
	t.Chdir(env.workDir)

	return env
}

// writeTemplate creates a template named name under dir.
func writeTemplate(t *testing.T, dir, name string, files map[string]string) string {
	t.Helper()
	tmplDir := filepath.Join(dir, name)
	for rel, content := range files {
		p := filepath.Join(tmplDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return tmplDir
}

// executeCommand runs the root command with args and stdin, returning what
// it wrote to stdout.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return stdout.String(), err
}
