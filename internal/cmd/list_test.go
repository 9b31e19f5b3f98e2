package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
	"github.com/stamp-dev/stamp/internal/output"
)

func TestList(t *testing.T) {
	env := newTestEnv(t)
	writeTemplate(t, env.globalDir, "api", map[string]string{"a": ""})
	writeTemplate(t, env.globalDir, "cli", map[string]string{"c": ""})
	localAPI := writeTemplate(t, filepath.Join(env.workDir, ".stamp", "templates"), "api", map[string]string{"a": ""})

	t.Run("text", func(t *testing.T) {
		out, err := executeCommand(t, "", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Installed templates")
		assert.Contains(t, out, "• api\n")
		assert.Contains(t, out, "• cli\n")
	})

	t.Run("verbose shows the winning path", func(t *testing.T) {
		out, err := executeCommand(t, "", "list", "-v")
		require.NoError(t, err)
		assert.Contains(t, out, "• api "+localAPI+"\n")
		assert.Contains(t, out, "• cli "+filepath.Join(env.globalDir, "cli")+"\n")
	})

	t.Run("json", func(t *testing.T) {
		out, err := executeCommand(t, "", "list", "-o", "json")
		require.NoError(t, err)

		var entries []output.TemplateEntry
		require.NoError(t, json.Unmarshal([]byte(out), &entries))
		assert.Equal(t, []output.TemplateEntry{
			{Name: "api", Path: localAPI},
			{Name: "cli", Path: filepath.Join(env.globalDir, "cli")},
		}, entries)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := executeCommand(t, "", "list", "-o", "toml")
		require.Error(t, err)
		assert.ErrorIs(t, err, oerrors.ErrArgument)
	})
}

func TestList_NoTemplates(t *testing.T) {
	newTestEnv(t)

	out, err := executeCommand(t, "", "list", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}
