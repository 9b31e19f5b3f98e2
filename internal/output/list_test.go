package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleEntries = []TemplateEntry{
	{Name: "api", Path: "/work/.stamp/templates/api"},
	{Name: "cli", Path: "/home/user/.config/stamp/templates/cli"},
}

func TestWriteTemplateList_Text(t *testing.T) {
	t.Run("names only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteTemplateList(&buf, sampleEntries, false, FormatText))

		out := buf.String()
		assert.Contains(t, out, "Installed templates")
		assert.Contains(t, out, "• api\n")
		assert.Contains(t, out, "• cli\n")
		assert.NotContains(t, out, "/work/.stamp")
	})

	t.Run("verbose includes paths", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteTemplateList(&buf, sampleEntries, true, FormatText))

		out := buf.String()
		assert.Contains(t, out, "• api ")
		assert.Contains(t, out, "/work/.stamp/templates/api")
		assert.Contains(t, out, "/home/user/.config/stamp/templates/cli")
	})
}

func TestWriteTemplateList_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplateList(&buf, sampleEntries, false, FormatYAML))

	g := goldie.New(t)
	g.Assert(t, "template_list_yaml", buf.Bytes())
}

func TestWriteTemplateList_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplateList(&buf, sampleEntries, false, FormatJSON))

	var got []TemplateEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleEntries, got)
}

func TestWriteTemplateList_EmptyJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplateList(&buf, nil, false, FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}
