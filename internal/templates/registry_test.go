package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
)

// newLayeredFs builds a project three levels below a home directory with
// templates at every level plus a global directory.
func newLayeredFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/", map[string]string{
		"home/user/projects/app/.stamp/templates/api/main.go": "deep",
		"home/user/projects/app/.stamp/templates/web/index":   "deep",
		"home/user/.stamp/templates/api/main.go":              "shallow",
		"home/user/.stamp/templates/lib/lib.go":               "shallow",
		"cfg/stamp/templates/api/main.go":                     "global",
		"cfg/stamp/templates/lib/lib.go":                      "global",
		"cfg/stamp/templates/cli/main.go":                     "global",
		"cfg/stamp/templates/README":                          "not a template",
	})
	return fsys
}

func TestDiscover_Precedence(t *testing.T) {
	fsys := newLayeredFs(t)
	d := NewDiscoverer(fsys, "/cfg/stamp/templates")

	reg, err := d.Discover("/home/user/projects/app")
	require.NoError(t, err)

	assert.Equal(t, Registry{
		"api": filepath.FromSlash("/home/user/projects/app/.stamp/templates/api"),
		"web": filepath.FromSlash("/home/user/projects/app/.stamp/templates/web"),
		"lib": filepath.FromSlash("/home/user/.stamp/templates/lib"),
		"cli": filepath.FromSlash("/cfg/stamp/templates/cli"),
	}, reg)
}

func TestDiscover_FromShallowerDirectory(t *testing.T) {
	fsys := newLayeredFs(t)
	d := NewDiscoverer(fsys, "/cfg/stamp/templates")

	reg, err := d.Discover("/home/user")
	require.NoError(t, err)

	assert.Equal(t, filepath.FromSlash("/home/user/.stamp/templates/api"), reg["api"])
	assert.NotContains(t, reg, "web")
	assert.Equal(t, filepath.FromSlash("/cfg/stamp/templates/cli"), reg["cli"])
}

func TestDiscover_IntermediateDirectoryWithoutTemplates(t *testing.T) {
	fsys := newLayeredFs(t)
	require.NoError(t, fsys.MkdirAll("/home/user/projects/app/src/pkg", 0o755))
	d := NewDiscoverer(fsys, "/cfg/stamp/templates")

	reg, err := d.Discover("/home/user/projects/app/src/pkg")
	require.NoError(t, err)

	assert.Equal(t, filepath.FromSlash("/home/user/projects/app/.stamp/templates/api"), reg["api"])
}

func TestDiscover_MissingDirectoriesAreNotErrors(t *testing.T) {
	fsys := afero.NewMemMapFs()
	d := NewDiscoverer(fsys, "/nowhere/stamp/templates")

	reg, err := d.Discover("/also/nowhere")
	require.NoError(t, err)
	assert.Empty(t, reg)
}

func TestDiscover_GlobalDirectoryOnly(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/", map[string]string{
		"cfg/stamp/templates/cli/main.go":  "global",
		"cfg/.stamp/templates/hidden/x.go": "never scanned",
	})
	d := NewDiscoverer(fsys, "/cfg/stamp/templates")

	reg, err := d.Discover("/work")
	require.NoError(t, err)

	assert.Equal(t, []string{"cli"}, reg.Names())
}

func TestScanLevel_DoesNotModifyInput(t *testing.T) {
	fsys := newLayeredFs(t)
	in := Registry{"api": "/elsewhere/api"}

	out, err := ScanLevel(fsys, in, "/cfg/stamp/templates")
	require.NoError(t, err)

	assert.Equal(t, Registry{"api": "/elsewhere/api"}, in)
	assert.Equal(t, "/elsewhere/api", out["api"])
	assert.Equal(t, filepath.FromSlash("/cfg/stamp/templates/cli"), out["cli"])
	assert.NotContains(t, out, "README")
}

func TestScanLevel_TemplatesPathIsFile(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeTree(t, fsys, "/", map[string]string{"work/.stamp/templates": "file"})

	out, err := ScanLevel(fsys, Registry{}, "/work/.stamp/templates")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestScanLevel_ParentIsFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".stamp"), []byte("file"), 0o644))

	out, err := ScanLevel(afero.NewOsFs(), Registry{}, filepath.Join(root, ".stamp", "templates"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestScanLevel_UnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}

	dir := filepath.Join(t.TempDir(), "templates")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "api"), 0o755))
	require.NoError(t, os.Chmod(dir, 0o000))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := ScanLevel(afero.NewOsFs(), Registry{}, dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrFilesystem)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestScanLevel_FollowsSymlinkedTemplates(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "shared", "api")
	require.NoError(t, os.MkdirAll(target, 0o755))
	dir := filepath.Join(root, "templates")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	if err := os.Symlink(target, filepath.Join(dir, "api")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	out, err := ScanLevel(afero.NewOsFs(), Registry{}, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "api"), out["api"])
}

func TestRegistry_LookupAndTemplates(t *testing.T) {
	reg := Registry{"web": "/t/web", "api": "/t/api"}

	tmpl, ok := reg.Lookup("api")
	require.True(t, ok)
	assert.Equal(t, Template{Name: "api", Path: "/t/api"}, tmpl)

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"api", "web"}, reg.Names())
	assert.Equal(t, []Template{
		{Name: "api", Path: "/t/api"},
		{Name: "web", Path: "/t/web"},
	}, reg.Templates())
}
