package treefile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/arbor/internal/treefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
fields:
  name: project
  priority: 3
children:
  backlog:
    fields:
      open: true
  team:
    children:
      lead:
        fields:
          name: sam
`

func TestParseAndBuild(t *testing.T) {
	spec, err := treefile.Parse([]byte(sampleDoc))
	require.NoError(t, err)

	tree := treefile.Build(spec)
	root := tree.Root()

	assert.Equal(t, "project", root.Get("name"))
	assert.Equal(t, 3, root.Get("priority"))

	backlog := root.Child("backlog")
	require.NotNil(t, backlog)
	assert.Equal(t, true, backlog.Get("open"))

	lead := root.Child("team").Child("lead")
	require.NotNil(t, lead)
	assert.Equal(t, "sam", lead.Get("name"))

	// Built objects carry the built-in actions.
	_, err = lead.Invoke("rename", "alex")
	require.NoError(t, err)
	assert.Equal(t, "alex", lead.Get("name"))
}

func TestParse_UnknownKeysRejected(t *testing.T) {
	_, err := treefile.Parse([]byte("fields:\n  a: 1\nactions:\n  - nope\n"))
	require.Error(t, err)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := treefile.Parse([]byte("fields: [unclosed"))
	require.Error(t, err)
}

func TestParse_EmptyDocumentIsEmptyTree(t *testing.T) {
	spec, err := treefile.Parse(nil)
	require.NoError(t, err)

	tree := treefile.Build(spec)
	assert.Empty(t, tree.Root().Children())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	spec, err := treefile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "project", spec.Fields["name"])

	_, err = treefile.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
