package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/arbor/pkg/adapters/file"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "actions.jsonl"))
	tests.RunActionStoreContract(t, store)
}

func TestFileStore_MissingFileIsEmptyLog(t *testing.T) {
	store := file.NewStore(filepath.Join(t.TempDir(), "never-written.jsonl"))

	calls, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, calls)

	// Clearing a missing log is fine too.
	require.NoError(t, store.Clear(context.Background()))
}

func TestFileStore_OneJSONDocumentPerLine(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "actions.jsonl")
	store := file.NewStore(path)

	require.NoError(t, store.Append(ctx, domain.SerializedActionCall{Name: "rename", Path: "./child"}))
	require.NoError(t, store.Append(ctx, domain.SerializedActionCall{Name: "set"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"name\":\"rename\",\"path\":\"./child\"}\n{\"name\":\"set\"}\n", string(data))
}

func TestFileStore_CorruptLineFailsList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actions.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("not-json\n"), 0644))

	store := file.NewStore(path)
	_, err := store.List(context.Background())
	require.Error(t, err)
}
