package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCmd_StagesAndIndexes(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	docsDir := t.TempDir()
	require.NoError(t, configStore.Set("docs.dir", docsDir))

	src := filepath.Join(t.TempDir(), "policy.pdf")
	require.NoError(t, os.WriteFile(src, []byte("pdf bytes"), 0o644))

	out, err := runCommand(t, "add", src)
	require.NoError(t, err)

	staged := filepath.Join(docsDir, "policy.pdf")
	copied, err := os.ReadFile(staged)
	require.NoError(t, err)
	assert.Equal(t, []byte("pdf bytes"), copied)

	assert.Contains(t, out, "Added "+staged)
	assert.Contains(t, out, "Built collection policy-abc123def456")
}

func TestAddCmd_MissingSource(t *testing.T) {
	cleanup := setupTestServices(t)
	defer cleanup()

	docsDir := t.TempDir()
	require.NoError(t, configStore.Set("docs.dir", docsDir))

	_, err := runCommand(t, "add", filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
}
