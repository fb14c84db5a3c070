package downloadpolicy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kraklabs/dook/internal/downloadpolicy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPrompter struct{ answer bool }

func (f fixedPrompter) Confirm(string) bool { return f.answer }

func TestParse(t *testing.T) {
	assert.Equal(t, downloadpolicy.Yes, downloadpolicy.Parse(" YES \n"))
	assert.Equal(t, downloadpolicy.No, downloadpolicy.Parse("No"))
	assert.Equal(t, downloadpolicy.Ask, downloadpolicy.Parse("ask"))
	assert.Equal(t, downloadpolicy.Ask, downloadpolicy.Parse("garbage"))
}

func TestLoadMissingFileDefaultsToAsk(t *testing.T) {
	p, err := downloadpolicy.Load(filepath.Join(t.TempDir(), "nonexistent"))
	require.NoError(t, err)
	assert.Equal(t, downloadpolicy.Ask, p)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "downloads-policy")
	require.NoError(t, os.WriteFile(path, []byte("yes\n"), 0o644))

	p, err := downloadpolicy.Load(path)
	require.NoError(t, err)
	assert.Equal(t, downloadpolicy.Yes, p)
}

func TestCanDownload(t *testing.T) {
	assert.True(t, downloadpolicy.CanDownload(downloadpolicy.Yes, fixedPrompter{false}, "clone"))
	assert.False(t, downloadpolicy.CanDownload(downloadpolicy.No, fixedPrompter{true}, "clone"))
	assert.True(t, downloadpolicy.CanDownload(downloadpolicy.Ask, fixedPrompter{true}, "clone"))
	assert.False(t, downloadpolicy.CanDownload(downloadpolicy.Ask, fixedPrompter{false}, "clone"))
}
