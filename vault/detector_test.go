package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/dayscribe/core"
)

func makeDirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}
}

func TestFindVaults(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root,
		filepath.Join("Work", ".obsidian"),
		filepath.Join("nested", "Personal", ".obsidian"),
		filepath.Join("nested", "plain-folder"),
	)

	vaults := findVaults(root, 3)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "Work"),
		filepath.Join(root, "nested", "Personal"),
	}, vaults)
}

func TestFindVaults_DepthLimit(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, filepath.Join("a", "b", "c", "d", "Deep", ".obsidian"))

	assert.Empty(t, findVaults(root, 3))
}

func TestFindVaults_SkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, filepath.Join(".trash", "Old", ".obsidian"))

	assert.Empty(t, findVaults(root, 3))
}

func TestAnalyzeVault_Para(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "1-Projects", "2-Areas", "3-Resources", "4-Archive")

	s := AnalyzeVault(root)
	assert.Equal(t, "para", s.Type)
	assert.False(t, s.IsEmpty)
	assert.Equal(t, filepath.Join("1-Projects", "_Meeting Notes"), s.Locations[core.FolderCalendarEvents])
	assert.Equal(t, filepath.Join("2-Areas", "Daily Notes"), s.Locations[core.FolderDailyNotes])
}

func TestAnalyzeVault_GTD(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "00-Inbox", "01-Next Actions", "02-Projects", "03-Waiting For")

	s := AnalyzeVault(root)
	assert.Equal(t, "gtd", s.Type)
	assert.Equal(t, filepath.Join("02-Projects", "Meeting Notes"), s.Locations[core.FolderCalendarEvents])
}

func TestAnalyzeVault_TimeBased(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "Daily Notes", "Weekly Notes", "2026")

	s := AnalyzeVault(root)
	assert.Equal(t, "time_based", s.Type)
	assert.Equal(t, "Meetings", s.Locations[core.FolderCalendarEvents])
}

func TestAnalyzeVault_Zettelkasten(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "Permanent", "Literature", "Fleeting")

	s := AnalyzeVault(root)
	assert.Equal(t, "zettelkasten", s.Type)
	assert.Equal(t, filepath.Join("fleeting", "meetings"), s.Locations[core.FolderCalendarEvents])
}

func TestAnalyzeVault_Custom(t *testing.T) {
	root := t.TempDir()
	makeDirs(t, root, "Recipes", "Travel")

	s := AnalyzeVault(root)
	assert.Equal(t, "custom", s.Type)
	assert.False(t, s.IsEmpty)
	assert.Empty(t, s.Locations)
}

func TestAnalyzeVault_Empty(t *testing.T) {
	s := AnalyzeVault(t.TempDir())
	assert.Equal(t, "custom", s.Type)
	assert.True(t, s.IsEmpty)

	s = AnalyzeVault(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, s.IsEmpty)
}

func TestLocation_VaultRoot(t *testing.T) {
	cfg := DefaultConfig("/vault")

	got, err := cfg.Location(core.FolderVaultRoot)
	require.NoError(t, err)
	assert.Equal(t, "/vault", got)
}
