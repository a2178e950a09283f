package vault

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gaurav-prasanna/dayscribe/core"
)

// maxVaultSearchDepth bounds the .obsidian scan so detection stays fast on
// large home directories.
const maxVaultSearchDepth = 3

// VaultStructure is a detected vault layout and the note locations that fit
// it.
type VaultStructure struct {
	Type      string // "para", "gtd", "time_based", "zettelkasten" or "custom"
	IsEmpty   bool
	Locations map[string]string
}

// DetectVaults searches common locations for Obsidian vaults (directories
// containing a .obsidian folder) and returns them sorted.
func DetectVaults() []string {
	var roots []string
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots,
			filepath.Join(home, "Documents", "Obsidian"),
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Obsidian"),
			filepath.Join(home, "Desktop"),
			filepath.Join(home, "OneDrive", "Documents"),
			filepath.Join(home, "Dropbox"),
			home,
		)
	}
	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, cwd, filepath.Dir(cwd))
	}

	seen := make(map[string]bool)
	var vaults []string
	for _, root := range roots {
		for _, v := range findVaults(root, maxVaultSearchDepth) {
			if !seen[v] {
				seen[v] = true
				vaults = append(vaults, v)
			}
		}
	}
	sort.Strings(vaults)
	return vaults
}

// findVaults walks base up to maxDepth looking for .obsidian directories and
// returns their parents. Unreadable directories are skipped.
func findVaults(base string, maxDepth int) []string {
	var vaults []string

	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		if depth > maxDepth {
			return
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			if e.Name() == ".obsidian" {
				vaults = append(vaults, dir)
				continue
			}
			if !strings.HasPrefix(e.Name(), ".") {
				walk(filepath.Join(dir, e.Name()), depth+1)
			}
		}
	}
	walk(base, 0)

	return vaults
}

// Layout signals, checked in order. The first matching classifier wins.
var (
	paraFolders = []string{"1-Projects", "2-Areas", "3-Resources", "4-Archive"}

	gtdPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^0\d-\w+`),
		regexp.MustCompile(`(?i)^Inbox`),
		regexp.MustCompile(`(?i)^Next Actions`),
		regexp.MustCompile(`(?i)^Projects`),
		regexp.MustCompile(`(?i)^Waiting`),
	}

	timeBasedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^Daily Notes`),
		regexp.MustCompile(`(?i)^Weekly Notes`),
		regexp.MustCompile(`(?i)^Monthly Notes`),
		regexp.MustCompile(`^20\d\d`),
	}

	zettelFolders = []string{"zettelkasten", "permanent", "literature", "fleeting", "index"}
)

// AnalyzeVault classifies a vault's top-level folder layout and suggests
// where calendar notes belong in it.
func AnalyzeVault(vaultPath string) VaultStructure {
	entries, err := os.ReadDir(vaultPath)
	if err != nil {
		return VaultStructure{Type: "custom", IsEmpty: true}
	}

	var folders []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			folders = append(folders, e.Name())
		}
	}
	if len(folders) == 0 {
		return VaultStructure{Type: "custom", IsEmpty: true}
	}

	switch {
	case isParaStructure(folders):
		return VaultStructure{Type: "para", Locations: map[string]string{
			core.FolderCalendarEvents: filepath.Join("1-Projects", "_Meeting Notes"),
			core.FolderDailyNotes:     filepath.Join("2-Areas", "Daily Notes"),
		}}
	case isGTDStructure(folders):
		return VaultStructure{Type: "gtd", Locations: map[string]string{
			core.FolderCalendarEvents: filepath.Join("02-Projects", "Meeting Notes"),
			core.FolderDailyNotes:     filepath.Join("05-Reference", "Daily Notes"),
		}}
	case isTimeBasedStructure(folders):
		return VaultStructure{Type: "time_based", Locations: map[string]string{
			core.FolderCalendarEvents: "Meetings",
			core.FolderDailyNotes:     "Daily Notes",
		}}
	case isZettelkastenStructure(folders):
		return VaultStructure{Type: "zettelkasten", Locations: map[string]string{
			core.FolderCalendarEvents: filepath.Join("fleeting", "meetings"),
			core.FolderDailyNotes:     filepath.Join("fleeting", "daily"),
		}}
	}
	return VaultStructure{Type: "custom"}
}

func isParaStructure(folders []string) bool {
	matches := 0
	for _, want := range paraFolders {
		for _, f := range folders {
			if f == want {
				matches++
				break
			}
		}
	}
	return matches >= 3
}

func isGTDStructure(folders []string) bool {
	return countPatternMatches(folders, gtdPatterns) >= 3
}

func isTimeBasedStructure(folders []string) bool {
	return countPatternMatches(folders, timeBasedPatterns) >= 2
}

func isZettelkastenStructure(folders []string) bool {
	matches := 0
	for _, f := range folders {
		for _, want := range zettelFolders {
			if strings.EqualFold(f, want) {
				matches++
				break
			}
		}
	}
	return matches >= 2
}

func countPatternMatches(folders []string, patterns []*regexp.Regexp) int {
	matches := 0
	for _, f := range folders {
		for _, p := range patterns {
			if p.MatchString(f) {
				matches++
				break
			}
		}
	}
	return matches
}
