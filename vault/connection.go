package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/dayscribe/core"
)

// Connection performs note I/O against a configured vault.
type Connection struct {
	cfg *Config
}

// Connect creates a Connection for the given config.
func Connect(cfg *Config) *Connection {
	return &Connection{cfg: cfg}
}

// Config exposes the underlying configuration.
func (c *Connection) Config() *Config {
	return c.cfg
}

// EnsureFolder creates the folder for a type if missing and returns it.
func (c *Connection) EnsureFolder(folderType string) (string, error) {
	folder, err := c.cfg.Location(folderType)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("creating folder %s: %w", folder, err)
	}
	return folder, nil
}

// WriteNote writes note content into the folder for folderType. For event
// notes with folder organization configured, day selects the date subfolder.
func (c *Connection) WriteNote(content []byte, filename, folderType string, day time.Time) (string, error) {
	folder, err := c.EnsureFolder(folderType)
	if err != nil {
		return "", err
	}

	folder = c.dateFolder(folder, folderType, day)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", fmt.Errorf("creating folder %s: %w", folder, err)
	}

	path := filepath.Join(folder, sanitizeFilename(filename))
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("writing note %s: %w", path, err)
	}
	return path, nil
}

// ReadNote returns a note's content, or an error if it does not exist.
func (c *Connection) ReadNote(filename, folderType string, day time.Time) ([]byte, error) {
	path, err := c.notePath(filename, folderType, day)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading note %s: %w", path, err)
	}
	return data, nil
}

// NoteExists reports whether a note is already present.
func (c *Connection) NoteExists(filename, folderType string, day time.Time) bool {
	path, err := c.notePath(filename, folderType, day)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

func (c *Connection) notePath(filename, folderType string, day time.Time) (string, error) {
	folder, err := c.cfg.Location(folderType)
	if err != nil {
		return "", err
	}
	folder = c.dateFolder(folder, folderType, day)
	return filepath.Join(folder, sanitizeFilename(filename)), nil
}

// dateFolder applies the configured date-based layout. Only event notes are
// organized into date folders; daily notes stay flat.
func (c *Connection) dateFolder(folder, folderType string, day time.Time) string {
	if folderType != core.FolderCalendarEvents || day.IsZero() {
		return folder
	}
	switch c.cfg.Calendar.FolderOrganization {
	case "year":
		return filepath.Join(folder, day.Format("2006"))
	case "year/month":
		return filepath.Join(folder, day.Format("2006"), day.Format("01-January"))
	case "year/month/day":
		return filepath.Join(folder, day.Format("2006"), day.Format("01-January"), day.Format("02"))
	default:
		return folder
	}
}

// sanitizeFilename strips path separators and control characters so a note
// name cannot escape its folder.
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, string(os.PathSeparator), "-")
	name = strings.ReplaceAll(name, "/", "-")
	var b strings.Builder
	for _, r := range name {
		if r >= 0x20 {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
