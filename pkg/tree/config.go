package tree

import (
	"fmt"
	"strings"
)

// NoLimit disables MaxDepth or MaxFiles.
const NoLimit = -1

// SortKey selects the ordering of sibling entries.
type SortKey int

const (
	SortByName     SortKey = iota // Case-insensitive base name.
	SortBySize                    // File size in bytes; directories count as 0.
	SortByModified                // Last modification time.
)

var sortKeyNames = map[SortKey]string{
	SortByName:     "name",
	SortBySize:     "size",
	SortByModified: "modified",
}

// SortKeyNames lists the accepted sort key names in display order.
var SortKeyNames = []string{"name", "size", "modified"}

func (k SortKey) String() string {
	if name, ok := sortKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SortKey(%d)", int(k))
}

// ParseSortKey converts a sort key name into a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	for key, name := range sortKeyNames {
		if name == normalized {
			return key, nil
		}
	}
	return SortByName, fmt.Errorf("invalid sort key %q (choose from %s)", s, strings.Join(SortKeyNames, ", "))
}

// Config holds the options for one tree rendering.
// It is not modified once a Renderer has been built from it.
type Config struct {
	MaxDepth        int      // Directories at depth >= MaxDepth render nothing; NoLimit disables.
	MaxFiles        int      // Cap on files shown across the whole traversal; NoLimit disables.
	DirsOnly        bool     // Keep only directories. Wins over FilesOnly.
	FilesOnly       bool     // Keep only regular files.
	ShowHidden      bool     // Include entries whose name starts with '.'.
	FollowLinks     bool     // Recurse into symbolic links to directories.
	UseGitignore    bool     // Apply patterns from .gitignore in WorkingDir.
	CustomIgnore    []string // Globs matched against base names.
	SortBy          SortKey  // Sibling ordering.
	ReverseSort     bool     // Reverse SortBy.
	ShowSize        bool     // Append a human-readable size to files.
	ShowPermissions bool     // Prefix entries with their permission bits.
	FullPath        bool     // Show the full path instead of the base name.
	WorkingDir      string   // Location of .gitignore and base for its path patterns; defaults to the process working directory.
}

// DefaultConfig returns a Config with no limits, sorted by name.
func DefaultConfig() Config {
	return Config{
		MaxDepth: NoLimit,
		MaxFiles: NoLimit,
		SortBy:   SortByName,
	}
}

func (c Config) depthExceeded(depth int) bool {
	return c.MaxDepth >= 0 && depth >= c.MaxDepth
}
