// Package tree renders a directory hierarchy as an ASCII-art tree.
package tree

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"asciitree/pkg/ignore"

	"go.uber.org/zap"
)

// Box-drawing segments.
const (
	Pipe  = "│   "
	Tee   = "├── "
	Elbow = "└── "
	Blank = "    "
)

// LimitMarker is emitted in place of the remaining entries of a directory once
// the file budget is spent.
const LimitMarker = "... (file limit reached)"

// readDir lists a directory; replaced in tests to simulate read failures.
var readDir = os.ReadDir

// Counts is the number of directories and files emitted so far.
type Counts struct {
	Dirs  int
	Files int
}

// Summary formats the closing line of a rendering.
func (c Counts) Summary(dirsOnly bool) string {
	if dirsOnly {
		return fmt.Sprintf("%d directories", c.Dirs)
	}
	return fmt.Sprintf("%d directories, %d files", c.Dirs, c.Files)
}

// Renderer walks one directory tree. Its counters are shared by every
// recursive call, so MaxFiles caps the whole traversal. A Renderer is meant for
// a single rendering and is not safe for concurrent use.
type Renderer struct {
	cfg    Config
	policy *ignore.Policy
	counts Counts
	logger *zap.Logger
}

// New builds a Renderer and its ignore policy. Gitignore patterns are loaded
// here, once, when cfg.UseGitignore is set.
func New(cfg Config, logger *zap.Logger) (*Renderer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	policy, err := ignore.New(ignore.Options{
		ShowHidden:     cfg.ShowHidden,
		CustomPatterns: cfg.CustomIgnore,
		UseGitignore:   cfg.UseGitignore,
		WorkingDir:     cfg.WorkingDir,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build ignore policy: %w", err)
	}

	return &Renderer{
		cfg:    cfg,
		policy: policy,
		logger: logger,
	}, nil
}

// Counts returns the directories and files emitted so far.
func (r *Renderer) Counts() Counts {
	return r.counts
}

// Write renders root and writes the complete document: the root line, the
// tree, a blank line and the summary.
func (r *Renderer) Write(w io.Writer, root string) error {
	var out strings.Builder
	out.WriteString(root + "/\n")
	if body := r.Generate(root); body != "" {
		out.WriteString(body + "\n")
	}
	out.WriteString("\n")
	out.WriteString(r.counts.Summary(r.cfg.DirsOnly) + "\n")

	_, err := io.WriteString(w, out.String())
	return err
}

// Generate renders the tree below root without the root line.
func (r *Renderer) Generate(root string) string {
	r.logger.Debug("Generating tree", zap.String("root", root))
	body := r.Render(root, "", 0)
	r.logger.Debug("Tree generated", zap.Int("dirs", r.counts.Dirs), zap.Int("files", r.counts.Files))
	return body
}

// Render returns the lines for the children of directory, each preceded by
// prefix. An empty string means nothing was emitted.
func (r *Renderer) Render(directory, prefix string, depth int) string {
	if r.cfg.depthExceeded(depth) || r.budgetSpent() {
		return ""
	}

	if info, err := os.Stat(directory); err != nil || !info.IsDir() {
		return ""
	}

	entries := r.ListVisibleEntries(directory)
	var output []string

	for i, entry := range entries {
		if r.budgetSpent() {
			output = append(output, prefix+Elbow+LimitMarker)
			break
		}

		isLast := i == len(entries)-1
		connector := Tee
		extension := Pipe
		if isLast {
			connector = Elbow
			extension = Blank
		}

		output = append(output, prefix+connector+r.formatEntry(entry))

		isDir := entry.IsDir()
		if isDir {
			r.counts.Dirs++
		} else {
			r.counts.Files++
		}

		if isDir && (r.cfg.FollowLinks || !entry.IsSymlink()) {
			if subtree := r.Render(entry.Path, prefix+extension, depth+1); subtree != "" {
				output = append(output, subtree)
			}
		}
	}

	return strings.Join(output, "\n")
}

// ListVisibleEntries lists directory, drops ignored entries, applies the type
// filter and sorts the rest. Without a type filter, directories come first and
// each group is sorted separately. A directory that cannot be read has no
// visible entries.
func (r *Renderer) ListVisibleEntries(directory string) []*Entry {
	dirEntries, err := readDir(directory)
	if err != nil {
		r.logger.Debug("Failed to read directory", zap.String("directory", directory), zap.Error(err))
		return nil
	}

	entries := make([]*Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		entry := newEntry(directory, dirEntry)
		if r.policy.ShouldIgnore(entry.Path) {
			continue
		}
		entries = append(entries, entry)
	}

	switch {
	case r.cfg.DirsOnly:
		entries = filterEntries(entries, (*Entry).IsDir)
	case r.cfg.FilesOnly:
		entries = filterEntries(entries, (*Entry).IsFile)
	default:
		dirs := r.sortEntries(filterEntries(entries, (*Entry).IsDir))
		files := r.sortEntries(filterEntries(entries, (*Entry).IsFile))
		return append(dirs, files...)
	}

	return r.sortEntries(entries)
}

func (r *Renderer) budgetSpent() bool {
	return r.cfg.MaxFiles >= 0 && r.counts.Files >= r.cfg.MaxFiles
}

func filterEntries(entries []*Entry, keep func(*Entry) bool) []*Entry {
	kept := make([]*Entry, 0, len(entries))
	for _, entry := range entries {
		if keep(entry) {
			kept = append(kept, entry)
		}
	}
	return kept
}

type sortable struct {
	entry *Entry
	name  string
	value int64
}

// sortEntries orders entries by the configured key. The sort is stable, and
// reversing flips the comparison only, so ties keep listing order either way.
func (r *Renderer) sortEntries(entries []*Entry) []*Entry {
	keyed := make([]sortable, len(entries))
	for i, entry := range entries {
		keyed[i] = r.sortKey(entry)
	}

	less := func(a, b sortable) bool {
		if r.cfg.SortBy == SortByName {
			return a.name < b.name
		}
		return a.value < b.value
	}

	sort.SliceStable(keyed, func(i, j int) bool {
		if r.cfg.ReverseSort {
			return less(keyed[j], keyed[i])
		}
		return less(keyed[i], keyed[j])
	})

	sorted := make([]*Entry, len(keyed))
	for i, k := range keyed {
		sorted[i] = k.entry
	}
	return sorted
}

func (r *Renderer) sortKey(entry *Entry) sortable {
	key := sortable{entry: entry}
	switch r.cfg.SortBy {
	case SortBySize:
		if entry.IsFile() {
			if size, ok := entry.Size(); ok {
				key.value = size
			}
		}
	case SortByModified:
		if modTime, ok := entry.ModTime(); ok {
			key.value = modTime.UnixNano()
		}
	default:
		key.name = strings.ToLower(entry.Name)
	}
	return key
}
