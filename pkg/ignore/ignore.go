// Package ignore decides which directory entries are left out of a rendered tree.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// GitignoreFile is the file name read from the working directory when
// gitignore filtering is enabled.
const GitignoreFile = ".gitignore"

// Pattern is a glob validated once at construction time. Malformed globs are
// stored escaped and match only their literal text.
type Pattern struct {
	Glob     string // Glob matched against base names (trailing '/' removed for gitignore lines).
	Line     string // Original pattern text.
	LineNo   int    // Position among the loaded gitignore lines (1-based); 0 for command-line patterns.
	PathGlob bool   // Also matched against the working-directory-relative path.
}

// Options configures a Policy.
type Options struct {
	ShowHidden     bool     // Keep entries whose name starts with '.'.
	CustomPatterns []string // Globs matched against base names.
	UseGitignore   bool     // Load and apply GitignoreFile from WorkingDir.
	WorkingDir     string   // Defaults to the symlink-resolved process working directory.
}

// Policy is the composite exclusion rule set: hidden entries, custom globs and
// gitignore lines, checked in that order.
type Policy struct {
	showHidden   bool
	useGitignore bool
	workingDir   string
	custom       []*Pattern
	gitignore    []*Pattern
	logger       *zap.Logger
}

// New compiles the custom patterns and, when enabled, loads the gitignore file
// from the working directory. A missing or unreadable gitignore file leaves the
// policy without gitignore patterns.
func New(opts Options, logger *zap.Logger) (*Policy, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	workingDir := opts.WorkingDir
	if workingDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		// Getwd may report the logical path through a symlink; rendered
		// roots are always resolved.
		if resolved, err := filepath.EvalSymlinks(wd); err == nil {
			wd = resolved
		}
		workingDir = wd
	}

	p := &Policy{
		showHidden:   opts.ShowHidden,
		useGitignore: opts.UseGitignore,
		workingDir:   workingDir,
		logger:       logger,
	}

	for _, line := range opts.CustomPatterns {
		p.custom = append(p.custom, compile(line, line, 0, false, logger))
	}

	if opts.UseGitignore {
		lines, err := LoadGitignore(filepath.Join(workingDir, GitignoreFile))
		if err != nil {
			logger.Warn("Failed to read ignore file", zap.String("filePath", filepath.Join(workingDir, GitignoreFile)), zap.Error(err))
		}
		p.CompileGitignoreLines(lines...)
	}

	logger.Debug("Ignore policy ready",
		zap.Bool("showHidden", p.showHidden),
		zap.Int("customPatterns", len(p.custom)),
		zap.Int("gitignorePatterns", len(p.gitignore)))
	return p, nil
}

// LoadGitignore reads an ignore file and returns its pattern lines with blank
// lines and '#' comments dropped. A file that does not exist yields no lines
// and no error.
func LoadGitignore(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var lines []string
	for _, raw := range strings.Split(string(content), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// CompileGitignoreLines adds gitignore lines to the policy. Duplicate lines are
// kept once.
func (p *Policy) CompileGitignoreLines(lines ...string) {
	seen := make(map[string]struct{}, len(p.gitignore))
	for _, existing := range p.gitignore {
		seen[existing.Line] = struct{}{}
	}

	for i, line := range lines {
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}

		glob := strings.TrimRight(line, "/")
		p.gitignore = append(p.gitignore, compile(glob, line, i+1, strings.Contains(glob, "/"), p.logger))
	}
}

// GitignorePatterns returns the original text of every loaded gitignore line.
func (p *Policy) GitignorePatterns() []string {
	lines := make([]string, 0, len(p.gitignore))
	for _, pattern := range p.gitignore {
		lines = append(lines, pattern.Line)
	}
	return lines
}

// ShouldIgnore reports whether the entry at path is excluded. The first rule
// that matches wins.
//
// Gitignore lines containing '/' are also matched against the path relative to
// the working directory, not to the rendered root. Entries outside the working
// directory skip that check.
func (p *Policy) ShouldIgnore(path string) bool {
	name := filepath.Base(path)

	if !p.showHidden && strings.HasPrefix(name, ".") {
		return true
	}

	for _, pattern := range p.custom {
		if match(pattern.Glob, name) {
			p.logger.Debug("Entry matches custom pattern", zap.String("path", path), zap.String("pattern", pattern.Line))
			return true
		}
	}

	if !p.useGitignore {
		return false
	}

	var relPath string
	var relDone bool
	for _, pattern := range p.gitignore {
		if match(pattern.Glob, name) {
			p.logger.Debug("Entry matches gitignore pattern", zap.String("path", path), zap.String("pattern", pattern.Line))
			return true
		}
		if !pattern.PathGlob {
			continue
		}
		if !relDone {
			relPath, relDone = p.relativeToWorkingDir(path), true
		}
		if relPath != "" && match(pattern.Glob, relPath) {
			p.logger.Debug("Entry path matches gitignore pattern", zap.String("path", relPath), zap.String("pattern", pattern.Line))
			return true
		}
	}
	return false
}

// relativeToWorkingDir returns path relative to the working directory using
// forward slashes, or "" when path lies outside it.
func (p *Policy) relativeToWorkingDir(path string) string {
	rel, err := filepath.Rel(p.workingDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}

// compile validates glob. A malformed glob such as an unclosed '[' is kept as
// a literal name.
func compile(glob, line string, lineNo int, pathGlob bool, logger *zap.Logger) *Pattern {
	if !doublestar.ValidatePattern(glob) {
		logger.Warn("Invalid ignore pattern, matching it literally", zap.String("pattern", line), zap.Int("lineNo", lineNo))
		glob = escapeMeta(glob)
	}
	logger.Debug("Compiled ignore pattern", zap.String("pattern", line), zap.Int("lineNo", lineNo), zap.Bool("pathGlob", pathGlob))
	return &Pattern{Glob: glob, Line: line, LineNo: lineNo, PathGlob: pathGlob}
}

func escapeMeta(glob string) string {
	var b strings.Builder
	for _, r := range glob {
		if strings.ContainsRune(`\*?[]{}`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func match(glob, name string) bool {
	ok, err := doublestar.Match(glob, name)
	return err == nil && ok
}
