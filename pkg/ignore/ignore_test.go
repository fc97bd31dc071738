package ignore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestShouldIgnoreHidden(t *testing.T) {
	tmp := t.TempDir()
	hide, err := New(Options{WorkingDir: tmp}, nil)
	if err != nil {
		t.Fatal(err)
	}
	show, err := New(Options{WorkingDir: tmp, ShowHidden: true}, nil)
	if err != nil {
		t.Fatal(err)
	}

	secret := filepath.Join(tmp, ".secret")
	visible := filepath.Join(tmp, "visible.txt")
	if !hide.ShouldIgnore(secret) {
		t.Fatalf(".secret should be hidden by default")
	}
	if hide.ShouldIgnore(visible) {
		t.Fatalf("visible.txt should not be ignored")
	}
	if show.ShouldIgnore(secret) {
		t.Fatalf(".secret should be shown with ShowHidden")
	}
}

func TestShouldIgnoreCustomPatterns(t *testing.T) {
	tmp := t.TempDir()
	p, err := New(Options{WorkingDir: tmp, CustomPatterns: []string{"*.pyc", "build", "log?.txt", "[ab]*.md"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		want bool
	}{
		{"main.pyc", true},
		{"main.py", false},
		{"build", true},
		{"builder", false},
		{"log1.txt", true},
		{"log12.txt", false},
		{"alpha.md", true},
		{"beta.md", true},
		{"gamma.md", false},
	}
	for _, c := range cases {
		if got := p.ShouldIgnore(filepath.Join(tmp, "sub", c.name)); got != c.want {
			t.Fatalf("ShouldIgnore(%q) got %v want %v", c.name, got, c.want)
		}
	}
}

func TestInvalidCustomPatternMatchesLiterally(t *testing.T) {
	tmp := t.TempDir()
	p, err := New(Options{WorkingDir: tmp, CustomPatterns: []string{"[", "a[b", "*.log"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		name string
		want bool
	}{
		{"[", true},
		{"a[b", true},
		{"ab", false},
		{"x", false},
		{"x.log", true},
	}
	for _, c := range cases {
		if got := p.ShouldIgnore(filepath.Join(tmp, c.name)); got != c.want {
			t.Fatalf("ShouldIgnore(%q) got %v want %v", c.name, got, c.want)
		}
	}
}

func TestLoadGitignore(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, GitignoreFile)
	content := "# comment\n\n*.log\n  node_modules/  \nbuild/out\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadGitignore(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"*.log", "node_modules/", "build/out"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}

	missing, err := LoadGitignore(filepath.Join(tmp, "nope"))
	if err != nil || missing != nil {
		t.Fatalf("missing file should yield nil, nil: %#v %v", missing, err)
	}
}

func TestGitignorePatterns(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, GitignoreFile), []byte("*.log\nnode_modules/\ndist/*.js\n*.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := New(Options{WorkingDir: tmp, UseGitignore: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.GitignorePatterns(); !reflect.DeepEqual(got, []string{"*.log", "node_modules/", "dist/*.js"}) {
		t.Fatalf("unexpected patterns: %#v", got)
	}

	cases := []struct {
		path string
		want bool
	}{
		{filepath.Join(tmp, "a.log"), true},
		{filepath.Join(tmp, "deep", "b.log"), true},
		{filepath.Join(tmp, "node_modules"), true},
		{filepath.Join(tmp, "pkg", "node_modules"), true},
		{filepath.Join(tmp, "dist", "app.js"), true},
		{filepath.Join(tmp, "other", "dist", "app.js"), false},
		{filepath.Join(tmp, "dist", "app.css"), false},
		{filepath.Join(tmp, "main.go"), false},
	}
	for _, c := range cases {
		if got := p.ShouldIgnore(c.path); got != c.want {
			t.Fatalf("ShouldIgnore(%q) got %v want %v", c.path, got, c.want)
		}
	}
}

func TestGitignoreDisabled(t *testing.T) {
	tmp := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmp, GitignoreFile), []byte("*.log\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := New(Options{WorkingDir: tmp}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.ShouldIgnore(filepath.Join(tmp, "a.log")) {
		t.Fatalf("gitignore patterns must not apply when disabled")
	}
	if len(p.GitignorePatterns()) != 0 {
		t.Fatalf("gitignore should not be loaded when disabled")
	}
}

// Path patterns are evaluated against the working directory, so a tree rooted
// elsewhere does not see them.
func TestGitignorePathPatternUsesWorkingDir(t *testing.T) {
	cwd := t.TempDir()
	if err := os.WriteFile(filepath.Join(cwd, GitignoreFile), []byte("src/gen\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := New(Options{WorkingDir: cwd, UseGitignore: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !p.ShouldIgnore(filepath.Join(cwd, "src", "gen")) {
		t.Fatalf("src/gen under the working directory should be ignored")
	}
	if p.ShouldIgnore(filepath.Join(cwd, "project", "src", "gen")) {
		t.Fatalf("path pattern must be relative to the working directory")
	}
	if p.ShouldIgnore(filepath.Join(filepath.Dir(cwd), "elsewhere", "src", "gen")) {
		t.Fatalf("entries outside the working directory skip path patterns")
	}
}

func TestMissingGitignore(t *testing.T) {
	tmp := t.TempDir()
	p, err := New(Options{WorkingDir: tmp, UseGitignore: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.ShouldIgnore(filepath.Join(tmp, "anything")) {
		t.Fatalf("no patterns should mean nothing is ignored")
	}
}

func TestWorkingDirThroughSymlink(t *testing.T) {
	base := t.TempDir()
	realDir := filepath.Join(base, "realDir")
	if err := os.MkdirAll(filepath.Join(realDir, "src", "gen"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(realDir, GitignoreFile), []byte("src/gen\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(base, "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	t.Chdir(link)

	p, err := New(Options{UseGitignore: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := filepath.EvalSymlinks(realDir)
	if err != nil {
		t.Fatal(err)
	}
	if !p.ShouldIgnore(filepath.Join(resolved, "src", "gen")) {
		t.Fatalf("src/gen should be ignored when the working directory is reached through a link")
	}
	if p.ShouldIgnore(filepath.Join(resolved, "src", "main.go")) {
		t.Fatalf("src/main.go should not be ignored")
	}
}

// A single '*' stays inside one path segment; '**' crosses segments.
func TestGitignorePathPatternSegments(t *testing.T) {
	cwd := t.TempDir()
	if err := os.WriteFile(filepath.Join(cwd, GitignoreFile), []byte("build/*.o\nout/**/*.tmp\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := New(Options{WorkingDir: cwd, UseGitignore: true}, nil)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		rel  string
		want bool
	}{
		{"build/x.o", true},
		{"build/sub/x.o", false},
		{"out/a.tmp", true},
		{"out/a/b/c.tmp", true},
	}
	for _, c := range cases {
		if got := p.ShouldIgnore(filepath.Join(cwd, filepath.FromSlash(c.rel))); got != c.want {
			t.Fatalf("ShouldIgnore(%q) got %v want %v", c.rel, got, c.want)
		}
	}
}
