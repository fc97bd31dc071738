package cmd

import (
	"io"
	"os"

	"asciitree/pkg/logging"
	"asciitree/pkg/tree"
	"asciitree/pkg/version"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	depthFlag       = "depth"
	maxFilesFlag    = "max-files"
	dirsOnlyFlag    = "dirs-only"
	filesOnlyFlag   = "files-only"
	allFlag         = "all"
	followLinksFlag = "follow-links"
	gitignoreFlag   = "gitignore"
	ignoreFlag      = "ignore"
	sortByFlag      = "sort-by"
	reverseFlag     = "reverse"
	sizeFlag        = "size"
	permissionsFlag = "permissions"
	fullPathFlag    = "full-path"
	configFlag      = "config"
	debugFlag       = "debug"

	defaultPath = "."

	rootUse   = "asciitree [path]"
	rootShort = "Generate an ASCII tree of a directory"
	rootLong  = `asciitree prints the directory structure below path (default: the current
directory) as an ASCII tree, followed by a count of directories and files.

Entries can be filtered (hidden files, glob patterns, .gitignore from the
current working directory, directories or files only), ordered by name, size or
modification time, and limited by depth or total number of files.`
	rootExample = `  asciitree                               # Current directory, unlimited depth
  asciitree /path/to/dir --depth 3        # Limit to 3 levels deep
  asciitree . --gitignore                 # Respect .gitignore patterns
  asciitree . --dirs-only                 # Show only directories
  asciitree . --ignore "*.pyc" "*.log"    # Ignore specific patterns
  asciitree . --sort-by size --size       # Sort by size and show sizes`
)

// Execute builds the root command, runs it against os.Args and returns the
// first error. main reports the error and sets the exit status.
func Execute() error {
	root := NewRootCmd(os.Stdout, os.Stderr)
	root.SetArgs(normalizeArgs(os.Args[1:]))
	return root.Execute()
}

// NewRootCmd returns the root command writing the tree to stdout and cobra
// messages to stderr.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	settings := viper.New()
	sortBy := tree.SortByName
	var configFile string
	var debug bool

	root := &cobra.Command{
		Use:           rootUse,
		Short:         rootShort,
		Long:          rootLong,
		Example:       rootExample,
		Args:          cobra.MaximumNArgs(1),
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(debug, version.AppName, version.Get().Version)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPath
			if len(args) == 1 {
				path = args[0]
			}

			cfg, err := buildConfig(settings, cmd.Flags(), configFile)
			if err != nil {
				return err
			}

			rootPath, err := tree.ResolveRoot(path)
			if err != nil {
				return err
			}

			logger := logging.Logger
			logger.Debug("Rendering tree",
				zap.String("root", rootPath),
				zap.Int("maxDepth", cfg.MaxDepth),
				zap.Int("maxFiles", cfg.MaxFiles),
				zap.Stringer("sortBy", cfg.SortBy))

			renderer, err := tree.New(cfg, logger)
			if err != nil {
				return err
			}
			return renderer.Write(stdout, rootPath)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetVersionTemplate(version.Get().String() + "\n")

	flags := root.Flags()
	flags.IntP(depthFlag, "d", 0, "maximum depth to traverse")
	flags.IntP(maxFilesFlag, "L", 0, "maximum number of files to display")
	flags.Bool(dirsOnlyFlag, false, "show only directories")
	flags.Bool(filesOnlyFlag, false, "show only files")
	flags.BoolP(allFlag, "a", false, "show hidden files (starting with .)")
	flags.BoolP(followLinksFlag, "l", false, "follow symbolic links")
	flags.Bool(gitignoreFlag, false, "respect .gitignore patterns from the current working directory")
	flags.StringArrayP(ignoreFlag, "I", nil, "`patterns` to ignore (supports wildcards); several may follow one flag")
	flags.Var(newSortKeyValue(&sortBy), sortByFlag, "sort entries by `key`: name, size, or modified")
	flags.BoolP(reverseFlag, "r", false, "reverse sort order")
	flags.BoolP(sizeFlag, "s", false, "show file sizes")
	flags.BoolP(permissionsFlag, "p", false, "show file permissions")
	flags.BoolP(fullPathFlag, "f", false, "show full path for each entry")
	flags.StringVar(&configFile, configFlag, "", "configuration `file` supplying flag defaults")
	flags.BoolVar(&debug, debugFlag, false, "enable debug logging on stderr")

	return root
}
