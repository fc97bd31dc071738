package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"asciitree/cmd"
	"asciitree/pkg/logging"

	"golang.org/x/term"
)

func main() {
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	syncLogger()

	if err != nil {
		os.Exit(1)
	}
}

// syncLogger flushes the logger when stderr is a terminal or a regular file.
// Syncing a pipe reports "invalid argument" on some platforms, which is not
// worth surfacing.
func syncLogger() {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if syncErr := logging.Logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
