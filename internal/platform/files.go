package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// CreateDirectoryIfNotExists ensures the directory exists
func CreateDirectoryIfNotExists(dir string) error {
	return os.MkdirAll(dir, DefaultDirPermissions)
}

// OpenFolder opens a folder in the platform's default file manager
func OpenFolder(folderPath string) error {
	if folderPath == "" {
		return fmt.Errorf("no folder to open")
	}

	absPath, err := filepath.Abs(folderPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Start()
	case OSWindows:
		return exec.Command(ExplorerCommand, absPath).Start()
	default:
		return exec.Command(XDGOpenCommand, absPath).Start()
	}
}

// OpenFile opens the folder containing the given file. A missing file is
// an error so callers can report it as status text.
func OpenFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("no file to open")
	}
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file not found: %s", filePath)
	}
	return OpenFolder(filepath.Dir(filePath))
}
