package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Configuration location
const (
	AppDirName     = "ytmp4"
	ConfigFileName = "config.yaml"
)

// NewFS returns the filesystem used outside tests
func NewFS() afero.Fs {
	return afero.NewOsFs()
}

// PathExists reports whether anything (file, directory, link) exists at path.
// A path that cannot be stat'ed, e.g. for lack of permission, is reported as
// absent so the caller's next operation surfaces the real error.
func PathExists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist and reports
// whether it had to be created
func CreateDirectoryIfNotExists(fs afero.Fs, dirPath string) (bool, error) {
	info, err := fs.Stat(dirPath)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s exists and is not a directory", dirPath)
		}
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := fs.MkdirAll(dirPath, DefaultDirPermissions); err != nil {
		return false, err
	}
	return true, nil
}

// UserConfigFile returns the per-user configuration file path,
// e.g. ~/.config/ytmp4/config.yaml on Linux
func UserConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, AppDirName, ConfigFileName), nil
}
