package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	testDir := filepath.Join("out", "Mix")

	if PathExists(fs, testDir) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	created, err := CreateDirectoryIfNotExists(fs, testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if !created {
		t.Error("expected directory to be reported as created")
	}
	if !PathExists(fs, testDir) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	created, err = CreateDirectoryIfNotExists(fs, testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
	if created {
		t.Error("existing directory must not be reported as created")
	}
}

func TestCreateDirectoryIfNotExists_FileInTheWay(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "Mix", []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := CreateDirectoryIfNotExists(fs, "Mix"); err == nil {
		t.Error("expected error when a file occupies the directory path")
	}
}

func TestPathExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, filepath.Join("out", "a.mp4"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{name: "file", path: filepath.Join("out", "a.mp4"), expected: true},
		{name: "directory", path: "out", expected: true},
		{name: "missing", path: filepath.Join("out", "b.mp4"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PathExists(fs, tt.path); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestUserConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path, err := UserConfigFile()
	if err != nil {
		t.Skipf("no user config directory: %v", err)
	}
	if filepath.Base(path) != ConfigFileName {
		t.Errorf("unexpected config file %s", path)
	}
	if filepath.Base(filepath.Dir(path)) != AppDirName {
		t.Errorf("unexpected config directory %s", path)
	}
}

// deniedFs fails every Stat with a permission error
type deniedFs struct {
	afero.Fs
}

func (deniedFs) Stat(name string) (os.FileInfo, error) {
	return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrPermission}
}

func TestPathExists_StatError(t *testing.T) {
	fs := deniedFs{Fs: afero.NewMemMapFs()}
	if err := afero.WriteFile(fs.Fs, "a.mp4", nil, 0644); err != nil {
		t.Fatal(err)
	}

	if PathExists(fs, "a.mp4") {
		t.Error("a path that cannot be stat'ed must not be reported as existing")
	}
}
