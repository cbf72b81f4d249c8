package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	// Create temporary directory for testing
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	// Directory should not exist initially
	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	// Create directory
	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	// Directory should now exist
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	// Should end with "Downloads"
	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestGetConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("Failed to get config directory: %v", err)
	}

	if filepath.Base(dir) != ConfigDirName {
		t.Errorf("Expected directory to end with %q, got: %s", ConfigDirName, dir)
	}

	// Directory should have been created
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Config directory was not created: %v", err)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	tempDir := t.TempDir()
	nonExistentFile := filepath.Join(tempDir, "nonexistent.txt")

	err := OpenFileInManager(nonExistentFile)
	if err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}

	// Check that error contains the expected message
	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestOpenFileInManager_EmptyPath(t *testing.T) {
	err := OpenFileInManager("")
	if err == nil {
		t.Error("Expected error for empty path, got nil")
	}
}

func TestOpenFileInManager_WithExistingFile(t *testing.T) {
	// Create a temporary file
	tempFile, err := os.CreateTemp("", "test_file_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())
	tempFile.Close()

	// This test just verifies the function doesn't panic and handles the file path
	// We can't really test the actual opening without user interaction
	err = OpenFileInManager(tempFile.Name())

	// On CI or headless systems, this might fail, which is expected
	// We're mainly testing that the function handles the path correctly
	if err != nil {
		t.Logf("OpenFileInManager failed (expected on headless systems): %v", err)
	}
}

func TestResolveExistingFile(t *testing.T) {
	tempFile, err := os.CreateTemp("", "test_file_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tempFile.Name())
	tempFile.Close()

	resolved, err := resolveExistingFile(tempFile.Name())
	if err != nil {
		t.Fatalf("Failed to resolve existing file: %v", err)
	}
	if !filepath.IsAbs(resolved) {
		t.Errorf("Expected absolute path, got %s", resolved)
	}

	if _, err := resolveExistingFile(""); err == nil {
		t.Error("Expected error for empty path, got nil")
	}
}
