package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AtomicWriteFile writes data to a temporary file and then renames it to the target file.
// AtomicWriteFile 将数据写入临时文件，然后将其重命名为目标文件。
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	tmpFile, err := os.CreateTemp(dir, "atomic-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmpFile.Name()) // Clean up if something fails

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Chmod(perm); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}

	return os.Rename(tmpFile.Name(), filename)
}

// ReadLines reads all non-empty lines from a file.
// ReadLines 读取文件中的所有非空行。
func ReadLines(filePath string) ([]string, error) {
	if filePath == "" {
		return nil, nil
	}
	safePath := filepath.Clean(filePath) // Sanitize path to prevent directory traversal
	if _, err := os.Stat(safePath); os.IsNotExist(err) {
		return nil, nil
	}
	content, err := os.ReadFile(safePath) // #nosec G304 // filePath is sanitized with filepath.Clean
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines, nil
}
