package utils

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileExists checks if a file exists
func FileExists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return !os.IsNotExist(err)
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(fs afero.Fs, dir string) error {
	return fs.MkdirAll(dir, os.ModePerm)
}

// ReadJSON reads a JSON file and unmarshals it into the provided value
func ReadJSON(fs afero.Fs, path string, v any) error {
	file, err := fs.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	return decoder.Decode(v)
}

// WriteJSON writes data to a JSON file.
// The data goes to a sibling temp file first and is renamed into place.
func WriteJSON(fs afero.Fs, path string, v any) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := EnsureDir(fs, dir); err != nil {
		return err
	}

	tmp := path + ".tmp"
	file, err := fs.Create(tmp)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		file.Close()
		fs.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		fs.Remove(tmp)
		return err
	}

	return fs.Rename(tmp, path)
}
