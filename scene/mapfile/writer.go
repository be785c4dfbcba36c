package mapfile

import (
	"encoding/json"
	"io"
	"os"
)

// Encode a map file as indented JSON.
func Write(w io.Writer, m *MapFile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Write a map file to disk.
func WriteFile(filename string, m *MapFile) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err = Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
