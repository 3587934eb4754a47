package logos

import (
	"bytes"
	"os"
)

// writeFileAtomic replaces path with data via a temp file and rename. Identical
// content is left untouched so unchanged logos keep their mtime.
func writeFileAtomic(path string, data []byte) error {
	if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
