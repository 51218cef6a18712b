package jsonl

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// stageLines writes one JSON record per line to a temporary file next to
// path, creating parent directories if needed, and returns its name. The
// caller renames it into place or removes it.
func stageLines[T any](path string, records []T) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}

	fail := func(err error) (string, error) {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fail(err)
		}
		if _, err := tmp.Write(data); err != nil {
			return fail(err)
		}
		if _, err := tmp.WriteString("\n"); err != nil {
			return fail(err)
		}
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}
