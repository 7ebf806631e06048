package logic

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/idelchi/cryptile/internal/config"
)

// LoadFileList reads a JSONC file holding an array of file paths.
func LoadFileList(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading file list %q: %w", path, err)
	}

	clean := jsonc.ToJSONInPlace(data)

	var files []string
	if err := json.Unmarshal(clean, &files); err != nil {
		return nil, fmt.Errorf("parsing file list %q: %w", path, err)
	}

	return files, nil
}

// resolveFiles merges positional args with the --files-from list, dropping duplicates.
func resolveFiles(cfg *config.Config) ([]string, error) {
	files := append([]string{}, cfg.Files...)

	if cfg.FilesFrom != "" {
		listed, err := LoadFileList(cfg.FilesFrom)
		if err != nil {
			return nil, err
		}

		files = append(files, listed...)
	}

	seen := make(map[string]struct{}, len(files))
	unique := files[:0]

	for _, file := range files {
		file = filepath.Clean(file)

		if _, ok := seen[file]; ok {
			continue
		}

		seen[file] = struct{}{}
		unique = append(unique, file)
	}

	if len(unique) == 0 {
		return nil, fmt.Errorf("no files given")
	}

	return unique, nil
}
