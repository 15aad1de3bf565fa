// Package jsonfile реализует хранилища словаря и истории викторин поверх
// плоских JSON-файлов: каждая коллекция — один файл с одним JSON-массивом,
// каждая мутация перечитывает и перезаписывает файл целиком.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	wordsFileName    = "words.json"
	attemptsFileName = "quiz_attempts.json"
)

// ensureFile создает каталог данных и файл с пустым массивом, если их еще нет
func ensureFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
			return fmt.Errorf("failed to initialize %s: %w", path, err)
		}
	}
	return nil
}

// readJSON читает весь файл и декодирует его в dest
func readJSON(path string, dest interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		data = []byte("[]")
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writeJSON сериализует v с отступами и перезаписывает файл целиком
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
