package segments

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const logFormatVersion = 1

// ErrConfigMismatch is returned when an existing log was written with a
// different record layout than the one requested.
var ErrConfigMismatch = errors.New("history log config mismatch")

// persistedConfig captures the record layout of a history log file.
type persistedConfig struct {
	Version    int    `json:"version"`
	Codec      string `json:"codec"`
	ValueSize  int    `json:"value_size"`
	RecordSize int    `json:"record_size"`
}

func newPersistedConfig(codec string, valueSize int) persistedConfig {
	return persistedConfig{
		Version:    logFormatVersion,
		Codec:      codec,
		ValueSize:  valueSize,
		RecordSize: diskRecordSize(valueSize),
	}
}

func configPath(base string) string { return base + ".config" }

// verifyOrWriteConfig loads an existing .config file if present and verifies it
// matches want. If the file does not exist, it is created.
// On mismatch, it returns an error detailing the differences.
func verifyOrWriteConfig(path string, want persistedConfig) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		// first time: write file
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create config file: %w", err)
		}
		defer f.Close()
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(want); err != nil {
			return fmt.Errorf("encode config: %w", err)
		}
		return f.Sync()
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()
	var have persistedConfig
	if err := json.NewDecoder(f).Decode(&have); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	if have != want {
		return fmt.Errorf("%w: have %+v, want %+v", ErrConfigMismatch, have, want)
	}
	return nil
}
