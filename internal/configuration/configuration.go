package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/packpal/packpal/internal/file"
)

var defaultConfig = Config{
	APIHost:        "http://localhost:5000",
	RequestTimeout: 60,

	Assistant: &AssistantConfig{
		SplitPercent: 55,
		JournalPath:  "~/.packpal/drafts.db",
	},

	Auth: &AuthConfig{
		CredentialsPath: "~/.packpal/credentials.json",
	},
}

// Config holds configuration for the packpal tool.
type Config struct {
	APIHost        string `json:"api_host"`
	RequestTimeout int    `json:"request_timeout"`

	Assistant *AssistantConfig `json:"assistant"`
	Auth      *AuthConfig      `json:"auth"`
}

// AssistantConfig holds configuration for the assistant session.
type AssistantConfig struct {
	// Initial width of the draft pane as a percentage of the terminal.
	SplitPercent int `json:"split_percent"`
	// Where we store draft journal snapshots.
	JournalPath string `json:"journal_path"`
}

// AuthConfig holds configuration for authentication.
type AuthConfig struct {
	// Where we store the session credentials.
	CredentialsPath string `json:"credentials_path"`
}

// Parse a configuration file.
func Parse(path string) (*Config, error) {
	path, err := file.ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedJournalPath, err := file.ExpandPath(config.Assistant.JournalPath)
	if err != nil {
		return nil, errors.Wrap(err, "expanding journal path")
	}
	config.Assistant.JournalPath = expandedJournalPath

	expandedCredentialsPath, err := file.ExpandPath(config.Auth.CredentialsPath)
	if err != nil {
		return nil, errors.Wrap(err, "expanding credentials path")
	}
	config.Auth.CredentialsPath = expandedCredentialsPath
	return config, nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	err = os.WriteFile(path, bytes, 0644)
	if err != nil {
		return errors.Wrap(err, "writing file")
	}

	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	// Create the directories.
	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
