// Package config stores CLI settings in a TOML file with named profiles.
// Each profile holds an API key; the active profile comes from the
// LINEAR_CLI_PROFILE environment variable, falling back to the file's
// current field and then to "default".
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	configFileName = "config.toml"
	configDirName  = "linearcli"

	DefaultProfile = "default"

	EnvAPIKey  = "LINEAR_API_KEY"
	EnvOutput  = "LINEAR_CLI_OUTPUT"
	EnvProfile = "LINEAR_CLI_PROFILE"
)

type Profile struct {
	APIKey  string    `toml:"api_key"`
	SavedAt time.Time `toml:"saved_at,omitempty"`
}

type File struct {
	Current  string             `toml:"current,omitempty"`
	Profiles map[string]Profile `toml:"profiles"`
}

type Store struct {
	Path string
}

func DefaultPath() (string, error) {
	if base := os.Getenv("XDG_CONFIG_HOME"); base != "" {
		return filepath.Join(base, configDirName, configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", configDirName, configFileName), nil
}

// DefaultDataDir is where the CLI keeps local artifacts (cached schema and
// the like); the cache command manages its contents.
func DefaultDataDir() (string, error) {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, configDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", configDirName), nil
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) Load() (File, bool, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return File{Profiles: map[string]Profile{}}, false, nil
		}
		return File{}, false, fmt.Errorf("open config file: %w", err)
	}

	var file File
	if err := toml.Unmarshal(data, &file); err != nil {
		return File{}, false, fmt.Errorf("decode config file: %w", err)
	}
	if file.Profiles == nil {
		file.Profiles = map[string]Profile{}
	}
	return file, true, nil
}

func (s *Store) Save(file File) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp := s.Path + ".tmp"
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	if err := toml.NewEncoder(out).Encode(file); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode config file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close config file: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("replace config file: %w", err)
	}
	return nil
}

// ActiveProfile picks the profile name: env override, then the file's
// current field, then "default".
func ActiveProfile(file File, envProfile string) string {
	if envProfile != "" {
		return envProfile
	}
	if file.Current != "" {
		return file.Current
	}
	return DefaultProfile
}

// APIKey returns the key stored for the active profile, or ok=false.
func (s *Store) APIKey(envProfile string) (key string, profile string, ok bool, err error) {
	file, exists, err := s.Load()
	if err != nil {
		return "", "", false, err
	}
	profile = ActiveProfile(file, envProfile)
	if !exists {
		return "", profile, false, nil
	}
	entry, found := file.Profiles[profile]
	if !found || entry.APIKey == "" {
		return "", profile, false, nil
	}
	return entry.APIKey, profile, true, nil
}

// SetAPIKey writes the key under the given profile (the active one when
// empty), creating the file as needed and setting current on first use.
func (s *Store) SetAPIKey(profile, key string, now time.Time) error {
	if key == "" {
		return errors.New("api key is empty")
	}
	file, _, err := s.Load()
	if err != nil {
		return err
	}
	if profile == "" {
		profile = ActiveProfile(file, os.Getenv(EnvProfile))
	}
	file.Profiles[profile] = Profile{APIKey: key, SavedAt: now}
	if file.Current == "" {
		file.Current = profile
	}
	return s.Save(file)
}

// RemoveProfile deletes a profile; removing the current one clears current.
func (s *Store) RemoveProfile(profile string) error {
	file, exists, err := s.Load()
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	if _, found := file.Profiles[profile]; !found {
		return fmt.Errorf("profile %q not found", profile)
	}
	delete(file.Profiles, profile)
	if file.Current == profile {
		file.Current = ""
	}
	return s.Save(file)
}

// SwitchProfile sets current to an existing profile.
func (s *Store) SwitchProfile(profile string) error {
	file, _, err := s.Load()
	if err != nil {
		return err
	}
	if _, found := file.Profiles[profile]; !found {
		return fmt.Errorf("profile %q not found", profile)
	}
	file.Current = profile
	return s.Save(file)
}
