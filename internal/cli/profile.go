package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Profile remembers which API the remote commands talk to.
type Profile struct {
	APIBaseURL string `json:"api_base_url"`
	Token      string `json:"token,omitempty"`
	Slot       string `json:"slot,omitempty"`
}

var ErrNoProfile = errors.New("no remote profile saved")

func SaveProfile(path string, p Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	body, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o600)
}

func LoadProfile(path string) (Profile, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, ErrNoProfile
		}
		return Profile{}, err
	}
	var p Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	if strings.TrimSpace(p.APIBaseURL) == "" {
		return Profile{}, fmt.Errorf("profile %s has no api base url", path)
	}
	return p, nil
}

func ClearProfile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return os.Remove(path)
}
