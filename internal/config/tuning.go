package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"deeptrader/internal/game"
)

// LoadTuning returns the default tuning overlaid with the file at path, if
// any. Keys the file leaves out keep their default values.
func LoadTuning(path string) (game.Tuning, error) {
	t := game.DefaultTuning()
	path = strings.TrimSpace(path)
	if path == "" {
		return t, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning file: %w", err)
	}
	if err := DecodeTuning(filepath.Ext(path), raw, &t); err != nil {
		return t, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("invalid tuning in %s: %w", path, err)
	}
	return t, nil
}

// DecodeTuning overlays raw onto t. ext selects the format.
func DecodeTuning(ext string, raw []byte, t *game.Tuning) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(t); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		return dec.Decode(t)
	default:
		return fmt.Errorf("unsupported tuning format %q", ext)
	}
}
