package persist

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/dockpane/pkg/errors"
)

// WriteJSON encodes snap as indented JSON.
func WriteJSON(snap *Snapshot, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadJSON decodes a JSON snapshot from r.
func ReadJSON(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidLayout, err, "decode layout")
	}
	return &snap, nil
}

// WriteTOML encodes snap as TOML, one [[records]] table per node.
func WriteTOML(snap *Snapshot, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(snap); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadTOML decodes a TOML snapshot from r.
func ReadTOML(r io.Reader) (*Snapshot, error) {
	var snap Snapshot
	if _, err := toml.NewDecoder(r).Decode(&snap); err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidLayout, err, "decode layout")
	}
	return &snap, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// ReadFile reads a snapshot from path. Files ending in .toml are TOML;
// everything else is JSON.
func ReadFile(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "layout file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if isTOML(path) {
		return ReadTOML(f)
	}
	return ReadJSON(f)
}

// WriteFile writes snap to path in the format its extension names.
func WriteFile(path string, snap *Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if isTOML(path) {
		return WriteTOML(snap, f)
	}
	return WriteJSON(snap, f)
}
