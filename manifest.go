// manifest.go: Plugin descriptor manifest loading and validation
//
// The descriptor the factory hands to the host (id, name, vendor, feature
// tags) is plain metadata, so it can live in a YAML or JSON manifest shipped
// next to the plugin binary instead of being hardcoded. The factory itself
// is out of scope here; this file only loads and validates the metadata.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package goclap

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/agilira/argus"
	"gopkg.in/yaml.v3"
)

// PluginManifest is the static descriptor of one plugin.
type PluginManifest struct {
	// ID uniquely identifies the plugin, reverse-domain style
	// ("com.example.gain").
	ID string `json:"id" yaml:"id"`

	// Name is the display name shown by the host.
	Name string `json:"name" yaml:"name"`

	// Vendor is the plugin vendor name.
	Vendor string `json:"vendor" yaml:"vendor"`

	// URL points at the plugin's home page.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Version is the plugin version string.
	Version string `json:"version" yaml:"version"`

	// Description is a short human-readable summary.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Features are free-form classification tags ("audio-effect",
	// "instrument", "stereo").
	Features []string `json:"features,omitempty" yaml:"features,omitempty"`
}

// Validate checks the manifest for required fields and well-formed values.
func (m *PluginManifest) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return NewManifestValidationError("plugin id is required", nil)
	}
	if strings.ContainsAny(m.ID, " \t\n") {
		return NewManifestValidationError("plugin id must not contain whitespace", nil)
	}
	if strings.TrimSpace(m.Name) == "" {
		return NewManifestValidationError("plugin name is required", nil)
	}
	if len(m.Name) > NameSize {
		return NewManifestValidationError("plugin name exceeds the ABI name size", nil)
	}
	if strings.TrimSpace(m.Version) == "" {
		return NewManifestValidationError("plugin version is required", nil)
	}
	for _, feature := range m.Features {
		if strings.TrimSpace(feature) == "" {
			return NewManifestValidationError("feature tags must not be empty", nil)
		}
	}
	return nil
}

// HasFeature reports whether the manifest carries the given feature tag.
func (m *PluginManifest) HasFeature(feature string) bool {
	for _, f := range m.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// LoadManifest reads and validates a plugin manifest from a JSON or YAML
// file, detecting the format from the file name.
func LoadManifest(path string) (*PluginManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewManifestNotFoundError(path)
		}
		return nil, NewManifestParseError(path, err)
	}

	var manifest PluginManifest
	switch argus.DetectFormat(path) {
	case argus.FormatJSON:
		err = json.Unmarshal(data, &manifest)
	default:
		err = yaml.Unmarshal(data, &manifest)
	}
	if err != nil {
		return nil, NewManifestParseError(path, err)
	}

	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return &manifest, nil
}
