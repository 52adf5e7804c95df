package config

import "fmt"

// ModelsConfig locates the fill-rate model artifacts.
type ModelsConfig struct {
	// Kind selects the model loader registered under that name.
	Kind    string `json:"kind"`
	WetPath string `json:"wet_path"`
	DryPath string `json:"dry_path"`
}

// SetDefaults points at the artifacts in the working directory.
func (c *ModelsConfig) SetDefaults() {
	if c.Kind == "" {
		c.Kind = "linear"
	}
	if c.WetPath == "" {
		c.WetPath = "wet_model.json"
	}
	if c.DryPath == "" {
		c.DryPath = "dry_model.json"
	}
}

// Validate rejects using one artifact for both compartments.
func (c ModelsConfig) Validate() error {
	if c.WetPath == c.DryPath {
		return fmt.Errorf("wet_path and dry_path must differ")
	}
	return nil
}
