// Package config loads wgsl-analyzer configuration from a JSON file
// named wgslanalyzer.json or .wgslanalyzerrc, searched for starting in
// a given directory and walking up through its parents.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/unfinishedprogram/wgsl-analyzer/internal/diagnostic"
)

// Options represents the configuration file structure. All fields are
// optional and use their zero value when unspecified.
type Options struct {
	// StrictMode escalates Warning diagnostics to Error in the list
	// returned by pkg/module, mirroring the teacher's
	// validator.Options.StrictMode.
	StrictMode bool `json:"strictMode,omitempty"`

	// Verbose enables slog.Debug records at pipeline pass boundaries
	// and on ident_at_position lookups.
	Verbose bool `json:"verbose,omitempty"`

	// DisabledDiagnostics lists rule names to silence: one of
	// "duplicate-member", "duplicate-type", "misplaced-declaration".
	DisabledDiagnostics []string `json:"disabledDiagnostics,omitempty"`
}

// ConfigFileNames are the names searched for, in order of preference.
var ConfigFileNames = []string{
	"wgslanalyzer.json",
	".wgslanalyzerrc",
	".wgslanalyzerrc.json",
}

// Load searches for a config file starting from startDir and walking up
// to parent directories. Returns a zero-value Options (not an error) if
// no config file is found.
func Load(startDir string) (*Options, string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				opts, err := LoadFile(path)
				return opts, path, err
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return &Options{}, "", nil
		}
		dir = parent
	}
}

// LoadFile loads configuration from a specific file path.
func LoadFile(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var opts Options
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Filter builds the diagnostic.Filter this configuration describes,
// disabling each named rule.
func (o *Options) Filter() *diagnostic.Filter {
	f := diagnostic.NewFilter()
	for _, name := range o.DisabledDiagnostics {
		f.DisableRule(name)
	}
	return f
}
