package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/guzus/panejump/internal/log"
)

const header = "# panejump configuration\n# Keys shown here are the built-in defaults.\n\n"

// Marshal renders cfg as the YAML a config file would contain.
func Marshal(cfg Config) ([]byte, error) {
	doc := map[string]any{
		"show_history": cfg.ShowHistory,
		"debug":        cfg.Debug,
		"log_path":     cfg.LogPath,
		"log_level":    cfg.LogLevel,
		"theme": map[string]any{
			"hint_foreground": cfg.Theme.HintForeground,
			"hint_background": cfg.Theme.HintBackground,
			"border":          cfg.Theme.Border,
			"active_border":   cfg.Theme.ActiveBorder,
			"prompt":          cfg.Theme.Prompt,
		},
		"workspace": map[string]any{
			"columns":         cfg.Workspace.Columns,
			"scroll_step":     cfg.Workspace.ScrollStep,
			"reload":          cfg.Workspace.Reload,
			"reload_debounce": cfg.Workspace.ReloadDebounce.String(),
		},
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteDefault writes the default config to path, creating its directory.
// An existing file is left alone unless force is set.
func WriteDefault(path string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("config already exists: %s", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := Marshal(Defaults())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	log.Info(log.CatConfig, "wrote default config", "path", path)
	return nil
}
