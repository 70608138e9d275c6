package config

import (
	"fmt"
	"sort"
	"strings"
)

// Context is a named AWS profile and region pair.
type Context struct {
	Profile string `yaml:"profile,omitempty"` // AWS profile name
	Region  string `yaml:"region,omitempty"`
}

// GetCurrentContext returns the current active context
func GetCurrentContext() (*Context, string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, "", err
	}

	if cfg.CurrentContext == "" {
		return nil, "", nil
	}

	return cfg.Contexts[cfg.CurrentContext], cfg.CurrentContext, nil
}

// GetContext returns a context by name.
func GetContext(name string) (*Context, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	ctx, ok := cfg.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("context %q not found", name)
	}
	return ctx, nil
}

// SetCurrentContext sets the current active context
func SetCurrentContext(name string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	if _, ok := cfg.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}

	cfg.CurrentContext = name
	return SaveConfig(cfg)
}

// AddContext adds or updates a context
func AddContext(name string, ctx *Context) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("context name must not be empty")
	}

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	cfg.Contexts[name] = ctx
	return SaveConfig(cfg)
}

// DeleteContext removes a context
func DeleteContext(name string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	if _, ok := cfg.Contexts[name]; !ok {
		return fmt.Errorf("context %q not found", name)
	}
	delete(cfg.Contexts, name)

	// Clear current context if it was the deleted one
	if cfg.CurrentContext == name {
		cfg.CurrentContext = ""
	}

	return SaveConfig(cfg)
}

// ListContexts returns all configured contexts
func ListContexts() (map[string]*Context, string, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, "", err
	}

	return cfg.Contexts, cfg.CurrentContext, nil
}

// SortedContextNames returns the context names in order.
func SortedContextNames(contexts map[string]*Context) []string {
	names := make([]string, 0, len(contexts))
	for name := range contexts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CommandAliases returns the configured aliases of a service command.
func (c *Config) CommandAliases(service, command string) []string {
	target := service + ":" + command
	var out []string
	for alias, t := range c.Aliases {
		if t == target {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}
