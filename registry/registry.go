package registry

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"

	"github.com/testinfra/suite-launcher/types"
)

// Registry manages suite definitions and environment configs loaded from a
// YAML registry file. It implements the resolver interfaces the suite runner
// consumes.
type Registry struct {
	config  Config
	suites  map[string]*types.Suite
	configs map[string]types.EnvironmentConfig
	mu      sync.RWMutex
}

// Config contains registry configuration
type Config struct {
	Log          log.Logger
	RegistryFile string
}

// registryFile mirrors the on-disk layout of the registry YAML.
type registryFile struct {
	Suites  []types.Suite             `yaml:"suites"`
	Configs []types.EnvironmentConfig `yaml:"configs"`
}

// NewRegistry creates a new registry instance from the configured file.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.RegistryFile == "" {
		return nil, fmt.Errorf("registry file is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	r := &Registry{
		config:  cfg,
		suites:  make(map[string]*types.Suite),
		configs: make(map[string]types.EnvironmentConfig),
	}

	if err := r.load(cfg.RegistryFile); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	cfg.Log.Debug("Registry loaded", "suites", len(r.suites), "configs", len(r.configs))

	return r, nil
}

func (r *Registry) load(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := loadRegistryFile(path)
	if err != nil {
		return err
	}

	for i := range file.Suites {
		suite := file.Suites[i]
		if suite.Name == "" {
			return fmt.Errorf("suite at index %d has no name", i)
		}
		if _, exists := r.suites[suite.Name]; exists {
			return fmt.Errorf("duplicate suite %q", suite.Name)
		}
		for j, run := range suite.TestRuns {
			if run.EnvironmentName == "" {
				return fmt.Errorf("suite %q: test run at index %d has no environment", suite.Name, j)
			}
		}
		r.suites[suite.Name] = &suite
	}

	for i, cfg := range file.Configs {
		if cfg.Name == "" {
			return fmt.Errorf("config at index %d has no name", i)
		}
		if _, exists := r.configs[cfg.Name]; exists {
			return fmt.Errorf("duplicate config %q", cfg.Name)
		}
		r.configs[cfg.Name] = cfg
	}

	return nil
}

// GetSuite returns the suite with the given name, or an error if unknown.
func (r *Registry) GetSuite(name string) (*types.Suite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	suite, ok := r.suites[name]
	if !ok {
		return nil, fmt.Errorf("unknown suite %q (have: %v)", name, r.suiteNamesLocked())
	}
	return suite, nil
}

// GetEnvironmentConfig returns the environment config with the given name,
// or an error if unknown.
func (r *Registry) GetEnvironmentConfig(name string) (types.EnvironmentConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.configs[name]
	if !ok {
		return types.EnvironmentConfig{}, fmt.Errorf("unknown environment config %q (have: %v)", name, r.configNamesLocked())
	}
	return cfg, nil
}

// SuiteNames returns the names of all registered suites, sorted.
func (r *Registry) SuiteNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.suiteNamesLocked()
}

// GetConfig returns the registry configuration
func (r *Registry) GetConfig() Config {
	return r.config
}

func (r *Registry) suiteNamesLocked() []string {
	names := make([]string, 0, len(r.suites))
	for name := range r.suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) configNamesLocked() []string {
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadRegistryFile loads the registry definition from a file
func loadRegistryFile(path string) (*registryFile, error) {
	log.Debug("Reading registry file", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing registry file: %w", err)
	}

	return &file, nil
}
