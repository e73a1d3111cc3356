package config

import (
	"fmt"
	"os"

	"agentlint/internal/contract"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the tool configuration, usually read from agentlint.yaml in the
// working directory. All fields have usable defaults when the file is absent.
type Config struct {
	Contract contract.Contract `yaml:"contract"`
	Scan     struct {
		Include string `yaml:"include"`
		Exclude string `yaml:"exclude"`
	} `yaml:"scan"`
	DB              string `yaml:"db"`
	CheckCodeFences bool   `yaml:"check_code_fences"`
}

// Default returns the built-in configuration: the section contract an
// AGENTS.md-style onboarding document is expected to satisfy.
func Default() *Config {
	cfg := &Config{}
	cfg.Contract = contract.Contract{
		Requirements: []contract.Requirement{
			{Section: "Project Overview", Rule: contract.RuleNonEmpty},
			{Section: "Setup", Rule: contract.RuleCodeFence},
			{Section: "Code Style", Rule: contract.RuleNonEmpty},
			{Section: "Testing", Rule: contract.RuleCodeFence},
			{Section: "Deployment", Rule: contract.RuleNonEmpty},
			{Section: "Troubleshooting", Rule: contract.RulePresent},
		},
	}
	return cfg
}

// Load reads the config file, falling back to defaults when it does not
// exist, then applies .env and environment overrides.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with environment variables if present
	if db := os.Getenv("AGENTLINT_DB"); db != "" {
		cfg.DB = db
	}
	if include := os.Getenv("AGENTLINT_INCLUDE"); include != "" {
		cfg.Scan.Include = include
	}
	if exclude := os.Getenv("AGENTLINT_EXCLUDE"); exclude != "" {
		cfg.Scan.Exclude = exclude
	}

	if err := cfg.Contract.Validate(); err != nil {
		return nil, fmt.Errorf("invalid contract in %s: %w", path, err)
	}

	return cfg, nil
}

// LoadContract reads a standalone contract file (a YAML document with a
// top-level "require" list), as passed with --contract.
func LoadContract(path string) (*contract.Contract, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c contract.Contract
	if err := yaml.Unmarshal(file, &c); err != nil {
		return nil, fmt.Errorf("failed to parse contract %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid contract in %s: %w", path, err)
	}
	return &c, nil
}

const starterContract = `# agentlint contract: required sections and their minimum content.
# Rules: present | non-empty | code-fence | min-lines (with min_lines).
require:
  - section: Project Overview
    rule: non-empty
  - section: Setup
    rule: code-fence
  - section: Code Style
    rule: non-empty
  - section: Testing
    rule: code-fence
  - section: Deployment
    rule: non-empty
  - section: Troubleshooting
    rule: present
`

// WriteStarterContract writes the default contract to the given path so a
// project can customize it. Refuses to overwrite an existing file.
func WriteStarterContract(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	return os.WriteFile(path, []byte(starterContract), 0644)
}
