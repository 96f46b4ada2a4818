package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPlanFile is the plan location used when nothing else is configured
	DefaultPlanFile = ".svn_rebase.plan"
	// DefaultSvnBinary is the svn executable looked up on PATH
	DefaultSvnBinary = "svn"

	repoConfigFile   = ".svn-rebase.yaml"
	globalConfigDir  = ".svn-rebase"
	globalConfigFile = "config.yaml"
)

// RepoConfig represents the on-disk configuration. Unset fields fall through
// to the next configuration source.
type RepoConfig struct {
	Plan         *string `yaml:"plan,omitempty"`
	Svn          *string `yaml:"svn,omitempty"`
	SingleCommit *bool   `yaml:"singleCommit,omitempty"`
	LogFile      *string `yaml:"logFile,omitempty"`
	Quiet        *bool   `yaml:"quiet,omitempty"`
}

// Settings is the resolved configuration for one invocation
type Settings struct {
	PlanPath      string
	SvnBinary     string
	SingleCommit  bool
	LogFile       string
	Quiet         bool
	NoInteractive bool
}

// GetRepoConfig reads the configuration file in dir. A missing file yields an empty config.
func GetRepoConfig(dir string) (*RepoConfig, error) {
	return readConfigFile(filepath.Join(dir, repoConfigFile))
}

// GetGlobalConfig reads the user's configuration file. A missing file or home
// directory yields an empty config.
func GetGlobalConfig() (*RepoConfig, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return &RepoConfig{}, nil
	}
	return readConfigFile(filepath.Join(homeDir, globalConfigDir, globalConfigFile))
}

func readConfigFile(path string) (*RepoConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &RepoConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var config RepoConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// WriteRepoConfig writes config to the configuration file in dir
func WriteRepoConfig(dir string, config *RepoConfig) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, repoConfigFile), data, 0600)
}

// merge fills unset fields of c from other
func (c *RepoConfig) merge(other *RepoConfig) {
	if c.Plan == nil {
		c.Plan = other.Plan
	}
	if c.Svn == nil {
		c.Svn = other.Svn
	}
	if c.SingleCommit == nil {
		c.SingleCommit = other.SingleCommit
	}
	if c.LogFile == nil {
		c.LogFile = other.LogFile
	}
	if c.Quiet == nil {
		c.Quiet = other.Quiet
	}
}

// Load resolves settings for a working copy directory.
// Precedence: environment > working-copy config > global config > defaults.
// Command-line flags are applied on top by the caller.
func Load(dir string) (*Settings, error) {
	config, err := GetRepoConfig(dir)
	if err != nil {
		return nil, err
	}
	global, err := GetGlobalConfig()
	if err != nil {
		return nil, err
	}
	config.merge(global)

	settings := &Settings{
		PlanPath:  DefaultPlanFile,
		SvnBinary: DefaultSvnBinary,
	}
	if config.Plan != nil && *config.Plan != "" {
		settings.PlanPath = *config.Plan
	}
	if config.Svn != nil && *config.Svn != "" {
		settings.SvnBinary = *config.Svn
	}
	if config.SingleCommit != nil {
		settings.SingleCommit = *config.SingleCommit
	}
	if config.LogFile != nil {
		settings.LogFile = *config.LogFile
	}
	if config.Quiet != nil {
		settings.Quiet = *config.Quiet
	}

	applyEnv(settings)
	return settings, nil
}

func applyEnv(settings *Settings) {
	if plan := os.Getenv("SVN_REBASE_PLAN"); plan != "" {
		settings.PlanPath = plan
	}
	if svn := os.Getenv("SVN_REBASE_SVN"); svn != "" {
		settings.SvnBinary = svn
	}
	if logFile := os.Getenv("SVN_REBASE_LOG_FILE"); logFile != "" {
		settings.LogFile = logFile
	}
	if quiet := os.Getenv("SVN_REBASE_QUIET"); quiet != "" {
		if v, err := strconv.ParseBool(quiet); err == nil {
			settings.Quiet = v
		}
	}
	if os.Getenv("SVN_REBASE_NO_INTERACTIVE") != "" {
		settings.NoInteractive = true
	}
}
