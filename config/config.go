package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/sockomode/symrel/boolfn"
)

type Namespaces struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
	Temp   string `yaml:"temp"`
}

type Graph struct {
	// Rule is an edge rule over i (source) and j (target).
	Rule string `yaml:"rule"`
	// ExcludeLast leaves the last node out of edge generation.
	ExcludeLast bool `yaml:"exclude_last"`
}

// Set is a named node set given by its members or by a rule over n.
type Set struct {
	Namespace string `yaml:"namespace"`
	Members   []int  `yaml:"members,omitempty"`
	Rule      string `yaml:"rule,omitempty"`
}

type Config struct {
	Domain        int            `yaml:"domain"`
	Ordering      string         `yaml:"ordering"`
	MaxIterations int            `yaml:"max_iterations"`
	LogLevel      string         `yaml:"log_level"`
	Namespaces    Namespaces     `yaml:"namespaces"`
	Graph         Graph          `yaml:"graph"`
	Sets          map[string]Set `yaml:"sets"`
}

// Default returns the reference instance.
func Default() *Config {
	return &Config{
		Domain:        32,
		Ordering:      boolfn.Interleaved.String(),
		MaxIterations: 64,
		LogLevel:      "info",
		Namespaces:    Namespaces{Source: "x", Target: "y", Temp: "z"},
		Graph: Graph{
			Rule:        "(i + 3) % 32 = j | (i + 8) % 32 = j",
			ExcludeLast: true,
		},
		Sets: map[string]Set{
			"EVEN":  {Namespace: "x", Rule: "n % 2 = 0"},
			"PRIME": {Namespace: "y", Members: []int{3, 5, 7, 11, 13, 17, 19, 23, 29, 31}},
		},
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path
// loads only the defaults. Sets listed in the file replace the default ones.
// Environment variables, possibly from a .env file, override the file.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		defaults := cfg.Sets
		cfg.Sets = nil
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("unable to parse %s: %w", path, err)
		}
		if cfg.Sets == nil {
			cfg.Sets = defaults
		}
	}

	if v := os.Getenv("SYMREL_MAX_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SYMREL_MAX_ITERATIONS: %w", err)
		}
		cfg.MaxIterations = n
	}
	if v := os.Getenv("SYMREL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SYMREL_ORDERING"); v != "" {
		cfg.Ordering = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Domain <= 0 {
		return fmt.Errorf("domain must be positive, got %d", c.Domain)
	}
	if _, err := boolfn.ParseOrdering(c.Ordering); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}

	ns := c.Namespaces
	if ns.Source == "" || ns.Target == "" || ns.Temp == "" {
		return fmt.Errorf("the source, target and temp namespaces must all be named")
	}
	if ns.Source == ns.Target || ns.Source == ns.Temp || ns.Target == ns.Temp {
		return fmt.Errorf("namespaces must be distinct, got %s/%s/%s", ns.Source, ns.Target, ns.Temp)
	}
	if c.Graph.Rule == "" {
		return fmt.Errorf("graph rule is empty")
	}

	for _, name := range c.SetNames() {
		s := c.Sets[name]
		if len(s.Members) == 0 && s.Rule == "" {
			return fmt.Errorf("set %s has neither members nor rule", name)
		}
		if len(s.Members) > 0 && s.Rule != "" {
			return fmt.Errorf("set %s has both members and a rule", name)
		}
		if s.Namespace != ns.Source && s.Namespace != ns.Target && s.Namespace != ns.Temp {
			return fmt.Errorf("set %s is over undeclared namespace %q", name, s.Namespace)
		}
	}
	return nil
}

// SetNames returns the names of the configured sets in sorted order.
func (c *Config) SetNames() []string {
	names := maps.Keys(c.Sets)
	slices.Sort(names)
	return names
}

func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}
