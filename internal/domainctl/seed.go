package domainctl

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/edvin/edgedomains/internal/model"
)

// SeedConfig is the seed file format.
//
//	api_url: http://localhost:8090
//	api_key: edk_...
//	domains:
//	  - shop.example.com
//	  - blog.example.com
//	reconcile: false
type SeedConfig struct {
	APIURL    string   `yaml:"api_url"`
	APIKey    string   `yaml:"api_key"`
	Domains   []string `yaml:"domains"`
	Reconcile bool     `yaml:"reconcile"`
}

// LoadSeed reads and parses a seed file. The API key falls back to the
// EDGEDOMAINS_API_KEY environment variable.
func LoadSeed(path string) (*SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg SeedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("api_url is required")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("EDGEDOMAINS_API_KEY")
	}
	return &cfg, nil
}

// Seed adds every domain of the seed file that is not registered yet, in
// file order. Each addition requests a new certificate, so domains that are
// already present are skipped rather than re-added.
func Seed(configPath string, timeout time.Duration, out io.Writer) error {
	cfg, err := LoadSeed(configPath)
	if err != nil {
		return err
	}
	client := NewClient(cfg.APIURL, cfg.APIKey, timeout)

	existing, err := client.ListDomains()
	if err != nil {
		return fmt.Errorf("list domains: %w", err)
	}
	registered := model.DomainSet(existing)

	for _, raw := range cfg.Domains {
		name := model.NormalizeDomain(raw)
		if name == "" {
			continue
		}
		if registered.Contains(name) {
			fmt.Fprintf(out, "Domain %s: already registered\n", name)
			continue
		}

		records, err := client.AddDomain(name)
		if err != nil {
			return fmt.Errorf("add domain %s: %w", name, err)
		}
		registered = registered.Add(name)

		fmt.Fprintf(out, "Domain %s: registered, publish:\n", name)
		for _, r := range records {
			fmt.Fprintf(out, "  %s\n", FormatRecord(r))
		}
	}

	if cfg.Reconcile {
		msg, err := client.Reconcile()
		if err != nil {
			return fmt.Errorf("reconcile: %w", err)
		}
		fmt.Fprintln(out, msg)
	}

	return nil
}
