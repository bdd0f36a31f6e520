// Package config resolves Slack credentials from layered sources.
//
// Three sources are consulted in precedence order: process environment
// variables, a dotenv file, and a JSON file. Each source only fills keys
// that are still unset, so a higher-precedence source is never overwritten
// by a lower one. Every failure mode is a diagnostic, never an error: a
// host must be able to start with no configuration at all.
package config

import (
	"strings"

	"go2slack/pkg/logx"
)

// Environment variable names recognized by the environment and dotenv sources.
const (
	EnvToken   = "SLACK_OAUTH_TOKEN"
	EnvChannel = "SLACK_DEFAULT_CHANNEL"
)

// Conventional file names, matching the documented setup instructions.
const (
	DefaultEnvFile  = ".env"
	DefaultJSONFile = "slack_config.json"
)

// Config holds the two recognized settings. The zero value means nothing
// was resolved.
type Config struct {
	OAuthToken     string
	DefaultChannel string
}

func (c Config) complete() bool {
	return c.OAuthToken != "" && c.DefaultChannel != ""
}

// missingKeys names the unset settings using the JSON-file key spelling.
func (c Config) missingKeys() []string {
	var missing []string
	if c.OAuthToken == "" {
		missing = append(missing, "oauth_token")
	}
	if c.DefaultChannel == "" {
		missing = append(missing, "default_channel")
	}
	return missing
}

// merge fills unset keys of dst from src and never overwrites.
func merge(dst *Config, src Config) {
	if dst.OAuthToken == "" {
		dst.OAuthToken = src.OAuthToken
	}
	if dst.DefaultChannel == "" {
		dst.DefaultChannel = src.DefaultChannel
	}
}

// Provider reads one configuration source and returns whatever partial
// configuration it holds. Providers never fail; a broken or absent source
// contributes nothing.
type Provider func() Config

// Resolver folds the ordered provider chain into a single Config.
type Resolver struct {
	// EnvFile and JSONFile point at the two file-based sources. They default
	// to the conventional names in the working directory.
	EnvFile  string
	JSONFile string

	log logx.Logger
}

func NewResolver(log logx.Logger) *Resolver {
	return &Resolver{
		EnvFile:  DefaultEnvFile,
		JSONFile: DefaultJSONFile,
		log:      log,
	}
}

// Resolve consults each source at most once, highest precedence first,
// stopping early once both keys are set. Missing keys after the full pass
// are reported but not an error.
func (r *Resolver) Resolve() Config {
	var cfg Config
	for _, p := range []Provider{r.fromEnv, r.fromDotenv, r.fromJSON} {
		if cfg.complete() {
			break
		}
		merge(&cfg, p())
	}
	r.reportMissing(cfg)
	return cfg
}

func (r *Resolver) reportMissing(cfg Config) {
	missing := cfg.missingKeys()
	if len(missing) == 0 {
		return
	}
	r.log.Warn("configuration still missing after all sources",
		logx.String("keys", strings.Join(missing, ", ")))

	envPresent := fileExists(r.EnvFile)
	jsonPresent := fileExists(r.JSONFile)
	switch {
	case !envPresent && !jsonPresent:
		r.log.Warn("neither configuration file is present",
			logx.String("env_file", r.EnvFile), logx.String("json_file", r.JSONFile))
	case !envPresent:
		r.log.Warn("dotenv configuration file is missing", logx.String("path", r.EnvFile))
	case !jsonPresent:
		r.log.Warn("json configuration file is missing", logx.String("path", r.JSONFile))
	default:
		r.log.Warn("both configuration files are present but configuration is still incomplete",
			logx.String("env_file", r.EnvFile), logx.String("json_file", r.JSONFile))
	}
}
