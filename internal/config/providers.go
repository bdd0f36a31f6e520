package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"go2slack/pkg/logx"
)

func (r *Resolver) fromEnv() Config {
	return Config{
		OAuthToken:     os.Getenv(EnvToken),
		DefaultChannel: os.Getenv(EnvChannel),
	}
}

// fromDotenv reads the dotenv file without mutating the process environment,
// so the ambient environment keeps its higher precedence.
func (r *Resolver) fromDotenv() Config {
	if _, err := os.Stat(r.EnvFile); err != nil {
		if os.IsNotExist(err) {
			r.log.Debug("dotenv file not present, source skipped", logx.String("path", r.EnvFile))
		} else {
			r.log.Warn("unexpected error reading dotenv file", logx.String("path", r.EnvFile), logx.Err(err))
		}
		return Config{}
	}

	vars, err := godotenv.Read(r.EnvFile)
	if err != nil {
		r.log.Warn("error loading dotenv file", logx.String("path", r.EnvFile), logx.Err(err))
		return Config{}
	}

	cfg := Config{
		OAuthToken:     vars[EnvToken],
		DefaultChannel: vars[EnvChannel],
	}
	if missing := cfg.missingKeys(); len(missing) > 0 {
		r.log.Debug("variables missing in dotenv file",
			logx.String("path", r.EnvFile), logx.String("keys", strings.Join(missing, ", ")))
	}
	return cfg
}

func (r *Resolver) fromJSON() Config {
	b, err := os.ReadFile(r.JSONFile)
	if err != nil {
		if os.IsNotExist(err) {
			r.log.Debug("json configuration file not present, source skipped", logx.String("path", r.JSONFile))
		} else {
			r.log.Warn("unexpected error reading json configuration file", logx.String("path", r.JSONFile), logx.Err(err))
		}
		return Config{}
	}

	// Unknown keys in the file are fine; the decoder only picks out the two
	// recognized ones. Trailing tokens (e.g. concatenated JSON) are not.
	var raw struct {
		OAuthToken     string `json:"oauth_token"`
		DefaultChannel string `json:"default_channel"`
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&raw); err != nil {
		r.log.Warn("invalid json in configuration file", logx.String("path", r.JSONFile), logx.Err(err))
		return Config{}
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		r.log.Warn("invalid json in configuration file: trailing data", logx.String("path", r.JSONFile))
		return Config{}
	}

	return Config{OAuthToken: raw.OAuthToken, DefaultChannel: raw.DefaultChannel}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
