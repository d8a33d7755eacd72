// Copyright 2026 The reprise Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// A Config holds the numeric thresholds and feature switches of a
// retry policy. It is an explicit value constructed by the caller and
// passed in, never process-global state.
//
// The caps are tiered: MaxAttempts bounds overall effort for a logical
// request, while ServerErrorCap and RateLimitCap bound effort for
// failure classes that are expensive or likely to repeat, so a
// struggling or throttling server is not hammered even when the global
// budget would allow more tries.
type Config struct {
	// MaxAttempts is the global attempt budget per logical request,
	// counting the initial attempt. It must be at least 1.
	MaxAttempts int `koanf:"max_attempts"`

	// ServerErrorCap bounds attempts while the server keeps answering
	// with 5xx. It is typically smaller than MaxAttempts.
	ServerErrorCap int `koanf:"server_error_cap"`

	// RateLimitCap bounds attempts while the server keeps answering
	// with 429.
	RateLimitCap int `koanf:"rate_limit_cap"`

	// MaxWait is the ceiling on a single retry wait. A computed wait
	// above the ceiling abandons the retry and fails the request
	// instead, so a misbehaving server cannot stall the caller
	// indefinitely through an enormous Retry-After hint. Zero disables
	// the guard.
	MaxWait time.Duration `koanf:"max_wait"`

	// ProxyFailFast makes proxy and tunnel establishment failures fail
	// immediately instead of being retried as ordinary transport
	// faults. Proxy failures are configuration errors, not transient
	// conditions.
	ProxyFailFast bool `koanf:"proxy_fail_fast"`
}

// DefaultConfig returns the retry thresholds used when the caller does
// not supply its own.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		ServerErrorCap: 2,
		RateLimitCap:   2,
		MaxWait:        5 * time.Second,
		ProxyFailFast:  true,
	}
}

// Validate checks the config for values the policy engine cannot work
// with.
func (cfg Config) Validate() error {
	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("retry: max_attempts must be at least 1, got %d", cfg.MaxAttempts)
	}
	if cfg.ServerErrorCap < 0 {
		return fmt.Errorf("retry: server_error_cap must not be negative, got %d", cfg.ServerErrorCap)
	}
	if cfg.RateLimitCap < 0 {
		return fmt.Errorf("retry: rate_limit_cap must not be negative, got %d", cfg.RateLimitCap)
	}
	if cfg.MaxWait < 0 {
		return fmt.Errorf("retry: max_wait must not be negative, got %s", cfg.MaxWait)
	}
	return nil
}

// ConfigFromYAML parses a Config from YAML bytes. Keys absent from the
// document keep their DefaultConfig values, so a document only needs
// to name the thresholds it changes:
//
//	max_attempts: 5
//	server_error_cap: 3
//	max_wait: 10s
//
// The parsed config is validated before it is returned.
func ConfigFromYAML(data []byte) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("retry: parsing config: %w", err)
	}
	cfg := DefaultConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("retry: decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
