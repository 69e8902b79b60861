// Package config holds runtime configuration for relnote.
package config

import (
	"fmt"

	"github.com/imdario/mergo"
)

type Config struct {
	Verbose        bool       `json:"verbose,omitempty"`
	Quiet          bool       `json:"quiet,omitempty"`
	Path           string     `json:"path,omitempty"`
	Template       string     `json:"template,omitempty"`
	NoContributors bool       `json:"no_contributors,omitempty"`
	Term           TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	return cfg
}

func GetDefault() Config {
	return Config{
		Path: ".",
	}
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	fmt.Fprintf(c.Term.Stderr, msg+"\n", args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Verbose {
		return
	}
	c.Printf(msg, args...)
}
