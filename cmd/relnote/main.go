package main

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/jeffrom/relnote/config"
	"github.com/jeffrom/relnote/contributor"
	"github.com/jeffrom/relnote/runner"
	"github.com/jeffrom/relnote/vcs/gitcli"
)

var (
	// these are overridden by go build -X
	Version   = "dev"
	Commit    string
	BuildDate string
)

func main() {
	if err := run(os.Args); err != nil {
		if isatty.IsTerminal(os.Stderr.Fd()) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	cfg := config.New(nil)

	var help bool
	var version bool
	var cfgFile string
	var readStats bool
	flags := pflag.NewFlagSet("relnote", pflag.ExitOnError)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.StringVarP(&cfg.Path, "path", "p", ".", "run against the repository at `dir`")
	flags.StringVarP(&cfg.Template, "template", "t", "", "path to custom go text/template `file`")
	flags.BoolVar(&cfg.NoContributors, "no-contributors", false, "skip contributor resolution")
	flags.BoolVarP(&readStats, "stats", "S", false, "print commit stats instead of a changelog")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}
	args := flags.Args()[1:]

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		if Commit != "" {
			fmt.Fprintf(cfg.Term.Stdout, "relnote %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		} else {
			fmt.Fprintln(cfg.Term.Stdout, "relnote "+Version)
		}
		return nil
	}

	relnoteYAML, err := readRelnoteYAML(cfgFile)
	if err != nil {
		return err
	}
	if relnoteYAML != nil {
		if err := mergo.Merge(&cfg, relnoteYAML, mergo.WithOverride); err != nil {
			return err
		}
	}

	var from, to string
	if len(args) > 0 {
		from = args[0]
	}
	if len(args) > 1 {
		to = args[1]
	}
	if len(args) > 2 {
		return fmt.Errorf("expected at most 2 arguments, got %d", len(args))
	}

	contributor.UserAgent = "relnote/" + Version

	git := gitcli.New(cfg, cfg.Path)
	rnr := runner.New(cfg, git)
	ctx := context.Background()

	if readStats {
		stats, err := rnr.Stats(ctx, from, to)
		if err != nil {
			return err
		}
		return stats.TextSummary(cfg.Term.Stdout)
	}

	doc, err := rnr.Run(ctx, from, to)
	if err != nil {
		return err
	}
	fmt.Fprint(cfg.Term.Stdout, doc)
	if istty := isatty.IsTerminal(os.Stdout.Fd()); istty && len(doc) > 0 && doc[len(doc)-1] != '\n' {
		fmt.Fprintln(cfg.Term.Stdout)
	}
	return nil
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Errorf(`%s [from] [to]

Generate a markdown changelog from conventional commits.

FROM and TO are any git references. When FROM is omitted, the range starts
at HEAD. When TO is omitted, it is inferred from the surrounding release
tags. Tags namespaced like "myscope/v1.2.3" restrict the range to that
namespace.

FLAGS
%s
EXAMPLES

# changelog for the latest release
$ relnote

# changelog between two tags
$ relnote v2.0.0 v1.0.0

# changelog for a monorepo component
$ relnote search/v1.2.0
`, os.Args[0], flags.FlagUsages())
}

func readRelnoteYAML(p string) (*config.Config, error) {
	if p != "" {
		b, err := ioutil.ReadFile(p)
		if err != nil {
			return nil, err
		}
		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	for {
		candPath := filepath.Join(wd, "relnote.yaml")
		b, err := ioutil.ReadFile(candPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				wd, _ = filepath.Split(filepath.Clean(wd))
				if wd == "/" {
					break
				}
				continue
			}
			return nil, err
		}

		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return nil, nil
}
