// Package relnote turns raw git history into a structured, de-duplicated,
// classified record of changes and renders it as a markdown changelog.
//
// Related packages: config, model, commit, vcs, vcs/gitcli, platform,
// contributor, render, runner
package relnote

import "github.com/jeffrom/relnote/config"

// Config holds most of the configuration variables for relnote. This struct
// is intended for command-line use, so not all of its attributes are
// applicable to every operation.
//
// See "go doc github.com/jeffrom/relnote/config Config" for more information.
type Config = config.Config
