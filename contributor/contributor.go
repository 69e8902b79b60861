// Package contributor resolves commit author emails to hosted-platform
// accounts. Lookups are cached per email for the duration of a run; failures
// degrade to "no contributor" and never abort the pipeline.
package contributor

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jeffrom/relnote/config"
	"github.com/jeffrom/relnote/model"
	"github.com/jeffrom/relnote/platform"
)

// UserAgent is sent on every API request. The version portion is filled in
// by the CLI.
var UserAgent = "relnote"

// aiContributors maps the co-authorship emails used by AI coding assistants
// to their platform usernames. These resolve ahead of any API lookup, so a
// Co-authored-by trailer isn't attributed to the commit's human author.
var aiContributors = map[string]string{
	// https://github.com/anthropics/claude-code/issues/1653
	"noreply@anthropic.com": "claude",
}

type apiResolver interface {
	resolve(ctx context.Context, commit, email string) (*model.Contributor, error)
}

// Resolver appends platform accounts to commits. It only ever writes the
// Contributors field.
type Resolver struct {
	cfg    config.Config
	api    apiResolver
	cache  map[string]*model.Contributor
	client *http.Client
}

// NewResolver returns a resolver for the detected platform, or nil when the
// platform is unknown.
func NewResolver(cfg config.Config, p platform.Platform) *Resolver {
	r := &Resolver{
		cfg:    cfg,
		cache:  make(map[string]*model.Contributor),
		client: &http.Client{Timeout: 10 * time.Second},
	}
	switch p.Kind {
	case platform.GitHub:
		r.api = &githubAPI{p: p, client: r.client}
	case platform.GitLab:
		r.api = &gitlabAPI{p: p, client: r.client}
	default:
		return nil
	}
	return r
}

// ResolveAll resolves the author of every commit, plus any co-author trailer
// emails, deduplicating by username per commit.
func (r *Resolver) ResolveAll(ctx context.Context, commits []*model.Commit) {
	for _, c := range commits {
		if contrib := r.resolve(ctx, c.ID, c.AuthorEmail); contrib != nil {
			appendContributor(c, *contrib)
		}
		for _, t := range c.Trailers {
			if t.Kind != model.TrailerCoAuthoredBy || t.Email == "" {
				continue
			}
			if contrib := r.resolve(ctx, c.ID, t.Email); contrib != nil {
				appendContributor(c, *contrib)
			}
		}
	}
}

func (r *Resolver) resolve(ctx context.Context, commit, email string) *model.Contributor {
	if email == "" {
		return nil
	}
	if cached, ok := r.cache[email]; ok {
		return cached
	}
	contrib, err := r.api.resolve(ctx, commit, email)
	if err != nil {
		r.cfg.Debugf("contributor lookup failed for %s: %v", email, err)
		contrib = nil
	}
	r.cache[email] = contrib
	if contrib != nil {
		r.cfg.Debugf("resolved contributor %s for email %s (bot: %v)", contrib.Username, email, contrib.Bot)
	}
	return contrib
}

func appendContributor(c *model.Commit, contrib model.Contributor) {
	for _, existing := range c.Contributors {
		if existing.Username == contrib.Username {
			return
		}
	}
	c.Contributors = append(c.Contributors, contrib)
}

func getJSON(ctx context.Context, client *http.Client, url, token string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", UserAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("contributor: %s returned %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func isBotUsername(username string) bool {
	return strings.HasSuffix(username, "[bot]")
}

// gravatarURL is the avatar fallback when the platform doesn't know the
// account.
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://gravatar.com/avatar/%x?d=identicon", sum)
}
