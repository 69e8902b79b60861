// Package platform identifies the hosting platform of a repository from CI
// environment variables or its origin URL, and builds the URLs the renderer
// and contributor resolver need.
package platform

import (
	"fmt"
	"os"
	"strings"

	"github.com/jeffrom/relnote/config"
)

type Kind int

const (
	Unknown Kind = iota
	GitHub
	GitLab
)

func (k Kind) String() string {
	switch k {
	case GitHub:
		return "github"
	case GitLab:
		return "gitlab"
	default:
		return "unknown"
	}
}

type Platform struct {
	Kind       Kind
	URL        string
	APIURL     string
	GraphQLURL string
	Owner      string
	Repo       string
	// ProjectPath is the full namespaced path used by GitLab APIs.
	ProjectPath string
	Token       string
}

// Detect determines the hosting platform, preferring CI-provided environment
// over the origin URL. Tokens are picked up from GITHUB_TOKEN/GITLAB_TOKEN.
func Detect(cfg config.Config, originURL string) Platform {
	p, ok := fromCIEnv()
	if !ok {
		if originURL == "" {
			cfg.Debugf("no origin URL and not running in CI")
			return Platform{}
		}
		p = fromOriginURL(cfg, originURL)
	}

	switch p.Kind {
	case GitHub:
		p.Token = os.Getenv("GITHUB_TOKEN")
		if p.Token == "" {
			cfg.Debugf("no GITHUB_TOKEN found, API requests may be rate limited")
		}
	case GitLab:
		p.Token = os.Getenv("GITLAB_TOKEN")
		if p.Token == "" {
			cfg.Debugf("no GITLAB_TOKEN found, contributor resolution needs a token with read_user scope")
		}
	}
	return p
}

func fromCIEnv() (Platform, bool) {
	if os.Getenv("GITLAB_CI") != "" {
		url := os.Getenv("CI_PROJECT_URL")
		projectPath := os.Getenv("CI_PROJECT_PATH")
		if url != "" && projectPath != "" {
			apiURL := os.Getenv("CI_API_V4_URL")
			graphqlURL := os.Getenv("CI_API_GRAPHQL_URL")
			if proto, host, ok := splitWebURL(url); ok {
				if apiURL == "" {
					apiURL = gitlabAPIURL(proto, host)
				}
				if graphqlURL == "" {
					graphqlURL = gitlabGraphQLURL(proto, host)
				}
			}
			return Platform{
				Kind:        GitLab,
				URL:         url,
				APIURL:      apiURL,
				GraphQLURL:  graphqlURL,
				ProjectPath: projectPath,
			}, true
		}
	}

	if os.Getenv("GITHUB_ACTIONS") != "" {
		serverURL := os.Getenv("GITHUB_SERVER_URL")
		repository := os.Getenv("GITHUB_REPOSITORY")
		if serverURL != "" && repository != "" {
			owner, repo, found := cutString(repository, "/")
			if found {
				apiURL := os.Getenv("GITHUB_API_URL")
				if apiURL == "" {
					if proto, host, ok := splitWebURL(serverURL); ok {
						apiURL = githubAPIURL(proto, host)
					}
				}
				return Platform{
					Kind:   GitHub,
					URL:    fmt.Sprintf("%s/%s", serverURL, repository),
					APIURL: apiURL,
					Owner:  owner,
					Repo:   repo,
				}, true
			}
		}
	}

	return Platform{}, false
}

func fromOriginURL(cfg config.Config, originURL string) Platform {
	host, owner, repo, err := ParseGitURL(originURL)
	if err != nil {
		cfg.Debugf("failed to parse git URL %q: %v", originURL, err)
		return Platform{}
	}

	// git remote URLs carry no web protocol, so assume https
	url := fmt.Sprintf("https://%s/%s/%s", host, owner, repo)
	switch {
	case strings.Contains(host, "github"):
		return Platform{
			Kind:   GitHub,
			URL:    url,
			APIURL: githubAPIURL("https", host),
			Owner:  owner,
			Repo:   repo,
		}
	case strings.Contains(host, "gitlab"):
		return Platform{
			Kind:        GitLab,
			URL:         url,
			APIURL:      gitlabAPIURL("https", host),
			GraphQLURL:  gitlabGraphQLURL("https", host),
			ProjectPath: owner + "/" + repo,
		}
	default:
		return Platform{}
	}
}

// ParseGitURL splits an https:// or git@ remote URL into host, owner and
// repo. Nested GitLab groups end up in owner.
func ParseGitURL(url string) (host, owner, repo string, err error) {
	var path string
	var found bool
	switch {
	case strings.HasPrefix(url, "https://"):
		host, path, found = cutString(strings.TrimPrefix(url, "https://"), "/")
		if !found {
			return "", "", "", fmt.Errorf("platform: invalid https URL: %q", url)
		}
	case strings.HasPrefix(url, "git@"):
		host, path, found = cutString(strings.TrimPrefix(url, "git@"), ":")
		if !found {
			return "", "", "", fmt.Errorf("platform: invalid ssh URL: %q", url)
		}
	default:
		return "", "", "", fmt.Errorf("platform: URL must start with https:// or git@: %q", url)
	}

	path = strings.TrimSuffix(path, ".git")
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	if len(segments) < 2 {
		return "", "", "", fmt.Errorf("platform: invalid repository path %q, expected owner/repo", path)
	}
	owner = strings.Join(segments[:len(segments)-1], "/")
	repo = segments[len(segments)-1]
	return host, owner, repo, nil
}

// CommitURL returns the web URL for a commit, or "" for unknown platforms.
func (p Platform) CommitURL(sha string) string {
	switch p.Kind {
	case GitHub:
		return fmt.Sprintf("%s/commit/%s", p.URL, sha)
	case GitLab:
		return fmt.Sprintf("%s/-/commit/%s", p.URL, sha)
	default:
		return ""
	}
}

func splitWebURL(url string) (proto, host string, ok bool) {
	switch {
	case strings.HasPrefix(url, "https://"):
		proto = "https"
	case strings.HasPrefix(url, "http://"):
		proto = "http"
	default:
		return "", "", false
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(url, proto), "://")
	host, _, _ = cutString(rest, "/")
	if host == "" {
		return "", "", false
	}
	return proto, host, true
}

func githubAPIURL(proto, host string) string {
	if host == "github.com" {
		return "https://api.github.com"
	}
	return fmt.Sprintf("%s://%s/api/v3", proto, host)
}

func gitlabAPIURL(proto, host string) string {
	return fmt.Sprintf("%s://%s/api/v4", proto, host)
}

func gitlabGraphQLURL(proto, host string) string {
	return fmt.Sprintf("%s://%s/api/graphql", proto, host)
}

func cutString(s, sep string) (before, after string, found bool) {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}
