package contributor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jeffrom/relnote/model"
	"github.com/jeffrom/relnote/platform"
)

type githubAPI struct {
	p      platform.Platform
	client *http.Client
}

var githubHeaders = map[string]string{
	"Accept":               "application/vnd.github+json",
	"X-GitHub-Api-Version": "2022-11-28",
}

func (g *githubAPI) resolve(ctx context.Context, commit, email string) (*model.Contributor, error) {
	ai := false
	username := aiContributors[email]
	if username != "" {
		ai = true
	} else {
		username = usernameFromNoreply(email)
	}
	if username == "" {
		var err error
		username, err = g.commitAuthor(ctx, commit)
		if err != nil {
			return nil, err
		}
	}
	if username == "" {
		return nil, nil
	}

	contrib := &model.Contributor{Username: username, Bot: isBotUsername(username), AI: ai}
	if avatar, bot, err := g.user(ctx, username); err == nil {
		contrib.AvatarURL = avatar
		contrib.Bot = contrib.Bot || bot
	} else {
		contrib.AvatarURL = gravatarURL(email)
	}
	return contrib, nil
}

// usernameFromNoreply extracts the login from GitHub noreply addresses of
// the form "12345+login@users.noreply.github.com".
func usernameFromNoreply(email string) string {
	local := strings.TrimSuffix(email, "@users.noreply.github.com")
	if local == email {
		return ""
	}
	parts := strings.SplitN(local, "+", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[1]
}

func (g *githubAPI) commitAuthor(ctx context.Context, commit string) (string, error) {
	var body struct {
		Author struct {
			Login string `json:"login"`
		} `json:"author"`
	}
	u := fmt.Sprintf("%s/repos/%s/%s/commits/%s", g.p.APIURL, g.p.Owner, g.p.Repo, commit)
	if err := getJSON(ctx, g.client, u, g.p.Token, githubHeaders, &body); err != nil {
		return "", err
	}
	return body.Author.Login, nil
}

func (g *githubAPI) user(ctx context.Context, username string) (avatarURL string, bot bool, err error) {
	var body struct {
		AvatarURL string `json:"avatar_url"`
		Type      string `json:"type"`
	}
	u := fmt.Sprintf("%s/users/%s", g.p.APIURL, url.PathEscape(username))
	if err := getJSON(ctx, g.client, u, g.p.Token, githubHeaders, &body); err != nil {
		return "", false, err
	}
	return body.AvatarURL, strings.EqualFold(body.Type, "Bot"), nil
}
