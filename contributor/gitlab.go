package contributor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jeffrom/relnote/model"
	"github.com/jeffrom/relnote/platform"
)

type gitlabAPI struct {
	p      platform.Platform
	client *http.Client
}

// resolve searches users by email. GitLab only exposes the search to
// authenticated callers, so without a token resolution is limited to the
// AI-assistant table.
func (g *gitlabAPI) resolve(ctx context.Context, commit, email string) (*model.Contributor, error) {
	if username := aiContributors[email]; username != "" {
		contrib := &model.Contributor{
			Username:  username,
			AvatarURL: gravatarURL(email),
			AI:        true,
		}
		if g.p.Token != "" {
			if first, ok, err := g.searchUser(ctx, username); err == nil && ok && first.AvatarURL != "" {
				contrib.AvatarURL = first.AvatarURL
				contrib.Bot = first.Bot
			}
		}
		return contrib, nil
	}

	if g.p.Token == "" {
		return nil, nil
	}

	first, ok, err := g.searchUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	avatar := first.AvatarURL
	if avatar == "" {
		avatar = gravatarURL(email)
	}
	return &model.Contributor{
		Username:  first.Username,
		AvatarURL: avatar,
		Bot:       first.Bot || isBotUsername(first.Username),
	}, nil
}

type gitlabUser struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Bot       bool   `json:"bot"`
}

func (g *gitlabAPI) searchUser(ctx context.Context, query string) (gitlabUser, bool, error) {
	var users []gitlabUser
	u := fmt.Sprintf("%s/users?search=%s", g.p.APIURL, url.QueryEscape(query))
	if err := getJSON(ctx, g.client, u, g.p.Token, nil, &users); err != nil {
		return gitlabUser{}, false, err
	}
	if len(users) == 0 {
		return gitlabUser{}, false, nil
	}
	return users[0], true, nil
}
