package git

import (
	"fmt"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// DetectRepoURL resolves the browsable repository URL for the checkout at
// dir from its origin remote. Used when project.repo_url is not configured.
func DetectRepoURL(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("open repository at %s: %w", dir, err)
	}
	remote, err := repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("resolve origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("origin remote has no URL")
	}
	return NormalizeRemoteURL(urls[0])
}

// NormalizeRemoteURL converts a git remote URL (ssh, scp-like or https) to a
// browsable https URL without the .git suffix.
func NormalizeRemoteURL(raw string) (string, error) {
	u := strings.TrimSuffix(strings.TrimSpace(raw), ".git")
	switch {
	case strings.HasPrefix(u, "https://"), strings.HasPrefix(u, "http://"):
		return u, nil
	case strings.HasPrefix(u, "ssh://"):
		// ssh://git@host[:port]/owner/repo
		rest := strings.TrimPrefix(u, "ssh://")
		if at := strings.Index(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		host, path, ok := strings.Cut(rest, "/")
		if !ok {
			return "", fmt.Errorf("unsupported remote URL: %s", raw)
		}
		if colon := strings.Index(host, ":"); colon >= 0 {
			host = host[:colon]
		}
		return "https://" + host + "/" + path, nil
	case strings.Contains(u, "@") && strings.Contains(u, ":"):
		// scp-like: git@host:owner/repo
		rest := u[strings.Index(u, "@")+1:]
		host, path, ok := strings.Cut(rest, ":")
		if !ok || path == "" {
			return "", fmt.Errorf("unsupported remote URL: %s", raw)
		}
		return "https://" + host + "/" + path, nil
	default:
		return "", fmt.Errorf("unsupported remote URL: %s", raw)
	}
}
