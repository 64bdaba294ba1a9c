package codebase

import (
	"net/url"
	"strings"
)

var codeHosts = map[string]bool{
	"github.com":    true,
	"gitlab.com":    true,
	"bitbucket.org": true,
}

// Site sections on code hosts whose first path segment is not an owner.
var reservedOwners = map[string]bool{
	"about":       true,
	"collections": true,
	"explore":     true,
	"features":    true,
	"login":       true,
	"marketplace": true,
	"orgs":        true,
	"pricing":     true,
	"search":      true,
	"settings":    true,
	"sponsors":    true,
	"topics":      true,
	"trending":    true,
	"users":       true,
}

// RepositoryURL reduces a link to the canonical URL of the repository it points
// into, e.g. https://github.com/golang/go/blob/master/README.md becomes
// https://github.com/golang/go. It reports false for links outside known code hosts.
func RepositoryURL(link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if !codeHosts[host] {
		return "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return "", false
	}
	owner := strings.ToLower(parts[0])
	repo := strings.ToLower(strings.TrimSuffix(parts[1], ".git"))
	if owner == "" || repo == "" || reservedOwners[owner] {
		return "", false
	}

	return "https://" + host + "/" + owner + "/" + repo, true
}
