package reddit

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// usernameRe is the account name shape the listing endpoints accept.
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

// ResolveUsername turns whatever a user pastes (a bare name, "u/name",
// a profile URL, a short link) into a validated account name.
func ResolveUsername(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", errors.New("empty account identifier")
	}

	var name string
	switch {
	case strings.Contains(s, "reddit.com/user/"):
		name = segmentAfter(s, "reddit.com/user/")
	case strings.Contains(s, "redd.it/"):
		name = segmentAfter(s, "redd.it/")
	case strings.HasPrefix(s, "http://"), strings.HasPrefix(s, "https://"):
		name = lastPathSegment(s)
	default:
		name = strings.TrimPrefix(strings.TrimPrefix(s, "/"), "u/")
	}

	if !usernameRe.MatchString(name) {
		return "", fmt.Errorf("cannot resolve account name from %q", input)
	}
	return name, nil
}

// segmentAfter returns the path segment following marker, cut at the
// next separator.
func segmentAfter(s, marker string) string {
	rest := s[strings.Index(s, marker)+len(marker):]
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func lastPathSegment(s string) string {
	parsed, err := url.Parse(s)
	if err != nil {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return ""
	}
	segments := strings.Split(path, "/")
	return segments[len(segments)-1]
}
