// Package urlkey recovers stable natural keys from social and video URLs.
package urlkey

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	PlatformTwitter = "twitter"
	PlatformReddit  = "reddit"
	PlatformYouTube = "youtube"

	KindTweet      = "tweet"
	KindRedditPost = "reddit_post"
	KindVideo      = "video"
)

// Identity is the result of a successful extraction.
type Identity struct {
	Platform  string
	Kind      string
	Key       string
	Handle    string
	Community string
}

// Author renders the display author for the identity.
func (id Identity) Author() string {
	switch {
	case id.Handle != "":
		return "@" + id.Handle
	case id.Community != "":
		return "r/" + id.Community
	}
	return ""
}

// reservedTwitterPaths are first path segments that never name an account.
var reservedTwitterPaths = map[string]bool{
	"search":        true,
	"hashtag":       true,
	"i":             true,
	"intent":        true,
	"home":          true,
	"explore":       true,
	"share":         true,
	"settings":      true,
	"notifications": true,
	"messages":      true,
	"login":         true,
}

var (
	statusIDPattern = regexp.MustCompile(`^[0-9]{1,20}$`)
	redditIDPattern = regexp.MustCompile(`^[a-z0-9]{1,12}$`)
	videoIDPattern  = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)
)

// Extract parses rawURL and reports whether it points at a single piece of
// content. Home, search and hashtag pages yield false.
func Extract(rawURL string) (Identity, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return Identity{}, false
	}

	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
	segments := splitPath(u.Path)

	switch {
	case isTwitterHost(host):
		return extractTweet(segments)
	case host == "reddit.com" || strings.HasSuffix(host, ".reddit.com"):
		return extractRedditPost(segments)
	case host == "youtube.com" || host == "m.youtube.com" || host == "youtu.be":
		return extractVideo(host, segments, u.Query())
	}
	return Identity{}, false
}

func isTwitterHost(host string) bool {
	switch host {
	case "twitter.com", "x.com", "mobile.twitter.com", "mobile.x.com":
		return true
	}
	return false
}

func extractTweet(segments []string) (Identity, bool) {
	// /{user}/status/{id}, /i/status/{id} or /i/web/status/{id}
	for i := 0; i+1 < len(segments); i++ {
		if segments[i] != "status" && segments[i] != "statuses" {
			continue
		}
		id := segments[i+1]
		if !statusIDPattern.MatchString(id) {
			return Identity{}, false
		}
		identity := Identity{Platform: PlatformTwitter, Kind: KindTweet, Key: id}
		switch {
		case i == 1 && !reservedTwitterPaths[strings.ToLower(segments[0])]:
			identity.Handle = segments[0]
		case i == 1 && segments[0] == "i":
		case i == 2 && segments[0] == "i" && segments[1] == "web":
		default:
			return Identity{}, false
		}
		return identity, true
	}
	return Identity{}, false
}

func extractRedditPost(segments []string) (Identity, bool) {
	// /r/{community}/comments/{id}/{slug}
	if len(segments) < 4 || segments[0] != "r" || segments[2] != "comments" {
		return Identity{}, false
	}
	id := strings.ToLower(segments[3])
	if !redditIDPattern.MatchString(id) {
		return Identity{}, false
	}
	return Identity{
		Platform:  PlatformReddit,
		Kind:      KindRedditPost,
		Key:       id,
		Community: segments[1],
	}, true
}

func extractVideo(host string, segments []string, q url.Values) (Identity, bool) {
	var id string
	switch {
	case host == "youtu.be" && len(segments) >= 1:
		id = segments[0]
	case len(segments) == 1 && segments[0] == "watch":
		id = q.Get("v")
	case len(segments) >= 2 && (segments[0] == "shorts" || segments[0] == "embed" || segments[0] == "live"):
		id = segments[1]
	}
	if !videoIDPattern.MatchString(id) {
		return Identity{}, false
	}
	return Identity{Platform: PlatformYouTube, Kind: KindVideo, Key: id}, true
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
