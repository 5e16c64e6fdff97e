// Package content prepares stored article text for clients.
package content

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// <gcs-video name="OBJECT"></gcs-video>
	videoRef = regexp.MustCompile(`<gcs-video name="([^"]+)"></gcs-video>`)

	// ![ALT](gcs://OBJECT)
	imageRef = regexp.MustCompile(`!\[(.*?)\]\(gcs://([^)]+)\)`)
)

// URLSigner produces time-limited read URLs for stored objects
type URLSigner interface {
	SignedURL(objectName string, ttl time.Duration) (string, error)
}

// Resolver rewrites embedded media references into signed URLs
type Resolver struct {
	signer URLSigner
	ttl    time.Duration
}

// NewResolver creates a Resolver whose URLs are valid for ttl
func NewResolver(signer URLSigner, ttl time.Duration) *Resolver {
	return &Resolver{signer: signer, ttl: ttl}
}

// Resolve replaces video tags with playable <video> tags and gcs:// image
// links with signed links. Text that does not match is kept verbatim.
// Every match costs one signing call.
func (r *Resolver) Resolve(body string) (string, error) {
	if body == "" {
		return body, nil
	}

	out, err := replace(body, videoRef, func(groups []string) (string, error) {
		url, err := r.sign(groups[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(`<video controls src="%s" width="100%%"></video>`, url), nil
	})
	if err != nil {
		return "", err
	}

	return replace(out, imageRef, func(groups []string) (string, error) {
		url, err := r.sign(groups[2])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("![%s](%s)", groups[1], url), nil
	})
}

func (r *Resolver) sign(objectName string) (string, error) {
	url, err := r.signer.SignedURL(objectName, r.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to resolve media reference %q: %w", objectName, err)
	}
	return url, nil
}

// replace is regexp.ReplaceAllStringFunc with access to submatches and errors
func replace(s string, re *regexp.Regexp, fn func(groups []string) (string, error)) (string, error) {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = s[m[2*i]:m[2*i+1]]
			}
		}

		repl, err := fn(groups)
		if err != nil {
			return "", err
		}

		b.WriteString(s[last:m[0]])
		b.WriteString(repl)
		last = m[1]
	}
	b.WriteString(s[last:])

	return b.String(), nil
}

// Summarize truncates body to max characters followed by "..." when longer
func Summarize(body string, max int) string {
	if len(body) <= max {
		return body
	}
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	return string(runes[:max]) + "..."
}
