package extractor

import "strings"

// MaxURLLength is the longest candidate URL the extractor will keep.
const MaxURLLength = 2000

var (
	nonImageExtensions = []string{".js", ".css", ".ico", ".json", ".xml", ".txt", ".html"}

	// proxyImageHints rescue a resource-proxy URL that still points at an image.
	proxyImageHints = []string{".jpg", ".png", ".webp", ".jpeg", "image"}

	imageIndicators = []string{
		".jpg", ".jpeg", ".png", ".webp", ".gif",
		"photo", "picture", "image",
		"/t39.", "/t1.",
		cdnHostToken, "scontent",
	}
)

const (
	cdnHostToken      = "fbcdn.net"
	resourceProxyPath = "/rsrc.php/"
)

// LooksLikeImage reports whether u plausibly references an image asset.
//
// It rejects empty or oversized strings, URLs ending in a known non-image
// extension, and resource-proxy URLs without an image hint, then accepts
// anything carrying an image extension, an image keyword, or a CDN token.
func LooksLikeImage(u string) bool {
	if u == "" || len(u) > MaxURLLength {
		return false
	}

	lower := strings.ToLower(u)
	for _, ext := range nonImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}

	if strings.Contains(u, resourceProxyPath) && !containsAny(lower, proxyImageHints) {
		return false
	}

	return containsAny(lower, imageIndicators)
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
