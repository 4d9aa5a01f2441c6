package extractor

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// SentinelScore ranks a URL with no resolution-affecting query above
	// every measured size; such URLs are assumed to be the original asset.
	SentinelScore = 9999

	// DefaultScore is used when a URL carries a resizing query but no
	// recognisable size token.
	DefaultScore = 500
)

var sizeTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`s(\d+)x(\d+)`),
	regexp.MustCompile(`p(\d+)x(\d+)`),
	regexp.MustCompile(`ctp=s(\d+)x(\d+)`),
}

var sizeMarkers = []struct {
	tokens []string
	size   int
}{
	{[]string{"s40x40", "cp0_dst"}, 40},
	{[]string{"s160x160"}, 160},
	{[]string{"s320x320"}, 320},
	{[]string{"s480x480"}, 480},
	{[]string{"s720x720"}, 720},
	{[]string{"s960x960"}, 960},
}

// ScoreSize estimates the pixel size of the variant u points to. Scores are
// only meaningful relative to other variants of the same image.
func ScoreSize(u string) int {
	for _, re := range sizeTokenPatterns {
		m := re.FindStringSubmatch(u)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
		// Digits only, so the sole failure is overflow.
		if errors.Is(err, strconv.ErrRange) {
			return math.MaxInt
		}
	}

	for _, marker := range sizeMarkers {
		for _, tok := range marker.tokens {
			if strings.Contains(u, tok) {
				return marker.size
			}
		}
	}

	if !strings.Contains(u, "?") || !strings.Contains(u, "stp=") {
		return SentinelScore
	}
	return DefaultScore
}
