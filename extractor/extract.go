package extractor

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

const (
	// maxImgTags caps how many <img> elements are inspected per document.
	maxImgTags = 500

	// maxPhotos caps the gallery list.
	maxPhotos = 10

	// minPhotoScore is the smallest size a gallery photo may have.
	minPhotoScore = 320
)

var imgMatcher = cascadia.MustCompile("img")

// Raw-text scans over the serialised document. The bare pattern catches URLs
// embedded in inline scripts; the quoted one catches JSON string values.
var (
	reBareCDN   = regexp.MustCompile(`(?i)https://scontent[^"'\\<>\s]+\.fbcdn\.net[^"'\\<>\s]+\.(?:jpg|jpeg|png|webp)[^"'\\<>\s]*`)
	reQuotedCDN = regexp.MustCompile(`(?i)"(https://scontent[^"]+\.fbcdn\.net[^"]+\.(?:jpg|jpeg|png|webp)[^"]*)"`)

	reImageID = regexp.MustCompile(`/(\d+)_(\d+)_(\d+)_[on]\.jpg`)
)

var profileMarkers = []string{"/t39.30808-1/", "3ab345", "1d2534"}

const coverMarker = "/t39.30808-6/"

// Candidate is an accepted image URL with everything the ranking needs.
type Candidate struct {
	URL     string
	ID      string
	Score   int
	Profile bool
	Cover   bool
}

// Result is the outcome of one extraction. Empty strings mean "not found".
type Result struct {
	ProfilePicture   string
	ProfilePictureHD string
	CoverPhoto       string
	CoverPhotoHD     string

	// Photos holds at most ten gallery URLs, best first, one per identifier.
	Photos []string

	// AllImages holds every accepted URL once, in discovery order.
	AllImages []string
}

// ImageID returns the numeric identifier shared by all resolution variants
// of the same CDN image, or "" when u carries none.
func ImageID(u string) string {
	m := reImageID.FindStringSubmatch(u)
	if m == nil {
		return ""
	}
	return m[2]
}

// Classify builds the Candidate for an already-accepted URL.
func Classify(u string) Candidate {
	return Candidate{
		URL:     u,
		ID:      ImageID(u),
		Score:   ScoreSize(u),
		Profile: containsAny(u, profileMarkers),
		Cover:   strings.Contains(u, coverMarker),
	}
}

// Extract harvests image URLs from a profile page and picks the best
// profile picture, cover photo and gallery photos among them.
//
// A document that yields no candidates produces an empty Result.
func Extract(rawHTML string) Result {
	result := Result{
		Photos:    []string{},
		AllImages: []string{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return result
	}

	set := newURLSet()

	// ── 1. <img src> attributes ──────────────────────────────────────
	doc.FindMatcher(imgMatcher).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= maxImgTags {
			return false
		}
		src, _ := s.Attr("src")
		if src == "" {
			return true
		}
		if u := Sanitize(src); LooksLikeImage(u) && len(u) < MaxURLLength {
			set.add(u)
		}
		return true
	})

	// ── 2. Raw-text scans ────────────────────────────────────────────
	// The serializer writes quotes inside attributes and text as "&#34;" and
	// "&#39;"; Sanitize ends a URL at either.
	pageText, err := doc.Html()
	if err != nil {
		pageText = rawHTML
	}

	for _, m := range reBareCDN.FindAllString(pageText, -1) {
		addCDNMatch(set, m)
	}
	for _, m := range reQuotedCDN.FindAllStringSubmatch(pageText, -1) {
		addCDNMatch(set, m[1])
	}

	// ── 3-5. Classify and group ─────────────────────────────────────
	profiles := newGroups()
	covers := newGroups()
	var photos []Candidate

	for _, u := range set.items {
		c := Classify(u)
		if c.Profile && c.ID != "" {
			profiles.add(c)
		}
		if c.Cover && c.ID != "" {
			covers.add(c)
		}
		if c.Cover && c.Score >= minPhotoScore {
			photos = append(photos, c)
		}
	}

	// ── 6-7. Best variant per role ──────────────────────────────────
	if best, ok := profiles.best(); ok {
		result.ProfilePicture = best.URL
		result.ProfilePictureHD = best.URL
	}
	if best, ok := covers.best(); ok {
		result.CoverPhoto = best.URL
		result.CoverPhotoHD = best.URL
	}

	// ── 8. Gallery ──────────────────────────────────────────────────
	sortByScoreDesc(photos)
	seen := make(map[string]struct{}, len(photos))
	for _, c := range photos {
		if c.ID == "" {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		result.Photos = append(result.Photos, c.URL)
		if len(result.Photos) >= maxPhotos {
			break
		}
	}

	result.AllImages = append(result.AllImages, set.items...)
	return result
}

func addCDNMatch(set *urlSet, raw string) {
	u := Sanitize(raw)
	if u != "" && LooksLikeImage(u) && len(u) < MaxURLLength && strings.Contains(u, cdnHostToken) {
		set.add(u)
	}
}

// urlSet keeps unique URLs in insertion order.
type urlSet struct {
	seen  map[string]struct{}
	items []string
}

func newURLSet() *urlSet {
	return &urlSet{seen: make(map[string]struct{})}
}

func (s *urlSet) add(u string) {
	if _, ok := s.seen[u]; ok {
		return
	}
	s.seen[u] = struct{}{}
	s.items = append(s.items, u)
}

// groups maps identifier to variants, remembering first-seen identifier order.
type groups struct {
	order    []string
	variants map[string][]Candidate
}

func newGroups() *groups {
	return &groups{variants: make(map[string][]Candidate)}
}

func (g *groups) add(c Candidate) {
	if _, ok := g.variants[c.ID]; !ok {
		g.order = append(g.order, c.ID)
	}
	g.variants[c.ID] = append(g.variants[c.ID], c)
}

// best picks the identifier whose top variant scores highest (earliest
// identifier on ties) and returns that top variant.
func (g *groups) best() (Candidate, bool) {
	var (
		winner Candidate
		found  bool
	)
	for _, id := range g.order {
		versions := slices.Clone(g.variants[id])
		sortByScoreDesc(versions)
		if !found || versions[0].Score > winner.Score {
			winner = versions[0]
			found = true
		}
	}
	return winner, found
}

func sortByScoreDesc(cs []Candidate) {
	slices.SortStableFunc(cs, func(a, b Candidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
}
