package models

import "strings"

// ImagesRequest is the query string of GET /api/all.
type ImagesRequest struct {
	// URL is the profile page to scrape. Required.
	URL string `form:"url"`

	// MaxAge, in milliseconds, allows serving a cached result no older than
	// this. Zero disables the cache for the request.
	MaxAge int `form:"max_age" binding:"omitempty,min=0"`
}

// Defaults normalises user input.
func (r *ImagesRequest) Defaults() {
	r.URL = strings.TrimSpace(r.URL)
	if r.MaxAge < 0 {
		r.MaxAge = 0
	}
}
