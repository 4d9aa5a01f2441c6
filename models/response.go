package models

// ImagesResponse is the success body for GET /api/all.
type ImagesResponse struct {
	Success bool `json:"success"`

	ProfilePicture ImagePair `json:"profile_picture"`
	CoverPhoto     ImagePair `json:"cover_photo"`

	// Photos holds up to ten gallery URLs, one per underlying image.
	Photos []string `json:"photos"`

	// AllImages holds every accepted image URL. Order carries no meaning.
	AllImages []string `json:"all_images"`

	TotalCount int `json:"total_count"`

	// TimeTaken is the request's elapsed time, formatted as "1.23s".
	TimeTaken string `json:"time_taken"`

	APIUptime string `json:"api_uptime,omitempty"`

	// CacheStatus is "hit", "miss", or empty when caching was not requested.
	CacheStatus string `json:"cache_status,omitempty"`
}

// ImagePair holds two resolutions of one image role. Both are null when the
// role was not found.
type ImagePair struct {
	Standard *string `json:"standard"`
	HD       *string `json:"hd"`
}

// NewImagePair builds a pair, mapping empty strings to null.
func NewImagePair(standard, hd string) ImagePair {
	return ImagePair{Standard: nullable(standard), HD: nullable(hd)}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`

	// Code is the internal error code, when one applies.
	Code string `json:"code,omitempty"`

	// Example shows a correct request; set on input errors.
	Example string `json:"example,omitempty"`

	TimeTaken string `json:"time_taken"`
}

// IndexResponse is the capability document served at GET /.
type IndexResponse struct {
	Message     string            `json:"message"`
	Description string            `json:"description"`
	Warning     string            `json:"warning"`
	Endpoint    string            `json:"endpoint"`
	Usage       string            `json:"usage"`
	Parameters  map[string]string `json:"parameters"`
	Example     string            `json:"example"`
	Version     string            `json:"version"`
	Uptime      string            `json:"uptime"`
}
