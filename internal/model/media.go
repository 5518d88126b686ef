package model

// MediaObject describes an uploaded media file and a time-limited URL to
// download it.
type MediaObject struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}
