package domain

// ClipEntry is one row of the gallery catalog. ThumbURL is nil when the
// paired thumbnail does not exist (or its probe failed). Timestamp is the
// fixed-width ISO 8601 UTC form, which is also the sort key.
type ClipEntry struct {
	ClipKey   string  `json:"clip_key"`
	ClipURL   string  `json:"clip_url"`
	ThumbURL  *string `json:"thumb_url"`
	Timestamp string  `json:"timestamp"`
	SizeMB    float64 `json:"size_mb"`
	Kept      bool    `json:"kept"`
}

const (
	ActionKeep   = "keep"
	ActionUnkeep = "unkeep"
	ActionDelete = "delete"
)

type ManageRequest struct {
	Action  string `json:"action"`
	ClipKey string `json:"clip_key"`
}
