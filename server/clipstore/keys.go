package clipstore

import (
	"regexp"
	"strings"
	"time"
)

// Key layout shared by every handler. The device encodes its identity and the
// capture time into the object name: clips/<device>_<YYYYMMDD>_<HHMMSS>.avi,
// paired with thumbs/<device>_<YYYYMMDD>_<HHMMSS>_thumb.jpg.
const (
	ClipPrefix  = "clips/"
	ClipSuffix  = ".avi"
	ThumbPrefix = "thumbs/"
	ThumbSuffix = "_thumb.jpg"

	// TimeLayout renders UTC timestamps as 2026-02-21T12:00:00+00:00.
	// Fixed width and fixed offset, so lexicographic order of the rendered
	// strings is chronological order. The gallery sort relies on this.
	TimeLayout = "2006-01-02T15:04:05-07:00"
)

var timestampPattern = regexp.MustCompile(`_(\d{8})_(\d{6})$`)

// IsClipKey reports whether key has the clips/*.avi shape. Callers must check
// this before using ThumbKey or Basename.
func IsClipKey(key string) bool {
	return strings.HasPrefix(key, ClipPrefix) && strings.HasSuffix(key, ClipSuffix)
}

// Basename strips the clips/ prefix and .avi suffix from a valid clip key.
func Basename(clipKey string) string {
	return strings.TrimSuffix(strings.TrimPrefix(clipKey, ClipPrefix), ClipSuffix)
}

// ThumbKey derives the paired thumbnail key from a valid clip key.
func ThumbKey(clipKey string) string {
	return ThumbPrefix + Basename(clipKey) + ThumbSuffix
}

// DeviceID returns the portion of a clip basename before the first underscore.
func DeviceID(basename string) string {
	if i := strings.Index(basename, "_"); i >= 0 {
		return basename[:i]
	}
	return basename
}

// ParseTimestamp extracts the capture time from a clip basename. The second
// return is false when the basename does not end in _YYYYMMDD_HHMMSS or the
// digits do not form a real calendar date; callers fall back to the object's
// last-modified time in that case.
func ParseTimestamp(basename string) (time.Time, bool) {
	m := timestampPattern.FindStringSubmatch(basename)
	if m == nil {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation("20060102150405", m[1]+m[2], time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// FormatTimestamp renders t in the fixed sortable layout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// IsKept decodes the retention tag set. Only keep=true marks a clip as
// protected; any other value, or no tag at all, means the lifecycle rule may
// remove it. This is the single decode point for the flag.
func IsKept(tagSet map[string]string) bool {
	return tagSet[keepTagKey] == keepTagTrue
}
