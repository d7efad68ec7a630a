package domain

// BucketEvent is the S3-style notification payload the bucket publishes to
// the queue when an object is created. Object keys arrive URL-escaped.
type BucketEvent struct {
	EventName string        `json:"EventName"`
	Records   []EventRecord `json:"Records"`
}

type EventRecord struct {
	EventName string `json:"eventName"`
	S3        struct {
		Bucket struct {
			Name string `json:"name"`
		} `json:"bucket"`
		Object struct {
			Key  string `json:"key"`
			Size int64  `json:"size"`
		} `json:"object"`
	} `json:"s3"`
}
