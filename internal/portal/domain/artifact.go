package domain

import "time"

// Artifact describes one object a user previously uploaded to blob
// storage. URL is a presigned download link when the backend supports
// it, empty otherwise.
type Artifact struct {
	Key          string
	Name         string
	Size         int64
	LastModified time.Time
	URL          string
}
