package domain

const MessageSchemaVersion string = "0.0.1"

// Compression modes for rolled files.
const (
	CompressionNone string = ""
	CompressionGzip string = "gzip"
	CompressionZip  string = "zip"
)

// UploadTask is one file waiting on the upload work queue. It is owned by
// the queue from enqueue until the upload finishes.
type UploadTask struct {
	ID          string
	LocalPath   string
	Key         string
	SizeInBytes int64
}

type UploadResult struct {
	Bucket      string
	Region      string
	Path        string
	URL         string
	SizeInBytes int
}

// MessageContext carries the result of a finished upload to whoever wants
// to be notified about it (external queues).
type MessageContext struct {
	Bucket          string
	Region          string
	Path            string
	URL             string
	SizeInBytes     int
	CompressionType string
	SavedAt         int64
}
