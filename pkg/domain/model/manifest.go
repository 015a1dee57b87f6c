package model

// MaxArchiveSize caps the downloaded archive's byte length. Archives
// larger than this are treated as runaway or malicious payloads, never
// as a retryable condition.
const MaxArchiveSize int64 = 200 << 20 // 200 MiB

// RequiredFile is one entry of the required-file manifest: a relative
// path that must exist in a restorable artifact, and the safety
// property a skip preserves when the path is missing.
type RequiredFile struct {
	Path     string
	Protects string
}

// RequiredFiles returns the fixed manifest of paths a valid site
// snapshot must contain, in validation order.
func RequiredFiles() []RequiredFile {
	return []RequiredFile{
		{Path: "index.html", Protects: "existing player page"},
		{Path: "videos.json", Protects: "existing playlist"},
		{Path: "data/zec-stats.json", Protects: "existing stats"},
	}
}
