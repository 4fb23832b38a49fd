package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"
)

// keyPrefix is the sub-path inside the bucket under which all uploads live,
// split further by entity kind (category, product).
const keyPrefix = "mehendi"

// ComputeKey derives a unique storage key for an upload:
//
//	mehendi/<entity>/mehendi-<entity>-<entityID>-<unixmillis>-<random>.<ext>
//
// The extension is taken verbatim (lower-cased) from the original filename;
// content validation happens in the image service, not here.
func ComputeKey(entity string, entityID int64, originalFilename string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(originalFilename)), ".")
	if ext == "" {
		ext = "bin"
	}
	name := fmt.Sprintf("%s-%s-%d-%d-%s.%s",
		keyPrefix, entity, entityID, time.Now().UnixMilli(), randomSuffix(), ext)
	return keyPrefix + "/" + entity + "/" + name
}

// ExtractObjectPath parses a public object URL back into "<bucket>/<key>".
// Public URLs have the shape .../storage/v1/object/public/<bucket>/<key...>.
// It returns "" for empty, malformed, or foreign URLs and never panics; the
// function runs against user-supplied and legacy data.
func ExtractObjectPath(publicURL string) string {
	if publicURL == "" {
		return ""
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return ""
	}
	parts := strings.Split(u.Path, "/")
	for i, p := range parts {
		if p == "public" && i < len(parts)-1 {
			objectPath := strings.Join(parts[i+1:], "/")
			if strings.Trim(objectPath, "/") == "" {
				return ""
			}
			return objectPath
		}
	}
	return ""
}

// SplitObjectPath splits "<bucket>/<key...>" into its bucket and key parts.
// ok is false when either part is missing.
func SplitObjectPath(objectPath string) (bucket, key string, ok bool) {
	bucket, key, found := strings.Cut(objectPath, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func randomSuffix() string {
	b := make([]byte, 3)
	rand.Read(b)
	return hex.EncodeToString(b)
}
