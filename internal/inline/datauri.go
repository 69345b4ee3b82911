package inline

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectMIME sniffs the content type of data. Parameters are kept but
// spaces are dropped so the result can sit inside a data URI.
func DetectMIME(data []byte) string {
	return strings.ReplaceAll(mimetype.Detect(data).String(), " ", "")
}

// Encode builds a base64 data URI.
func Encode(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ReadDataURI reads the file at path and encodes it, sniffing the MIME type
// unless mimeOverride is set.
func ReadDataURI(path, mimeOverride string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	mime := mimeOverride
	if mime == "" {
		mime = DetectMIME(data)
	}
	return Encode(mime, data), nil
}

// DataURI resolves ref against baseDir the way embedded sources are resolved,
// but reports failures in band: URLs and absolute paths come back unchanged,
// a missing file comes back as ref with FailureMarker appended. An error is
// returned only when an existing file cannot be read.
func DataURI(ref, baseDir, mimeOverride string) (string, error) {
	res := Resolver{BaseDir: baseDir}.Resolve(ref)
	switch res.Kind {
	case KindFound:
		return ReadDataURI(res.Path, mimeOverride)
	case KindMissing:
		return ref + FailureMarker, nil
	default:
		return ref, nil
	}
}
