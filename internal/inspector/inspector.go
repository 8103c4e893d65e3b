package inspector

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/BenjaminSRussell/imgaudit/internal/fetch"
	"github.com/BenjaminSRussell/imgaudit/internal/types"
	"github.com/BenjaminSRussell/imgaudit/internal/urlutil"
)

// extension-based MIME classification, used when no header is available
var extensionTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
	".ico":  "image/x-icon",
	".tiff": "image/tiff",
	".tif":  "image/tiff",
}

const unknownType = "image/unknown"

// Inspector resolves image references and enriches them with metadata.
// A failed metadata fetch is recorded on the returned record, never escalated.
type Inspector struct {
	client *fetch.Client
}

// New creates an inspector that uses the given client for metadata fetches
func New(client *fetch.Client) *Inspector {
	return &Inspector{client: client}
}

// Inspect resolves rawSrc against the page URL and fills in the
// URL/content-type/size/status portion of an ImageRecord. The returned error
// is non-nil only when the source cannot be resolved at all; such images are
// skipped by the caller.
func (in *Inspector) Inspect(ctx context.Context, rawSrc, pageURL string, sizeAnalysis bool) (types.ImageRecord, error) {
	if strings.HasPrefix(rawSrc, "data:") {
		return inspectDataURI(rawSrc), nil
	}

	resolved, err := urlutil.Resolve(rawSrc, pageURL)
	if err != nil {
		return types.ImageRecord{}, fmt.Errorf("unresolvable image source %q: %w", rawSrc, err)
	}

	record := types.ImageRecord{
		ImageURL:   resolved,
		StatusCode: http.StatusOK,
	}

	if !sizeAnalysis {
		record.ContentType = ExtensionType(resolved)
		return record, nil
	}

	resp, err := in.client.Metadata(ctx, resolved)
	if err != nil {
		// Soft failure: keep the record, note what went wrong
		record.ContentType = ExtensionType(resolved)
		record.StatusCode = http.StatusInternalServerError
		var reqErr *fetch.RequestError
		if errors.As(err, &reqErr) {
			record.StatusCode = reqErr.StatusCode
		}
		record.Error = err.Error()
		return record, nil
	}

	record.StatusCode = resp.StatusCode
	if resp.StatusCode >= http.StatusBadRequest {
		record.ContentType = ExtensionType(resolved)
		record.Error = fmt.Sprintf("metadata fetch returned status %d", resp.StatusCode)
		return record, nil
	}

	record.ContentType = headerContentType(resp.Header, resolved)
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil && n > 0 {
			record.SizeBytes = n
		}
	}

	return record, nil
}

// inspectDataURI decodes the declared MIME type and computes the decoded
// payload size from the base64 character count (4 encoded chars per 3 bytes).
func inspectDataURI(src string) types.ImageRecord {
	record := types.ImageRecord{
		ImageURL:    src,
		ContentType: unknownType,
		StatusCode:  http.StatusOK,
	}

	rest := strings.TrimPrefix(src, "data:")
	comma := strings.Index(rest, ",")
	if comma < 0 {
		return record
	}

	header := rest[:comma]
	payload := rest[comma+1:]

	mediaType := header
	base64Encoded := false
	if semi := strings.Index(header, ";"); semi >= 0 {
		mediaType = header[:semi]
		base64Encoded = strings.Contains(header[semi:], "base64")
	}
	if mediaType != "" {
		record.ContentType = strings.ToLower(mediaType)
	}

	if base64Encoded {
		// 4 base64 chars carry 3 bytes; round to the nearest byte
		record.SizeBytes = int64((len(payload)*3 + 2) / 4)
	} else {
		record.SizeBytes = int64(len(payload))
	}

	return record
}

// ExtensionType classifies an image URL by its file extension
func ExtensionType(imageURL string) string {
	p := imageURL
	if u, err := url.Parse(imageURL); err == nil {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return unknownType
}

func headerContentType(header http.Header, imageURL string) string {
	raw := header.Get("Content-Type")
	if raw == "" {
		return ExtensionType(imageURL)
	}
	if mediaType, _, err := mime.ParseMediaType(raw); err == nil {
		return mediaType
	}
	return raw
}
