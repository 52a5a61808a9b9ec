package uri

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/lampworks/moth-bridge/internal/adapter"
)

var ErrInvalidDataURI = errors.New("invalid data URI")

// DataURI is a parsed RFC 2397 data URI
type DataURI struct {
	MimeType    string
	Base64      bool
	DecodedData []byte
}

// IsDataURI reports whether uri uses the data: scheme
func IsDataURI(uri string) bool {
	return len(uri) >= 5 && strings.EqualFold(uri[:5], "data:")
}

// ParseDataURI parses data:[<mediatype>][;base64],<data>
func ParseDataURI(uri string) (*DataURI, error) {
	if !IsDataURI(uri) {
		return nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURI)
	}

	header, payload, ok := strings.Cut(uri[5:], ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing comma separator", ErrInvalidDataURI)
	}

	parsed := &DataURI{MimeType: "text/plain"}
	params := strings.Split(header, ";")
	if mt := strings.ToLower(strings.TrimSpace(params[0])); mt != "" {
		parsed.MimeType = mt
	}
	for _, p := range params[1:] {
		if strings.EqualFold(strings.TrimSpace(p), "base64") {
			parsed.Base64 = true
		}
	}

	if parsed.Base64 {
		decoded, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
			if err != nil {
				return nil, fmt.Errorf("%w: failed to decode base64: %v", ErrInvalidDataURI, err)
			}
		}
		parsed.DecodedData = decoded
		return parsed, nil
	}

	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		// Raw JSON with a stray '%' is still usable as-is
		unescaped = payload
	}
	parsed.DecodedData = []byte(unescaped)
	return parsed, nil
}

// DecodeDataURI unmarshals inline JSON metadata carried by a data URI into v
func DecodeDataURI(json adapter.JSON, uri string, v interface{}) error {
	parsed, err := ParseDataURI(uri)
	if err != nil {
		return err
	}

	if !isJSONMimeType(parsed.MimeType) {
		return fmt.Errorf("%w: unsupported mime type for metadata: %s", ErrInvalidDataURI, parsed.MimeType)
	}

	if err := json.Unmarshal(parsed.DecodedData, v); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

func isJSONMimeType(mimeType string) bool {
	return mimeType == "application/json" || mimeType == "text/plain" || strings.HasSuffix(mimeType, "+json")
}

// DataURICheckResult represents the result of validating an image data URI
type DataURICheckResult struct {
	Valid            bool
	Error            *string
	MimeType         string // Detected mime type from content
	DeclaredMimeType string // Declared mime type in URI
}

// DataURIChecker validates inline images before they are shown
//
//go:generate mockgen -source=data_uri_checker.go -destination=../mocks/data_uri_checker.go -package=mocks -mock_names=DataURIChecker=MockDataURIChecker
type DataURIChecker interface {
	// Check validates that dataURI declares an image type and that
	// its content matches that type by magic numbers
	Check(dataURI string) DataURICheckResult
}

type dataURIChecker struct{}

// NewDataURIChecker creates a new data URI checker
func NewDataURIChecker() DataURIChecker {
	return &dataURIChecker{}
}

// Check validates an image data URI
func (c *dataURIChecker) Check(dataURI string) DataURICheckResult {
	parsed, err := ParseDataURI(dataURI)
	if err != nil {
		return invalid(err.Error(), "", "")
	}

	if !strings.HasPrefix(parsed.MimeType, "image/") {
		return invalid(fmt.Sprintf("unsupported mime type: %s (only image/* is supported)", parsed.MimeType), parsed.MimeType, "")
	}

	if len(parsed.DecodedData) == 0 {
		return invalid("invalid data URI: empty data", parsed.MimeType, "")
	}

	detected := mimetype.Detect(parsed.DecodedData).String()
	if !mimeTypesMatch(parsed.MimeType, detected) {
		return invalid(fmt.Sprintf("mime type mismatch: declared %s but detected %s", parsed.MimeType, detected), parsed.MimeType, detected)
	}

	return DataURICheckResult{
		Valid:            true,
		MimeType:         detected,
		DeclaredMimeType: parsed.MimeType,
	}
}

func invalid(msg, declared, detected string) DataURICheckResult {
	return DataURICheckResult{
		Valid:            false,
		Error:            &msg,
		DeclaredMimeType: declared,
		MimeType:         detected,
	}
}

// mimeTypesMatch compares mime types ignoring case and parameters.
// image/svg and image/svg+xml are treated as equal.
func mimeTypesMatch(declared, detected string) bool {
	declared = baseMimeType(declared)
	detected = baseMimeType(detected)

	if declared == detected {
		return true
	}

	svg := func(m string) bool { return m == "image/svg" || m == "image/svg+xml" }
	return svg(declared) && svg(detected)
}

func baseMimeType(m string) string {
	m = strings.ToLower(strings.TrimSpace(m))
	m, _, _ = strings.Cut(m, ";")
	return strings.TrimSpace(m)
}
