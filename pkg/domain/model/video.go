package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
)

// ErrInvalidVideoURL is returned when a URL matches none of the recognized shapes
var ErrInvalidVideoURL = goerr.New("invalid YouTube URL")

// VideoReference is a resolved pointer to a single YouTube video.
// It is constructed only by ParseVideoURL and is immutable afterwards.
type VideoReference struct {
	RawURL string
	ID     types.VideoID
}

// ParseVideoURL extracts a video ID from a user-supplied URL.
// Two shapes are recognized: the watch form ("...watch?v=<id>", terminated by
// "&" or end of string) and the shorts form (".../shorts/<id>", terminated by
// "?" or end of string). Any other shape fails with ErrInvalidVideoURL.
func ParseVideoURL(rawURL string) (*VideoReference, error) {
	var id string

	switch {
	case strings.Contains(rawURL, "watch?v="):
		id = rawURL[strings.LastIndex(rawURL, "v=")+len("v="):]
		if pos := strings.Index(id, "&"); pos >= 0 {
			id = id[:pos]
		}

	case strings.Contains(rawURL, "/shorts/"):
		id = rawURL[strings.LastIndex(rawURL, "/shorts/")+len("/shorts/"):]
		if pos := strings.Index(id, "?"); pos >= 0 {
			id = id[:pos]
		}

	default:
		return nil, goerr.Wrap(ErrInvalidVideoURL, "unrecognized URL shape", goerr.V("url", rawURL))
	}

	videoID := types.VideoID(id)
	if err := videoID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidVideoURL, "extracted video ID is invalid", goerr.V("url", rawURL))
	}

	return &VideoReference{
		RawURL: rawURL,
		ID:     videoID,
	}, nil
}

// CaptionSpan is one caption line returned by the transcript collaborator
type CaptionSpan struct {
	Text     string
	Start    float64
	Duration float64
}

// NoTranscriptText is the sentinel body of an unavailable transcript.
// Availability must be checked via TranscriptDocument.Available, never by
// comparing against this string.
const NoTranscriptText = "No transcript available for this video."

// placeholderTitle is used because title resolution is out of scope
const placeholderTitle = "Unknown"

// TranscriptDocument is the normalized transcript of one video.
// When Available is false the document carries the sentinel text and must
// never be handed to the knowledge engine.
type TranscriptDocument struct {
	Title     string
	Text      string
	Available bool
}

// NewTranscript builds an available document from concatenated caption text
func NewTranscript(text string) *TranscriptDocument {
	return &TranscriptDocument{
		Title:     placeholderTitle,
		Text:      text,
		Available: true,
	}
}

// UnavailableTranscript builds the sentinel document used when captions
// cannot be fetched
func UnavailableTranscript() *TranscriptDocument {
	return &TranscriptDocument{
		Title:     placeholderTitle,
		Text:      NoTranscriptText,
		Available: false,
	}
}

// JoinCaptions concatenates caption spans in temporal order with single-space
// separators into one document string
func JoinCaptions(spans []CaptionSpan) string {
	texts := make([]string, 0, len(spans))
	for _, span := range spans {
		texts = append(texts, span.Text)
	}
	return strings.Join(texts, " ")
}
