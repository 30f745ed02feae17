package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/tubeqa/pkg/domain/interfaces"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
)

const defaultBaseURL = "https://www.youtube.com"

// userAgent mimics a desktop browser; the watch page serves a reduced payload
// without caption metadata to unknown clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// Service fetches caption tracks from the YouTube watch page and decodes the
// referenced timedtext document into caption spans.
type Service struct {
	httpClient *http.Client
	baseURL    string
}

var _ interfaces.TranscriptFetcher = &Service{}

// Option is a functional option for Service configuration
type Option func(*Service)

// WithHTTPClient replaces the HTTP client used for all requests
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// WithBaseURL replaces the watch page origin (used in tests)
func WithBaseURL(baseURL string) Option {
	return func(s *Service) {
		s.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// New creates a transcript fetching service
func New(opts ...Option) *Service {
	s := &Service{
		httpClient: http.DefaultClient,
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchCaptions returns the ordered caption spans of a video. Every failure
// mode (unknown video, captions disabled, network error, malformed payload)
// wraps interfaces.ErrTranscriptUnavailable.
func (s *Service) FetchCaptions(ctx context.Context, videoID types.VideoID) ([]model.CaptionSpan, error) {
	if err := videoID.Validate(); err != nil {
		return nil, goerr.Wrap(interfaces.ErrTranscriptUnavailable, "invalid video ID", goerr.V("videoID", videoID))
	}

	track, err := s.findCaptionTrack(ctx, videoID)
	if err != nil {
		return nil, err
	}

	spans, err := s.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return nil, goerr.Wrap(interfaces.ErrTranscriptUnavailable, "caption track is empty", goerr.V("videoID", videoID))
	}

	return spans, nil
}

// captionTrack is one entry of the watch page's captionTracks array
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

func (s *Service) findCaptionTrack(ctx context.Context, videoID types.VideoID) (*captionTrack, error) {
	url := fmt.Sprintf("%s/watch?v=%s", s.baseURL, videoID)

	body, err := s.get(ctx, url)
	if err != nil {
		return nil, goerr.Wrap(interfaces.ErrTranscriptUnavailable, "failed to fetch watch page",
			goerr.V("videoID", videoID), goerr.V("cause", err.Error()))
	}

	raw := extractCaptionTracksJSON(body)
	if raw == "" {
		return nil, goerr.Wrap(interfaces.ErrTranscriptUnavailable, "no caption tracks on watch page",
			goerr.V("videoID", videoID))
	}

	var tracks []captionTrack
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		return nil, goerr.Wrap(interfaces.ErrTranscriptUnavailable, "malformed caption track metadata",
			goerr.V("videoID", videoID))
	}
	if len(tracks) == 0 {
		return nil, goerr.Wrap(interfaces.ErrTranscriptUnavailable, "caption track list is empty",
			goerr.V("videoID", videoID))
	}

	// Prefer a manually authored track over auto-generated ("asr") ones
	for i := range tracks {
		if tracks[i].Kind != "asr" {
			return &tracks[i], nil
		}
	}
	return &tracks[0], nil
}

// extractCaptionTracksJSON locates the "captionTracks" array inside the watch
// page payload and returns it as raw JSON. Returns "" when absent.
func extractCaptionTracksJSON(page string) string {
	const marker = `"captionTracks":`

	start := strings.Index(page, marker)
	if start < 0 {
		return ""
	}
	rest := page[start+len(marker):]
	if len(rest) == 0 || rest[0] != '[' {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(rest); i++ {
		c := rest[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// skip structural characters inside strings
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return rest[:i+1]
			}
		}
	}
	return ""
}

// timedText is the XML document referenced by a caption track's baseUrl
type timedText struct {
	XMLName xml.Name        `xml:"transcript"`
	Texts   []timedTextSpan `xml:"text"`
}

type timedTextSpan struct {
	Start    float64 `xml:"start,attr"`
	Duration float64 `xml:"dur,attr"`
	Body     string  `xml:",chardata"`
}

func (s *Service) fetchTimedText(ctx context.Context, url string) ([]model.CaptionSpan, error) {
	body, err := s.get(ctx, url)
	if err != nil {
		return nil, goerr.Wrap(interfaces.ErrTranscriptUnavailable, "failed to fetch caption track",
			goerr.V("cause", err.Error()))
	}

	var doc timedText
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return nil, goerr.Wrap(interfaces.ErrTranscriptUnavailable, "malformed caption track document")
	}

	spans := make([]model.CaptionSpan, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		text = strings.Join(strings.Fields(text), " ")

		spans = append(spans, model.CaptionSpan{
			Text:     text,
			Start:    t.Start,
			Duration: t.Duration,
		})
	}

	return spans, nil
}

func (s *Service) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build request", goerr.V("url", url))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "request failed", goerr.V("url", url))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected status code", goerr.V("url", url), goerr.V("status", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read response body", goerr.V("url", url))
	}

	return string(body), nil
}
