package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
)

func TestParseVideoURL(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		videoID types.VideoID
	}{
		{
			name:    "watch URL with trailing parameters",
			url:     "https://www.youtube.com/watch?v=abc123&t=5",
			videoID: "abc123",
		},
		{
			name:    "watch URL without trailing parameters",
			url:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			videoID: "dQw4w9WgXcQ",
		},
		{
			name:    "shorts URL with query string",
			url:     "https://www.youtube.com/shorts/xyz789?feature=share",
			videoID: "xyz789",
		},
		{
			name:    "shorts URL without query string",
			url:     "https://youtube.com/shorts/xyz789",
			videoID: "xyz789",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := model.ParseVideoURL(tc.url)
			gt.NoError(t, err).Required()
			gt.Value(t, ref.ID).Equal(tc.videoID)
			gt.Value(t, ref.RawURL).Equal(tc.url)
		})
	}

	invalid := []struct {
		name string
		url  string
	}{
		{"plain website", "https://example.com/page"},
		{"channel URL", "https://www.youtube.com/@somechannel"},
		{"empty string", ""},
		{"watch URL without ID", "https://www.youtube.com/watch?v="},
		{"shorts URL without ID", "https://www.youtube.com/shorts/"},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.ParseVideoURL(tc.url)
			gt.Error(t, err)
			gt.Bool(t, errors.Is(err, model.ErrInvalidVideoURL)).True()
		})
	}
}

func TestTranscriptDocument(t *testing.T) {
	t.Run("available document carries joined text", func(t *testing.T) {
		doc := model.NewTranscript("hello world")
		gt.Bool(t, doc.Available).True()
		gt.Value(t, doc.Text).Equal("hello world")
		gt.Value(t, doc.Title).Equal("Unknown")
	})

	t.Run("unavailable document carries the sentinel", func(t *testing.T) {
		doc := model.UnavailableTranscript()
		gt.Bool(t, doc.Available).False()
		gt.Value(t, doc.Text).Equal(model.NoTranscriptText)
	})
}

func TestJoinCaptions(t *testing.T) {
	spans := []model.CaptionSpan{
		{Text: "first", Start: 0, Duration: 1},
		{Text: "second", Start: 1, Duration: 2},
		{Text: "third", Start: 3, Duration: 1},
	}
	gt.Value(t, model.JoinCaptions(spans)).Equal("first second third")
	gt.Value(t, model.JoinCaptions(nil)).Equal("")
}
