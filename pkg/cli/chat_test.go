package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tubeqa/pkg/domain/interfaces"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
	"github.com/secmon-lab/tubeqa/pkg/usecase"
)

type stubFetcher struct {
	err error
}

func (s *stubFetcher) FetchCaptions(ctx context.Context, videoID types.VideoID) ([]model.CaptionSpan, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.CaptionSpan{{Text: "hello world", Start: 0, Duration: 2}}, nil
}

type stubEngine struct{}

func (s *stubEngine) Index(ctx context.Context, text string, meta model.DocumentMetadata) error {
	return nil
}

func (s *stubEngine) Answer(ctx context.Context, prompt string) (string, error) {
	return "stub answer", nil
}

func newChatUseCases(t *testing.T, fetcher interfaces.TranscriptFetcher) *usecase.UseCases {
	t.Helper()

	uc, err := usecase.New(fetcher, func(collection string) (interfaces.KnowledgeEngine, error) {
		return &stubEngine{}, nil
	})
	gt.NoError(t, err).Required()
	return uc
}

func TestRunChat(t *testing.T) {
	t.Run("summary then answers then export on exit", func(t *testing.T) {
		t.Chdir(t.TempDir())
		uc := newChatUseCases(t, &stubFetcher{})

		in := strings.NewReader("What is this about?\nexit\n")
		var out bytes.Buffer
		err := runChat(context.Background(), uc, "https://www.youtube.com/watch?v=abc123", in, &out)
		gt.NoError(t, err).Required()

		printed := out.String()
		gt.Bool(t, strings.Contains(printed, "Summary:")).True()
		gt.Bool(t, strings.Contains(printed, "stub answer")).True()

		saved, err := os.ReadFile(model.ExportFilename)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(string(saved), "Query: What is this about?")).True()
		gt.Bool(t, strings.Contains(string(saved), "Response: stub answer")).True()
	})

	t.Run("URL prompted when not given", func(t *testing.T) {
		uc := newChatUseCases(t, &stubFetcher{})

		in := strings.NewReader("https://www.youtube.com/watch?v=abc123\nquit\n")
		var out bytes.Buffer
		err := runChat(context.Background(), uc, "", in, &out)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(out.String(), "Enter a YouTube video URL:")).True()
	})

	t.Run("unavailable transcript ends the chat", func(t *testing.T) {
		uc := newChatUseCases(t, &stubFetcher{
			err: goerr.Wrap(interfaces.ErrTranscriptUnavailable, "captions disabled"),
		})

		var out bytes.Buffer
		err := runChat(context.Background(), uc, "https://www.youtube.com/watch?v=abc123", strings.NewReader(""), &out)
		gt.NoError(t, err).Required()
		gt.Bool(t, strings.Contains(out.String(), "No transcript available for this video.")).True()
	})

	t.Run("invalid URL fails", func(t *testing.T) {
		uc := newChatUseCases(t, &stubFetcher{})

		var out bytes.Buffer
		err := runChat(context.Background(), uc, "https://example.com/page", strings.NewReader(""), &out)
		gt.Error(t, err)
	})
}
