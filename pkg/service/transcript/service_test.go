package transcript_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tubeqa/pkg/domain/interfaces"
	"github.com/secmon-lab/tubeqa/pkg/service/transcript"
)

func TestFetchCaptions(t *testing.T) {
	t.Run("decodes caption spans from timedtext", func(t *testing.T) {
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.URL.Query().Get("v")).Equal("abc123")
			fmt.Fprintf(w, `<html>ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"%s/api/timedtext?v=abc123","languageCode":"en"}]}}}</html>`, srv.URL)
		})
		mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="1.5">hello &amp; welcome</text>
  <text start="1.5" dur="2.0">to the
show</text>
  <text start="3.5" dur="1.0">   </text>
</transcript>`)
		})

		svc := transcript.New(transcript.WithBaseURL(srv.URL))
		spans, err := svc.FetchCaptions(context.Background(), "abc123")
		gt.NoError(t, err).Required()

		gt.Number(t, len(spans)).Equal(2)
		gt.Value(t, spans[0].Text).Equal("hello & welcome")
		gt.Number(t, spans[0].Start).Equal(0.0)
		gt.Number(t, spans[0].Duration).Equal(1.5)
		gt.Value(t, spans[1].Text).Equal("to the show")
	})

	t.Run("prefers manual track over asr", func(t *testing.T) {
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"captionTracks":[{"baseUrl":"%s/asr","languageCode":"en","kind":"asr"},{"baseUrl":"%s/manual","languageCode":"en"}]}`, srv.URL, srv.URL)
		})
		mux.HandleFunc("/asr", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<transcript><text start="0" dur="1">generated</text></transcript>`)
		})
		mux.HandleFunc("/manual", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<transcript><text start="0" dur="1">authored</text></transcript>`)
		})

		svc := transcript.New(transcript.WithBaseURL(srv.URL))
		spans, err := svc.FetchCaptions(context.Background(), "abc123")
		gt.NoError(t, err).Required()
		gt.Number(t, len(spans)).Equal(1)
		gt.Value(t, spans[0].Text).Equal("authored")
	})

	t.Run("watch page without caption tracks", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<html>no captions here</html>`)
		}))
		defer srv.Close()

		svc := transcript.New(transcript.WithBaseURL(srv.URL))
		_, err := svc.FetchCaptions(context.Background(), "abc123")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrTranscriptUnavailable)).True()
	})

	t.Run("watch page returns error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer srv.Close()

		svc := transcript.New(transcript.WithBaseURL(srv.URL))
		_, err := svc.FetchCaptions(context.Background(), "missing1234")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrTranscriptUnavailable)).True()
	})

	t.Run("empty caption document", func(t *testing.T) {
		mux := http.NewServeMux()
		srv := httptest.NewServer(mux)
		defer srv.Close()

		mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `{"captionTracks":[{"baseUrl":"%s/api/timedtext","languageCode":"en"}]}`, srv.URL)
		})
		mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `<transcript></transcript>`)
		})

		svc := transcript.New(transcript.WithBaseURL(srv.URL))
		_, err := svc.FetchCaptions(context.Background(), "abc123")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrTranscriptUnavailable)).True()
	})

	t.Run("invalid video ID", func(t *testing.T) {
		svc := transcript.New()
		_, err := svc.FetchCaptions(context.Background(), "")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrTranscriptUnavailable)).True()
	})
}
