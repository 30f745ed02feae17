package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/tubeqa/pkg/domain/model"
)

func TestExportConversation(t *testing.T) {
	t.Run("empty log yields no artifact", func(t *testing.T) {
		gt.Value(t, model.ExportConversation(nil)).Nil()
		gt.Value(t, model.ExportConversation([]model.QAExchange{})).Nil()
	})

	t.Run("renders query and response blocks in order", func(t *testing.T) {
		artifact := model.ExportConversation([]model.QAExchange{
			{Query: "What is this video about?", Response: "testing", Index: 0},
			{Query: "Anything else?", Response: "more testing", Index: 1},
		})

		if artifact == nil {
			t.Fatal("expected artifact for non-empty log")
		}
		gt.Value(t, artifact.Filename).Equal("youtube-qa-conversation-transcript.txt")
		gt.Value(t, artifact.MediaType).Equal("text/plain")

		gt.Value(t, string(artifact.Body)).Equal(
			"Query: What is this video about?\nResponse: testing\n\n" +
				"Query: Anything else?\nResponse: more testing\n\n")
	})
}
