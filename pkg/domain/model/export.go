package model

import (
	"fmt"
	"strings"
)

// ExportFilename is the fixed name of the downloadable conversation transcript
const ExportFilename = "youtube-qa-conversation-transcript.txt"

// ExportMediaType is the media type of the export artifact
const ExportMediaType = "text/plain"

// ExportArtifact is a downloadable rendering of the conversation log
type ExportArtifact struct {
	Filename  string
	MediaType string
	Body      []byte
}

// ExportConversation serializes the conversation log. Each exchange is
// rendered as a "Query:" line and a "Response:" line followed by a blank
// separator, concatenated in log order. Returns nil when the log is empty.
func ExportConversation(exchanges []QAExchange) *ExportArtifact {
	if len(exchanges) == 0 {
		return nil
	}

	var sb strings.Builder
	for _, ex := range exchanges {
		fmt.Fprintf(&sb, "Query: %s\nResponse: %s\n\n", ex.Query, ex.Response)
	}

	return &ExportArtifact{
		Filename:  ExportFilename,
		MediaType: ExportMediaType,
		Body:      []byte(sb.String()),
	}
}
