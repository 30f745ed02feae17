package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/tubeqa/pkg/cli/config"
	"github.com/secmon-lab/tubeqa/pkg/domain/types"
	"github.com/secmon-lab/tubeqa/pkg/usecase"
	"github.com/secmon-lab/tubeqa/pkg/utils/logging"
)

func cmdChat() *cli.Command {
	var videoURL string
	var llmCfg config.LLM
	var repoCfg config.Repository
	var appCfg config.AppConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "url",
			Aliases:     []string{"u"},
			Usage:       "YouTube video URL (prompted interactively when omitted)",
			Sources:     cli.EnvVars("TUBEQA_VIDEO_URL"),
			Destination: &videoURL,
		},
	}

	flags = append(flags, llmCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, appCfg.Flags()...)

	return &cli.Command{
		Name:    "chat",
		Aliases: []string{"c"},
		Usage:   "Interactive question answering about a single video",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, repo, err := buildUseCases(ctx, &llmCfg, &repoCfg, &appCfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			return runChat(ctx, uc, videoURL, os.Stdin, color.Output)
		},
	}
}

var (
	promptColor = color.New(color.FgCyan, color.Bold)
	titleColor  = color.New(color.FgGreen, color.Bold)
	warnColor   = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed)
)

// runChat drives the interactive loop: ingest one video, print its summary,
// then answer questions until the user quits. The conversation is written to
// a transcript file on exit when any exchange happened.
func runChat(ctx context.Context, uc *usecase.UseCases, videoURL string, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	state, err := uc.CreateSession(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to create session")
	}
	defer func() {
		if err := uc.CloseSession(context.WithoutCancel(ctx), state.ID); err != nil {
			logging.Default().Warn("failed to close session", "error", err.Error())
		}
	}()

	for videoURL == "" {
		promptColor.Fprint(out, "Enter a YouTube video URL: ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		videoURL = strings.TrimSpace(scanner.Text())
	}

	result, err := uc.IngestVideo(ctx, state.ID, videoURL)
	if err != nil {
		return goerr.Wrap(err, "failed to ingest video", goerr.V("url", videoURL))
	}
	if result.Outcome == usecase.OutcomeSkipped {
		warnColor.Fprintln(out, "No transcript available for this video.")
		return nil
	}

	titleColor.Fprintf(out, "Video %s indexed.\n\n", result.Video.ID)

	summary, err := uc.Summary(ctx, state.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to generate summary")
	}
	titleColor.Fprintln(out, "Summary:")
	fmt.Fprintf(out, "%s\n\n", summary)

	for {
		promptColor.Fprint(out, "Question (exit to quit, /export to save): ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
			continue
		case "exit", "quit", "/quit":
			if err := exportChat(out, uc, state.ID); err != nil {
				errorColor.Fprintf(out, "Export failed: %s\n", err)
			}
			return nil
		case "/export":
			if err := exportChat(out, uc, state.ID); err != nil {
				errorColor.Fprintf(out, "Export failed: %s\n", err)
			}
			continue
		}

		exchange, err := uc.Ask(ctx, state.ID, line)
		if err != nil {
			if errors.Is(err, usecase.ErrAnswerFailed) {
				errorColor.Fprintf(out, "Failed to answer: %s\n\n", err)
				continue
			}
			return err
		}

		fmt.Fprintf(out, "%s\n\n", exchange.Response)
	}

	return scanner.Err()
}

// exportChat writes the conversation transcript into the current directory
func exportChat(out io.Writer, uc *usecase.UseCases, id types.SessionID) error {
	artifact, err := uc.Export(id)
	if err != nil {
		return err
	}
	if artifact == nil {
		warnColor.Fprintln(out, "Nothing to export yet.")
		return nil
	}

	if err := os.WriteFile(artifact.Filename, artifact.Body, 0600); err != nil {
		return goerr.Wrap(err, "failed to write transcript file", goerr.V("path", artifact.Filename))
	}
	titleColor.Fprintf(out, "Conversation saved to %s\n\n", artifact.Filename)
	return nil
}
