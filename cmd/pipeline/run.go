package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"yt-sentiment-pipeline/internal/metrics"
	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/internal/pipeline"
	"yt-sentiment-pipeline/pkg/utils"
)

func runCommand() *cobra.Command {
	var maxResults int

	cmd := &cobra.Command{
		Use:   "run [video-id-or-url]",
		Short: "Fetch, clean and score comments, then build the PDF report",
		Long: `Run the full pipeline for one video. Without an argument the video ID or URL
is read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			input := ""
			if len(args) == 1 {
				input = args[0]
			} else {
				input, err = promptVideo(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("max-results") {
				if maxResults < 0 {
					return errors.New("--max-results must not be negative")
				}
				cfg.YouTube.MaxResults = maxResults
			}

			c := pipeline.NewController(cfg, log,
				pipeline.ProgressPrinter{W: cmd.OutOrStdout()},
				pipeline.LogTracker{Logger: log},
				pipeline.MetricsTracker{Metrics: metrics.New(nil)},
			)
			result, err := c.Run(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("%w: %s", errReported, pipeline.UserMessage(err))
			}
			renderArtifacts(cmd.OutOrStdout(), c.Builder.Output, result)
			return nil
		},
	}
	cmd.Flags().IntVar(&maxResults, "max-results", 0, "maximum number of comments to fetch (default from config)")
	return cmd
}

// renderArtifacts lists every file the run produced with its size
func renderArtifacts(w io.Writer, output *utils.OutputManager, result *pipeline.RunResult) {
	paths := []string{result.RawPath, result.CleanedPath, result.ScoredPath,
		result.Artifact.DistributionChart, result.Artifact.TimelineChart}
	for _, l := range model.Labels {
		paths = append(paths, result.Artifact.WordClouds[l])
	}
	paths = append(paths, result.Artifact.WorkbookPath, result.Artifact.DocumentPath)

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Artifact", "Type", "Size"})
	for _, p := range paths {
		if p == "" {
			continue
		}
		size, err := output.GetFileSize(p)
		if err != nil {
			continue
		}
		t.AppendRow(table.Row{p, output.GetFileType(p), fmt.Sprintf("%.1f KB", float64(size)/1024)})
	}
	t.AppendFooter(table.Row{"Comments", fmt.Sprintf("%d scored", result.Scored), fmt.Sprintf("%d dropped", result.Dropped)})
	t.Render()
}

func promptVideo(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "🎬 Enter a YouTube video ID or URL: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read video: %w", err)
	}
	return strings.TrimSpace(line), nil
}
