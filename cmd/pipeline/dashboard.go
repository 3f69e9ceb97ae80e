package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"yt-sentiment-pipeline/internal/model"
	"yt-sentiment-pipeline/internal/pipeline"
	"yt-sentiment-pipeline/pkg/utils"
)

func dashboardCommand() *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize the last scored comments file without re-running the pipeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if topN < 0 {
				return errors.New("--top must not be negative")
			}
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			out := cmd.OutOrStdout()
			view := pipeline.LoadDashboard(cfg.ScoredPath(), topN)
			if view.Status == model.DashboardUnavailable {
				fmt.Fprintf(out, "⚠️  %s\n", view.Warning)
				return nil
			}

			output := utils.NewOutputManager(cfg.Report.OutputDir)
			if err := pipeline.RenderDashboard(&view, output, pipeline.DefaultWordCloud()); err != nil {
				return errors.New(pipeline.UserMessage(err))
			}
			renderDashboard(out, view)
			return nil
		},
	}
	cmd.Flags().IntVar(&topN, "top", pipeline.DefaultTopWords, "number of top words listed per sentiment")
	return cmd
}

func renderDashboard(w io.Writer, view model.DashboardView) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Sentiment Dashboard")
	t.AppendHeader(table.Row{"Sentiment", "Comments", "Share", "Top Words"})

	for _, l := range model.Labels {
		words := make([]string, 0, len(view.TopWords[l]))
		for _, wc := range view.TopWords[l] {
			words = append(words, wc.Word)
		}
		t.AppendRow(table.Row{
			utils.Capitalize(string(l)),
			view.Summary.Counts[l],
			fmt.Sprintf("%.2f%%", view.Summary.Percentages[l]),
			strings.Join(words, ", "),
		})
	}
	t.AppendFooter(table.Row{"Total", view.Summary.Total, "", ""})
	t.Render()

	for _, note := range view.Notes {
		fmt.Fprintf(w, "ℹ️  %s\n", note)
	}
	for _, name := range []string{"distribution", "wordcloud_positive", "wordcloud_neutral", "wordcloud_negative"} {
		if path, ok := view.Images[name]; ok {
			fmt.Fprintf(w, "🖼️  %s: %s\n", name, path)
		}
	}
}
