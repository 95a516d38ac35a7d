package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"news-sentiment-service/internal/core/domain"
	"news-sentiment-service/internal/core/services"

	"github.com/spf13/cobra"
)

// =============================================================================
// SEARCH
// =============================================================================

type searchFlags struct {
	year    string
	symbol  string
	sentMin string
	sentMax string
	keyword string
	newsID  string
	limit   int
	offset  int
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.year, "year", "", "Filter by year (all for every year)")
	cmd.Flags().StringVar(&f.symbol, "symbol", "", "Filter by stock symbol")
	cmd.Flags().StringVar(&f.sentMin, "sent-min", "", "Minimum signed sentiment score")
	cmd.Flags().StringVar(&f.sentMax, "sent-max", "", "Maximum signed sentiment score")
	cmd.Flags().StringVar(&f.keyword, "keyword", "", "Keyword in article title")
	cmd.Flags().StringVar(&f.newsID, "news-id", "", "Exact news_id")
}

func (f *searchFlags) query() services.SearchQuery {
	sentMin, sentMax := services.ParseSentimentBounds(f.sentMin, f.sentMax)
	return services.SearchQuery{
		Year:    f.year,
		Symbol:  f.symbol,
		SentMin: sentMin,
		SentMax: sentMax,
		Keyword: f.keyword,
		NewsID:  f.newsID,
		Limit:   f.limit,
		Offset:  f.offset,
	}
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search articles by year, symbol, sentiment range, keyword or id",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			res, err := opts.app.Search.Search(ctx, f.query())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeJSON(out, res)
			}
			fmt.Fprintf(out, "%d matching articles (showing %d from offset %d)\n\n", res.Total, len(res.Articles), res.Offset)
			return writeArticles(out, res.Columns, res.Articles)
		},
	}
	f.register(cmd)
	cmd.Flags().IntVar(&f.limit, "limit", services.DefaultSearchLimit, "Page size")
	cmd.Flags().IntVar(&f.offset, "offset", 0, "Page offset")
	return cmd
}

// =============================================================================
// SHOW
// =============================================================================

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <news_id>",
		Short: "Show sentiment metrics and metadata of one article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			detail, err := opts.app.Search.Get(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeJSON(out, detail)
			}

			fmt.Fprintf(out, "%s\n\n", detail.Article.Title)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SENTIMENT\t")
			for _, c := range detail.Sentiment {
				fmt.Fprintf(tw, "  %s\t%s\n", c.Name, detail.Article.FormatValue(c.Name))
			}
			fmt.Fprintln(tw, "METADATA\t")
			for _, c := range detail.Metadata {
				fmt.Fprintf(tw, "  %s\t%s\n", c.Name, detail.Article.FormatValue(c.Name))
			}
			return tw.Flush()
		},
	}
}

// =============================================================================
// TREND & SUMMARY
// =============================================================================

func newTrendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Print the average signed sentiment score per year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			points, err := opts.app.Insights.AnnualTrend(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeJSON(out, points)
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "YEAR\tAVERAGE SENTIMENT SCORE")
			for _, p := range points {
				fmt.Fprintf(tw, "%d\t%.4f\n", p.Year, p.AverageScore)
			}
			return tw.Flush()
		},
	}
}

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var year string
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the sentiment label breakdown for a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			summary, err := opts.app.Insights.YearlySummary(ctx, year)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeJSON(out, summary)
			}
			return writeSummary(out, summary)
		},
	}
	cmd.Flags().StringVar(&year, "year", "", "Year to summarise (all for every year)")
	return cmd
}

func writeSummary(out io.Writer, s *domain.YearlySummary) error {
	fmt.Fprintln(out, s.Title)
	if s.DominantLabel == nil {
		fmt.Fprintln(out, "No sentiment labels found.")
		return nil
	}
	fmt.Fprintf(out, "Total articles: %d\nDominant sentiment: %s (%.1f%%)\n\n",
		s.TotalArticles, *s.DominantLabel, *s.DominantPct)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SENTIMENT\tCOUNT\tPERCENTAGE")
	for _, r := range s.Rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", r.Sentiment, r.Count, r.Percentage)
	}
	return tw.Flush()
}

// =============================================================================
// EXPORT & LOAD
// =============================================================================

func newExportCmd(opts *rootOptions) *cobra.Command {
	f := &searchFlags{}
	var format, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every matching article as csv or xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			// Validate the format before creating the output file.
			writer, err := opts.app.Export.Writer(format)
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = "news_search_results." + writer.Format()
			}

			file, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", outPath, err)
			}
			rows, err := opts.app.Export.Export(ctx, f.query(), writer.Format(), file)
			if cerr := file.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				os.Remove(outPath)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", rows, outPath)
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv or xlsx")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default news_search_results.<format>)")
	return cmd
}

func newLoadCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Copy the dataset into the warehouse table (needs WAREHOUSE_ENABLED)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()

			n, err := opts.app.LoadWarehouse(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded %d rows into %s\n", n, opts.app.Config.Warehouse.Table)
			return nil
		},
	}
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func writeArticles(out io.Writer, columns []string, articles []*domain.Article) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for i, c := range columns {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, c)
	}
	fmt.Fprintln(tw)
	for _, a := range articles {
		for i, c := range columns {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, a.FormatValue(c))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
