package main

import (
	"bufio"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"marketlens/internal/analysis"
	"marketlens/internal/gateway/app"
	"marketlens/internal/types"
)

func printResult[T any](cmd *cobra.Command, res *T) error {
	if res == nil {
		_ = printJSON(cmd, nil)
		return errAnalysisFailed
	}
	return printJSON(cmd, res)
}

func (c *cli) keywordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keyword <keyword>",
		Short: "Analyze search demand and competition for a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string, a *app.App) error {
			q := types.KeywordQuery(strings.Join(args, " "))
			if err := q.Validate(); err != nil {
				return err
			}
			return printResult(cmd, a.Gateway.AnalyzeKeyword(cmd.Context(), q.Keyword))
		}),
	}
}

func (c *cli) shopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shop <shop name>",
		Short: "Analyze an Etsy shop",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string, a *app.App) error {
			q := types.ShopQuery(strings.Join(args, " "))
			if err := q.Validate(); err != nil {
				return err
			}
			return printResult(cmd, a.Gateway.AnalyzeShop(cmd.Context(), q.ShopName))
		}),
	}
}

func (c *cli) productCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <title, description or url>",
		Short: "Analyze a product listing",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string, a *app.App) error {
			q := types.ProductQuery(strings.Join(args, " "))
			if err := q.Validate(); err != nil {
				return err
			}
			return printResult(cmd, a.Gateway.AnalyzeProduct(cmd.Context(), q.Product))
		}),
	}
}

func (c *cli) rankCmd() *cobra.Command {
	var keyword string
	cmd := &cobra.Command{
		Use:   "rank --keyword <keyword> <product description>",
		Short: "Estimate where a product would rank for a keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: c.run(func(cmd *cobra.Command, args []string, a *app.App) error {
			q := types.RankQuery(keyword, strings.Join(args, " "))
			if err := q.Validate(); err != nil {
				return err
			}
			return printResult(cmd, a.Gateway.AnalyzeRank(cmd.Context(), q.Keyword, q.Product))
		}),
	}
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "target keyword")
	_ = cmd.MarkFlagRequired("keyword")
	return cmd
}

func (c *cli) bulkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk",
		Short: "Analyze newline separated keywords read from stdin, one at a time",
		Args:  cobra.NoArgs,
		RunE: c.run(func(cmd *cobra.Command, _ []string, a *app.App) error {
			var sb strings.Builder
			sc := bufio.NewScanner(cmd.InOrStdin())
			for sc.Scan() {
				sb.WriteString(sc.Text())
				sb.WriteByte('\n')
			}
			if err := sc.Err(); err != nil {
				return fmt.Errorf("read keywords: %w", err)
			}
			keywords := analysis.ParseKeywordLines(sb.String())
			if len(keywords) == 0 {
				return fmt.Errorf("no keywords on stdin")
			}
			items := a.Gateway.BulkKeywords(cmd.Context(), keywords, func(it analysis.BulkItem) {
				status := "ok"
				if it.Analysis == nil {
					status = "failed"
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] %s: %s\n", it.Index+1, it.Total, it.Keyword, status)
			})
			return printJSON(cmd, items)
		}),
	}
}

func (c *cli) compareCmd() *cobra.Command {
	var table bool
	cmd := &cobra.Command{
		Use:   "compare <first keyword> <second keyword>",
		Short: "Analyze two keywords side by side",
		Args:  cobra.ExactArgs(2),
		RunE: c.run(func(cmd *cobra.Command, args []string, a *app.App) error {
			first, second := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])
			if first == "" || second == "" {
				return fmt.Errorf("both keywords are required: %w", types.ErrEmptyInput)
			}
			cmp := a.Gateway.CompareKeywords(cmd.Context(), first, second)
			if table {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintf(w, "Metric\t%s\t%s\n", first, second)
				for _, r := range cmp.Rows() {
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.Metric, r.First, r.Second)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			} else if err := printJSON(cmd, cmp); err != nil {
				return err
			}
			if !cmp.Complete {
				return errAnalysisFailed
			}
			return nil
		}),
	}
	cmd.Flags().BoolVar(&table, "table", false, "print a metric table instead of JSON")
	return cmd
}
