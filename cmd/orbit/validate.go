package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"orbit/internal/validate"
)

func validateCmd() *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run consistency checks against the knowledge base",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), source)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Knowledge source (defaults to knowledge.source)")
	return cmd
}

func runValidate(ctx context.Context, source string) error {
	p, err := loadProject(ctx, source)
	if err != nil {
		return err
	}
	defer p.Close(ctx)

	var report *validate.Report
	if p.db != nil {
		report, err = validate.Run(ctx, p.db)
		if err != nil {
			return err
		}
	} else {
		report = validate.Items(p.items)
	}

	var errorIssues []validate.Issue
	var warnIssues []validate.Issue
	for _, issue := range report.Issues {
		switch issue.Severity {
		case validate.SeverityError:
			errorIssues = append(errorIssues, issue)
		case validate.SeverityWarn:
			warnIssues = append(warnIssues, issue)
		}
	}

	if len(errorIssues) == 0 && len(warnIssues) == 0 {
		color.New(color.FgGreen).Fprintln(os.Stdout, "No issues found.")
		return nil
	}

	if len(errorIssues) > 0 {
		color.New(color.FgRed, color.Bold).Fprintf(os.Stdout, "Errors (%d):\n", len(errorIssues))
		printIssues(os.Stdout, errorIssues)
	}
	if len(warnIssues) > 0 {
		if len(errorIssues) > 0 {
			fmt.Fprintln(os.Stdout, "")
		}
		color.New(color.FgYellow, color.Bold).Fprintf(os.Stdout, "Warnings (%d):\n", len(warnIssues))
		printIssues(os.Stdout, warnIssues)
	}

	if len(errorIssues) > 0 {
		return fmt.Errorf("validation found errors")
	}
	return nil
}

func printIssues(out io.Writer, issues []validate.Issue) {
	id := color.New(color.FgCyan).SprintFunc()
	for _, issue := range issues {
		location := id(issue.ItemID)
		if issue.FilePath != "" {
			location = fmt.Sprintf("%s (%s)", location, issue.FilePath)
		}
		fmt.Fprintf(out, "  - %s: %s (%s)\n", location, issue.Message, issue.Code)
	}
}
