package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newRubricsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rubrics",
		Short: "List rubrics and their criterion ranges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			rubrics, err := a.Rubrics.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(rubrics) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No rubrics")
				return nil
			}

			var rows [][]string
			for _, r := range rubrics {
				for _, c := range r.Criteria {
					rows = append(rows, []string{r.Name, c.Title, strconv.Itoa(c.Range.Min), strconv.Itoa(c.Range.Max)})
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Rubric", "Criterion", "Min", "Max"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
}

func newAssessmentsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assessments",
		Short: "List assessments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			assessments, err := a.Assessments.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(assessments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No assessments")
				return nil
			}

			rows := make([][]string, 0, len(assessments))
			for _, as := range assessments {
				rows = append(rows, []string{as.Name, as.Folder, as.Rubric, as.CreatedAt.Format(time.DateTime)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Name", "Folder", "Rubric", "Created"},
				rows,
				nil,
			))
			return nil
		},
	}
}

func newGradesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "grades <assessment>",
		Short: "Show stored grades for an assessment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			name := args[0]
			keys, err := a.Grades.ListKeys(cmd.Context(), name)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No grades for %s\n", name)
				return nil
			}

			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				g, err := a.Grades.Get(cmd.Context(), name, key)
				if err != nil {
					return err
				}
				rows = append(rows, []string{g.EssayFile, formatGrades(g.Grades), g.GradedAt.Format(time.DateTime)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Essay", "Grades", "Graded"}, rows, nil))
			return nil
		},
	}
}

func newLinkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "link <folder> <transcript>",
		Short: "Print the scanned image paired with a transcript",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			image, err := a.Essays.LinkArtifact(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), image)
			return nil
		},
	}
}

func newGradeCommand(ctx *commandContext) *cobra.Command {
	var comments string

	cmd := &cobra.Command{
		Use:   "grade <assessment> <essay>",
		Short: "Grade a transcript with the text generator and store the result",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.ensureApp(cmd.Context())
			if err != nil {
				return err
			}
			record, result, err := a.Grades.GradeEssay(cmd.Context(), args[0], args[1], comments)
			if err != nil {
				return err
			}

			titles := make([]string, 0, len(record.Grades))
			for title := range record.Grades {
				titles = append(titles, title)
			}
			sort.Strings(titles)

			rows := make([][]string, 0, len(titles))
			for _, title := range titles {
				rows = append(rows, []string{
					title,
					strconv.FormatFloat(result.Raw[title], 'f', -1, 64),
					strconv.Itoa(record.Grades[title]),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Criterion", "Raw", "Grade"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}
	cmd.Flags().StringVar(&comments, "comments", "", "Comments stored with the grade")
	return cmd
}

func formatGrades(grades map[string]int) string {
	titles := make([]string, 0, len(grades))
	for title := range grades {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	parts := make([]string, 0, len(titles))
	for _, title := range titles {
		parts = append(parts, fmt.Sprintf("%s=%d", title, grades[title]))
	}
	return strings.Join(parts, ", ")
}
