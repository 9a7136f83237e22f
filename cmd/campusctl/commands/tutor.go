package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/rag"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func SearchAction(ctx context.Context, cmd *cli.Command) error {
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	matches, err := app.Tutor.Search(ctx, cmd.String("course"), cmd.String("question"))
	if err != nil {
		return err
	}
	printMatches(os.Stdout, matches)
	return nil
}

func AskAction(ctx context.Context, cmd *cli.Command) error {
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	req := rag.ChatRequest{
		CourseId: cmd.String("course"),
		Messages: []commonModels.ChatTurn{{Role: commonModels.RoleUser, Text: cmd.String("question")}},
	}
	summary, err := app.Tutor.Answer(ctx, req, func(delta string) error {
		_, err := io.WriteString(os.Stdout, delta)
		return err
	})
	fmt.Println()
	if err != nil {
		return err
	}
	if summary.Fallback {
		fmt.Fprintln(os.Stderr, "(answered without course materials)")
	} else {
		fmt.Fprintf(os.Stderr, "(%d passages, %s)\n", summary.Matches, summary.Model)
	}
	return nil
}

func printMatches(w io.Writer, matches []commonModels.RetrievalMatch) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No passages above the match threshold.")
		return
	}
	table := tablewriter.NewWriter(w)
	table.Header("Similarity", "Material", "Chunk", "Passage")
	for _, m := range matches {
		table.Append(fmt.Sprintf("%.3f", m.Similarity), m.MaterialId, fmt.Sprintf("%d", m.Ordinal), preview(m.Content, 80))
	}
	table.Render()
}

func preview(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
