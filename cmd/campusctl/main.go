package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/CampusAI/cmd/campusctl/commands"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	courseFlag := &cli.StringFlag{Name: "course", Usage: "course id", Required: true}

	app := &cli.Command{
		Name:  "campusctl",
		Usage: "index course materials and ask the AI tutor from the terminal",
		Commands: []*cli.Command{
			{
				Name:  "ingest",
				Usage: "upload and index a PDF or DOCX file",
				Flags: []cli.Flag{
					courseFlag,
					&cli.StringFlag{Name: "file", Usage: "path to the file", Required: true},
					&cli.StringFlag{Name: "title", Usage: "display title, defaults to the file name"},
					&cli.StringFlag{Name: "uploader", Usage: "uploader id"},
				},
				Action: commands.IngestAction,
			},
			{
				Name:   "list",
				Usage:  "list the materials of a course",
				Flags:  []cli.Flag{courseFlag},
				Action: commands.ListAction,
			},
			{
				Name:  "search",
				Usage: "show the passages retrieved for a question",
				Flags: []cli.Flag{
					courseFlag,
					&cli.StringFlag{Name: "question", Aliases: []string{"q"}, Required: true},
				},
				Action: commands.SearchAction,
			},
			{
				Name:  "ask",
				Usage: "stream the tutor's answer to a question",
				Flags: []cli.Flag{
					courseFlag,
					&cli.StringFlag{Name: "question", Aliases: []string{"q"}, Required: true},
				},
				Action: commands.AskAction,
			},
			{
				Name:  "delete",
				Usage: "delete a material, its file and its vectors",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "material", Usage: "material id", Required: true},
				},
				Action: commands.DeleteAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
