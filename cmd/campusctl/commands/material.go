package commands

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/akolanti/CampusAI/internal/domain/commonModels"
	"github.com/akolanti/CampusAI/internal/domain/indexModel"
	"github.com/akolanti/CampusAI/internal/material"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"
)

func IngestAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.Materials.Upload(ctx, material.UploadInput{
		CourseId:    cmd.String("course"),
		UploaderId:  cmd.String("uploader"),
		Title:       cmd.String("title"),
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Size:        info.Size(),
		Path:        path,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", material.UserMessage(err), err)
	}

	fmt.Println(result.Success)
	printReport(os.Stdout, result.Material, result.Report)
	return nil
}

func ListAction(ctx context.Context, cmd *cli.Command) error {
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	materials, err := app.Materials.List(ctx, cmd.String("course"))
	if err != nil {
		return err
	}
	printMaterials(os.Stdout, materials)
	return nil
}

func DeleteAction(ctx context.Context, cmd *cli.Command) error {
	app, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	materialId := cmd.String("material")
	if err := app.Materials.Delete(ctx, materialId); err != nil {
		return fmt.Errorf("%s: %w", material.UserMessage(err), err)
	}
	fmt.Println("Deleted", materialId)
	return nil
}

func printReport(w io.Writer, m commonModels.Material, report indexModel.IndexReport) {
	table := tablewriter.NewWriter(w)
	table.Header("Field", "Value")
	table.Append("Material", m.Id)
	table.Append("Title", m.Title)
	table.Append("File", m.FileUrl)
	table.Append("Status", string(report.Status))
	if report.SkipReason != "" {
		table.Append("Skip reason", string(report.SkipReason))
	}
	table.Append("Chunks", fmt.Sprintf("%d", report.Chunks))
	table.Append("Inserted", fmt.Sprintf("%d", report.Inserted))
	if report.FailedBatches > 0 {
		table.Append("Failed batches", fmt.Sprintf("%d", report.FailedBatches))
	}
	if report.Error != "" {
		table.Append("Error", report.Error)
	}
	table.Render()
}

func printMaterials(w io.Writer, materials []commonModels.Material) {
	if len(materials) == 0 {
		fmt.Fprintln(w, "No materials.")
		return
	}
	table := tablewriter.NewWriter(w)
	table.Header("Id", "Title", "Type", "Uploaded")
	for _, m := range materials {
		table.Append(m.Id, m.Title, m.FileType, m.CreatedAt.Format("2006-01-02 15:04"))
	}
	table.Render()
}
