package output

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
)

// CSVHistoryWriter writes history reports as CSV.
type CSVHistoryWriter struct{}

// Write outputs the history report as CSV, one row per commit.
func (w *CSVHistoryWriter) Write(report *HistoryReport, options OutputOptions) error {
	items := limitTop(report.Items, options.Top)

	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Hash", "Type", "Message", "FileCount", "Files", "Added", "Deleted", "Entropy"}); err != nil {
		return err
	}

	for _, item := range items {
		row := []string{
			item.Commit.Hash,
			string(item.Tag),
			item.Commit.Message,
			strconv.Itoa(len(item.Commit.FilesChanged)),
			strings.Join(filePaths(item.Commit.FilesChanged), ";"),
			strconv.Itoa(item.Shape.Added),
			strconv.Itoa(item.Shape.Deleted),
			strconv.FormatFloat(item.Shape.ChangeEntropy, 'f', 4, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
