// data_handler.go
package email

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"sharkwatch/src/datasource/file"
	"sharkwatch/src/storage"
)

// DatasetHandler saves dataset attachments from incoming mail into the data
// directory and loads them into DataFrames.
type DatasetHandler struct {
	subjectKeyword string
	dataDir        string
	sheetName      string
}

func NewDatasetHandler(subjectKeyword, dataDir, sheetName string) *DatasetHandler {
	return &DatasetHandler{
		subjectKeyword: subjectKeyword,
		dataDir:        dataDir,
		sheetName:      sheetName,
	}
}

// Handle writes every dataset attachment of the mail to the data directory.
func (h *DatasetHandler) Handle(e *Email, logger *storage.Logger) error {
	if e == nil {
		return nil
	}
	if !strings.Contains(e.Subject, h.subjectKeyword) {
		return nil
	}

	if err := os.MkdirAll(h.dataDir, 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	saved := 0
	for _, att := range e.Attachments {
		if !isDatasetAttachment(att.Filename) {
			continue
		}
		path := filepath.Join(h.dataDir, filepath.Base(att.Filename))
		if err := os.WriteFile(path, att.Content, 0644); err != nil {
			return fmt.Errorf("save attachment %s: %w", att.Filename, err)
		}
		logger.Info("saved dataset attachment: " + path)
		saved++
	}

	if saved == 0 {
		logger.Warning(fmt.Sprintf("mail %q carried no dataset attachment", e.Subject))
	}
	return nil
}

// LoadAttachment parses a dataset attachment into a DataFrame without
// touching disk. CSV delimiters are sniffed; spreadsheets go through the
// XLSX reader.
func (h *DatasetHandler) LoadAttachment(att *Attachment) (dataframe.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(att.Filename)) {
	case ".csv":
		return file.ReadCSVFrom(strings.NewReader(string(att.Content)), file.DetectDelimiter(att.Content))
	case ".xlsx":
		return file.ReadXLSXBytes(att.Content, h.sheetName)
	default:
		return dataframe.DataFrame{}, fmt.Errorf("unsupported attachment type: %s", att.Filename)
	}
}

func isDatasetAttachment(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx":
		return true
	}
	return false
}
