// Package sources defines the ports for fetching and reading the source
// spreadsheets. The core pipeline consumes these as injected
// collaborators and knows nothing about authentication or file formats.
package sources

import "context"

type (
	// FileFetcher downloads a file's raw bytes from the cloud store.
	// Implementations are assumed already authenticated.
	FileFetcher interface {
		Fetch(ctx context.Context, fileID string) ([]byte, error)
	}

	// SheetReader extracts a header row and data rows from workbook
	// bytes. skip is the number of leading rows before the header row,
	// a per-source constant.
	SheetReader interface {
		Read(data []byte, sheetName string, skip int) (header []string, rows [][]string, err error)
	}
)
