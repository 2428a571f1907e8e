package gateway

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// FileDownload is one fetched attachment. Content is fully buffered;
// attachments are single PDFs, not bulk data.
type FileDownload struct {
	FileName    string
	ContentType string
	Content     []byte
}

// FetchFile retrieves the byte stream for a file id. The filename
// comes from the backend's Content-Disposition when present, otherwise
// the conventional contrato_<id>.pdf. Failures carry the FileTransfer
// kind so callers can message them separately from data errors.
func (g *Gateway) FetchFile(ctx context.Context, fileID int64) (*FileDownload, error) {
	path := fmt.Sprintf("/Archivos/ver/%d", fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{
			Kind:         KindUnreachable,
			Message:      "backend unreachable",
			ServerDetail: err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		g.log.Warn().Int64("file_id", fileID).Int("status", resp.StatusCode).Msg("file fetch failed")
		return nil, &APIError{
			Kind:       KindFileTransfer,
			Message:    fmt.Sprintf("file %d transfer failed", fileID),
			HTTPStatus: resp.StatusCode,
		}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{
			Kind:         KindFileTransfer,
			Message:      fmt.Sprintf("file %d transfer interrupted", fileID),
			ServerDetail: err.Error(),
		}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/pdf"
	}

	return &FileDownload{
		FileName:    dispositionFileName(resp.Header.Get("Content-Disposition"), fileID),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func dispositionFileName(disposition string, fileID int64) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := params["filename"]; name != "" {
				return name
			}
		}
	}
	return fmt.Sprintf("contrato_%d.pdf", fileID)
}
