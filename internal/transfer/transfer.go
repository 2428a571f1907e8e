// Package transfer serves a fetched contract file to the browser,
// either as a save-to-disk download or for inline viewing in a new
// browsing context.
package transfer

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"github.com/nurpe/contratos-dashboard/internal/gateway"
)

type Mode string

const (
	ModeDownload Mode = "download"
	ModeView     Mode = "view"
)

// ParseMode interprets the mode query parameter; an empty value means
// download.
func ParseMode(raw string) (Mode, error) {
	switch raw {
	case "", string(ModeDownload):
		return ModeDownload, nil
	case string(ModeView):
		return ModeView, nil
	default:
		return "", fmt.Errorf("invalid transfer mode %q", raw)
	}
}

// Serve writes the file to the response. Download mode triggers the
// browser save flow via an attachment disposition; view mode serves
// inline so the browser renders the PDF itself.
func Serve(w http.ResponseWriter, download *gateway.FileDownload, mode Mode) {
	disposition := "attachment"
	if mode == ModeView {
		disposition = "inline"
	}

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{
		"filename": download.FileName,
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(download.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(download.Content)
}
