package handlers

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"rhythm-registry/internal/monitoring"
)

const (
	maxCSVUploadBytes = 5 << 20
	csvFormField      = "file"
)

// ExportArtistsCSV streams every artist as a CSV attachment. The file is
// rendered before any byte is sent so a failure can still answer with JSON.
func (a *API) ExportArtistsCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := a.artists.ExportCSV(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}

	filename := "artists-" + time.Now().UTC().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ImportArtistsCSV accepts a multipart upload in field "file".
func (a *API) ImportArtistsCSV(c *gin.Context) {
	startedAt := time.Now()
	imported, rejected, success := 0, 0, false
	defer func() {
		monitoring.RecordImport(imported, rejected, time.Since(startedAt), success)
	}()

	// Multipart framing adds a little on top of the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCSVUploadBytes+64<<10)

	fileHeader, err := c.FormFile(csvFormField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file is required in form field \"file\""})
		return
	}
	if fileHeader.Size > maxCSVUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "CSV file must not exceed 5 MB"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	detected, err := mimetype.DetectReader(file)
	if err != nil || !(detected.Is("text/csv") || detected.Is("text/plain")) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only CSV files are accepted"})
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	result, err := a.artists.ImportCSV(c.Request.Context(), file)
	if err != nil {
		respondError(c, err)
		return
	}

	imported, rejected, success = result.Imported, result.Failed, true
	c.JSON(http.StatusOK, result)
}
