package services

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"rhythm-registry/internal/apperror"
	"rhythm-registry/internal/database"
	"rhythm-registry/internal/models"
	"rhythm-registry/internal/store"
	"rhythm-registry/internal/validators"
)

// ArtistCSVHeader is the first line of every export.
var ArtistCSVHeader = []string{
	"id",
	"name",
	"dob",
	"gender",
	"address",
	"first_release_year",
	"no_of_albums_released",
	"bio",
	"created_at",
}

// ImportResult summarizes a CSV import. Errors name the failing line.
type ImportResult struct {
	Success  bool     `json:"success"`
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

// ExportCSV writes every artist, ordered by id, as CSV. NULL columns are
// written as empty cells.
func (s *ArtistService) ExportCSV(ctx context.Context, w io.Writer) error {
	var artists []models.Artist
	err := database.WithConn(ctx, s.db, func(q database.Querier) error {
		var err error
		artists, err = store.ListAllArtists(ctx, q)
		return err
	})
	if err != nil {
		return apperror.Wrap(err, msgArtistNotFound, "")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ArtistCSVHeader); err != nil {
		return err
	}
	for _, artist := range artists {
		if err := cw.Write(artistRecord(artist)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func artistRecord(a models.Artist) []string {
	record := []string{
		strconv.Itoa(a.ID),
		a.Name,
		"",
		"",
		deref(a.Address),
		"",
		strconv.Itoa(a.NoOfAlbumsReleased),
		deref(a.Bio),
		a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.DOB != nil {
		record[2] = a.DOB.String()
	}
	if a.Gender != nil {
		record[3] = string(*a.Gender)
	}
	if a.FirstReleaseYear != nil {
		record[5] = strconv.Itoa(*a.FirstReleaseYear)
	}
	return record
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ImportCSV validates every record and inserts the valid ones as standalone
// artists in one transaction. Invalid records are reported, not inserted.
func (s *ArtistService) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return ImportResult{}, apperror.Validation("CSV file is empty")
	}
	if err != nil {
		return ImportResult{}, apperror.Validation("Invalid CSV file")
	}
	if missing := validators.MissingCSVColumns(header); len(missing) > 0 {
		return ImportResult{}, apperror.Validation("Missing required columns: " + strings.Join(missing, ", "))
	}

	columns := make([]string, len(header))
	for i, column := range header {
		columns[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")))
	}

	result := ImportResult{Errors: []string{}}
	var rows []store.NewArtist
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return ImportResult{}, apperror.Internal("Failed to read CSV file", err)
			}
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", parseErr.Line, parseErr.Err))
			continue
		}

		line, _ := reader.FieldPos(0)
		fields := make(map[string]string, len(columns))
		for i, column := range columns {
			if i < len(record) {
				fields[column] = record[i]
			}
		}

		req, err := validators.ArtistCSVRow(fields)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", line, publicMessage(err)))
			continue
		}
		rows = append(rows, newArtistRow(req))
	}

	if len(rows) > 0 {
		err = database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
			for _, row := range rows {
				if _, err := store.InsertArtist(ctx, tx, row); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return ImportResult{}, apperror.Internal("Failed to import artists", err)
		}
	}

	result.Imported = len(rows)
	result.Success = result.Failed == 0
	return result, nil
}

func publicMessage(err error) string {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
