package validators

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ArtistCSVColumns are the header columns an import file must contain. bio is
// read when present.
var ArtistCSVColumns = []string{
	"name",
	"dob",
	"gender",
	"address",
	"first_release_year",
	"no_of_albums_released",
}

// artistRow mirrors one CSV record; empty cells mean NULL.
type artistRow struct {
	Name               string `validate:"required"`
	DOB                string `validate:"omitempty,datetime=2006-01-02"`
	Gender             string `validate:"omitempty,oneof=male female other"`
	Address            string
	FirstReleaseYear   string `validate:"omitempty,number"`
	NoOfAlbumsReleased string `validate:"omitempty,number"`
	Bio                string
}

var csvFieldNames = map[string]string{
	"Name":               "name",
	"DOB":                "dob",
	"Gender":             "gender",
	"FirstReleaseYear":   "first_release_year",
	"NoOfAlbumsReleased": "no_of_albums_released",
}

// ArtistCSVRow validates one import record keyed by header column.
func ArtistCSVRow(record map[string]string) (ArtistRequest, error) {
	row := artistRow{
		Name:               strings.TrimSpace(record["name"]),
		DOB:                strings.TrimSpace(record["dob"]),
		Gender:             strings.ToLower(strings.TrimSpace(record["gender"])),
		Address:            strings.TrimSpace(record["address"]),
		FirstReleaseYear:   strings.TrimSpace(record["first_release_year"]),
		NoOfAlbumsReleased: strings.TrimSpace(record["no_of_albums_released"]),
		Bio:                strings.TrimSpace(record["bio"]),
	}

	if err := validate.Struct(row); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return ArtistRequest{}, fail(fmt.Sprintf("invalid %s %q", csvFieldNames[fe.StructField()], fe.Value()))
		}
		return ArtistRequest{}, fail(err.Error())
	}

	body := Body{"name": row.Name}
	if row.DOB != "" {
		body["dob"] = row.DOB
	}
	if row.Gender != "" {
		body["gender"] = row.Gender
	}
	if row.Address != "" {
		body["address"] = row.Address
	}
	if row.Bio != "" {
		body["bio"] = row.Bio
	}
	for key, raw := range map[string]string{
		"first_release_year":    row.FirstReleaseYear,
		"no_of_albums_released": row.NoOfAlbumsReleased,
	} {
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return ArtistRequest{}, fail(fmt.Sprintf("invalid %s %q", key, raw))
		}
		body[key] = float64(n)
	}

	return CreateArtist(body)
}

// MissingCSVColumns returns the required columns absent from header.
func MissingCSVColumns(header []string) []string {
	seen := make(map[string]bool, len(header))
	for _, column := range header {
		seen[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")))] = true
	}
	var missing []string
	for _, column := range ArtistCSVColumns {
		if !seen[column] {
			missing = append(missing, column)
		}
	}
	return missing
}
