package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/marceelkacz03/lola-crm/internal/repository"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
)

// Service streams whole entities as CSV for the reporting exports.
type Service struct {
	repo repository.ExportRepository
}

func NewService(repo repository.ExportRepository) *Service {
	return &Service{repo: repo}
}

// WriteCSV writes the named entity to w with a header row of the sorted
// column names. Column order is stable across exports of the same entity.
func (s *Service) WriteCSV(ctx context.Context, w io.Writer, entity string) error {
	rows, err := s.repo.ListRows(ctx, entity)
	if err != nil {
		return apperrors.BadRequest(fmt.Sprintf("cannot export %s", entity), err)
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if len(rows) == 0 {
		return nil
	}

	columns := make([]string, 0, len(rows[0]))
	for column := range rows[0] {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	if err := writer.Write(columns); err != nil {
		return apperrors.Internal(err)
	}

	record := make([]string, len(columns))
	for _, row := range rows {
		for i, column := range columns {
			record[i] = formatValue(row[column])
		}
		if err := writer.Write(record); err != nil {
			return apperrors.Internal(err)
		}
	}
	return nil
}

func formatValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(value)
	case time.Time:
		return value.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", value)
	}
}
