package usecases

import (
	"bytes"
	"encoding/csv"
	"io"
	"sort"
	"strings"

	"millrace/internal/domain/transaction"
	"millrace/internal/shared/errors"
	"millrace/internal/shared/logger"
)

// requiredColumns must all appear in the upload header. Optional columns
// simply yield nil fields when absent.
var requiredColumns = []string{
	"transaction_date",
	"customer_id",
	"product",
	"quantity",
	"price",
}

// ParseUploadUseCase decodes an uploaded CSV payload into ordered raw rows.
type ParseUploadUseCase struct {
	logger logger.Interface
}

func NewParseUploadUseCase(logger logger.Interface) *ParseUploadUseCase {
	return &ParseUploadUseCase{logger: logger}
}

// Execute validates the header and returns the rows in input order. Header
// names are matched case-insensitively after trimming; cell values are
// trimmed of surrounding whitespace. Rows shorter than the header yield
// empty cells for the missing columns.
func (uc *ParseUploadUseCase) Execute(data []byte) ([]*transaction.RawTransaction, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.NewParseError("upload is empty")
		}
		return nil, errors.NewParseError("failed to decode upload", err.Error())
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		uc.logger.Warnw("upload rejected, header incomplete", "missing_columns", missing)
		return nil, errors.NewSchemaError(missing)
	}

	var rows []*transaction.RawTransaction
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParseError("failed to decode upload", err.Error())
		}

		cell := func(name string) string {
			i, ok := columns[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		rows = append(rows, &transaction.RawTransaction{
			ExternalID:    optionalCell(cell("transaction_id")),
			Date:          cell("transaction_date"),
			CustomerID:    cell("customer_id"),
			Product:       cell("product"),
			Category:      optionalCell(cell("category")),
			Quantity:      optionalCell(cell("quantity")),
			Price:         optionalCell(cell("price")),
			PaymentMethod: optionalCell(cell("payment_method")),
			City:          optionalCell(cell("city")),
		})
	}

	uc.logger.Infow("upload parsed", "rows", len(rows))
	return rows, nil
}

func optionalCell(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
