package importer

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hearthledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

// Parse reads an import file with a user-supplied column mapping.
//
// Files that are not valid UTF-8 are decoded as Windows-1252 since that
// is what most bank exports use. The account is not part of the file,
// all returned rows have a nil AccountID.
func Parse(f io.Reader, mapping ColumnMapping) ([]Row, error) {
	if err := mapping.validate(); err != nil {
		return []Row{}, err
	}

	raw, err := io.ReadAll(f)
	if err != nil {
		return []Row{}, fmt.Errorf("could not read the import file: %w", err)
	}

	if !utf8.Valid(raw) {
		raw, err = charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return []Row{}, fmt.Errorf("could not decode the import file: %w", err)
		}
	}

	reader := csv.NewReader(bytes.NewReader(raw))

	// Bank exports pad ragged lines, do not enforce a field count
	reader.FieldsPerRecord = -1

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true

	dateFormat := mapping.DateFormat
	if dateFormat == "" {
		dateFormat = "2006-01-02"
	}

	var rows []Row

	if mapping.HasHeader {
		_, err := reader.Read()
		if err == io.EOF {
			return []Row{}, nil
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not read line in CSV: %w", err))
		}

		date, err := time.Parse(dateFormat, field(record, mapping.Date))
		if err != nil {
			return csvReadError(reader, fmt.Errorf("could not parse time: %w", err))
		}

		amount, err := mapping.amount(record)
		if err != nil {
			return csvReadError(reader, err)
		}

		rows = append(rows, Row{
			Date:       types.DateOf(date),
			Amount:     amount,
			Payee:      strings.TrimSpace(field(record, mapping.Payee)),
			Note:       strings.TrimSpace(field(record, mapping.Note)),
			ImportHash: sha256String(strings.Join(record, ",")),
		})
	}

	return rows, nil
}

// amount reads the signed amount from a record, either from the single
// amount column or from the outflow and inflow pair.
func (m ColumnMapping) amount(record []string) (decimal.Decimal, error) {
	if m.Amount >= 0 {
		amount, err := decimal.NewFromString(normalizeAmount(field(record, m.Amount)))
		if err != nil {
			return decimal.Zero, errors.New("the amount could not be parsed to a decimal")
		}
		if amount.IsZero() {
			return decimal.Zero, errors.New("the amount for a transaction must not be 0")
		}

		return amount, nil
	}

	outflow := normalizeAmount(field(record, m.Outflow))
	inflow := normalizeAmount(field(record, m.Inflow))

	if outflow != "" && inflow != "" {
		return decimal.Zero, errors.New("both outflow and inflow are set for the transaction")
	} else if outflow == "" && inflow == "" {
		return decimal.Zero, errors.New("no amount is set for the transaction")
	} else if outflow != "" {
		amount, err := decimal.NewFromString(outflow)
		if err != nil {
			return decimal.Zero, errors.New("the outflow could not be parsed to a decimal")
		}
		if amount.IsZero() {
			return decimal.Zero, errors.New("the amount for a transaction must not be 0")
		}

		return amount.Abs().Neg(), nil
	}

	amount, err := decimal.NewFromString(inflow)
	if err != nil {
		return decimal.Zero, errors.New("the inflow could not be parsed to a decimal")
	}
	if amount.IsZero() {
		return decimal.Zero, errors.New("the amount for a transaction must not be 0")
	}

	return amount.Abs(), nil
}

func (m ColumnMapping) validate() error {
	if m.Date < 0 {
		return ErrColumnMapping
	}

	hasAmount := m.Amount >= 0
	hasSplit := m.Outflow >= 0 && m.Inflow >= 0

	if hasAmount == hasSplit {
		return ErrColumnMapping
	}

	return nil
}

// field reads a column from a record, tolerating absent columns and
// short records.
func field(record []string, index int) string {
	if index < 0 || index >= len(record) {
		return ""
	}

	return record[index]
}

// normalizeAmount strips currency symbols and thousands separators so
// that both "1.234,56 €" and "1,234.56" parse as 1234.56.
//
// Whichever of "."/"," occurs last is the decimal separator, the other
// one groups thousands.
func normalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "€")
	s = strings.TrimSuffix(s, "$")
	s = strings.TrimSpace(s)

	if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	return s
}

// sha256String calculates the SHA256 hash of a given string and returns its string representation.
func sha256String(input string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(input)))
}

// csvReadError returns the an error with the format string, including the line of the input
// the error occurred in in the message.
func csvReadError(r *csv.Reader, err error) ([]Row, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(1)

	return []Row{}, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
