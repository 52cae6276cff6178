package shopdb

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{
	"index", "category", "type", "variant", "validity", "flag", "set_item", "name",
}

// WriteCSV exports the understood record fields for spreadsheet use.
// The export is one way; compilation always starts from the binary.
func WriteCSV(db *DB, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, rec := range db.Records {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatUint(uint64(rec.Category), 10),
			strconv.FormatUint(uint64(rec.TypeID), 10),
			strconv.FormatInt(int64(rec.Variant), 10),
			strconv.FormatInt(int64(rec.Validity), 10),
			strconv.FormatUint(uint64(rec.Flag), 10),
			strconv.FormatInt(int64(rec.SetItem), 10),
			rec.Name,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
