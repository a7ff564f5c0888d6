package syncer

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/npsdata/bqfirestoresync/internal/docstore"
	"github.com/npsdata/bqfirestoresync/internal/warehouse"
)

// IdField is the column whose value, when present, becomes the document id.
const IdField = "id"

// DocumentID returns the id of the document row is written to. That is the row's id column rendered as
// a string if it has a non-null one, and doc-<index> otherwise, where index is the position of the row in
// the full result set. Ids of the second kind only stay the same between runs if the rows come back in
// the same order.
func DocumentID(row warehouse.Row, index int) string {
	if id, ok := row[IdField]; ok && id != nil {
		return formatId(id)
	}
	return fmt.Sprintf("doc-%d", index)
}

func formatId(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatFloat(v)
	case bool:
		return strconv.FormatBool(v)
	case []byte:
		return string(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

// BuildDocuments turns rows into documents. offset is the position of rows[0] in the full result set.
// Every row becomes the body of its document unchanged.
func BuildDocuments(rows []warehouse.Row, offset int) []docstore.Document {
	docs := make([]docstore.Document, len(rows))
	for i, row := range rows {
		docs[i] = docstore.Document{
			ID:   DocumentID(row, offset+i),
			Data: row,
		}
	}
	return docs
}

// formatFloat renders v the way JavaScript numbers print: plain decimals from 1e-6 up to 1e21 and
// exponent notation such as 1e+21 or 1.5e-7 outside that range.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}
	if abs := math.Abs(v); abs >= 1e21 || abs < 1e-6 {
		mantissa, exponent, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
		return mantissa + "e" + exponent[:1] + strings.TrimLeft(exponent[1:], "0")
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
