package warehouse

import (
	"math/big"
	"strings"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
)

// convertRow turns a row read from BigQuery into one the document store can encode. Types the store
// has no representation for (decimals, civil dates and times, intervals) become their canonical strings,
// nested records become nested rows and everything else is kept as is.
func convertRow(values map[string]bigquery.Value, schema bigquery.Schema) Row {
	row := make(Row, len(values))
	for _, field := range schema {
		v, ok := values[field.Name]
		if !ok {
			continue
		}
		row[field.Name] = convertValue(v, field)
	}
	// anything the schema doesn't describe is copied across untouched
	for name, v := range values {
		if _, ok := row[name]; !ok {
			row[name] = v
		}
	}
	return row
}

func convertValue(v bigquery.Value, field *bigquery.FieldSchema) any {
	if v == nil {
		return nil
	}
	if field.Repeated {
		if vs, ok := v.([]bigquery.Value); ok {
			out := make([]any, len(vs))
			for i, e := range vs {
				out[i] = convertScalar(e, field)
			}
			return out
		}
	}
	return convertScalar(v, field)
}

func convertScalar(v bigquery.Value, field *bigquery.FieldSchema) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]bigquery.Value:
		return convertRow(t, field.Schema)
	case *big.Rat:
		if field.Type == bigquery.BigNumericFieldType {
			return trimDecimal(bigquery.BigNumericString(t))
		}
		return trimDecimal(bigquery.NumericString(t))
	case civil.Date:
		return t.String()
	case civil.Time:
		return bigquery.CivilTimeString(t)
	case civil.DateTime:
		return bigquery.CivilDateTimeString(t)
	case *bigquery.IntervalValue:
		return t.String()
	default:
		return v
	}
}

// trimDecimal drops the zero padding of a fixed-scale decimal, so "12.500000000" becomes "12.5" and
// "3.000000000" becomes "3".
func trimDecimal(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
