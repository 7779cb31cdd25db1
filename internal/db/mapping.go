package db

import (
	"database/sql"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/llehouerou/synaudio/internal/dberr"
	"github.com/llehouerou/synaudio/internal/schema"
)

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

// scanRecord reads the current row into rec, which must point to the
// descriptor's type. Columns arrive in descriptor order.
func scanRecord(rows *sql.Rows, d *schema.Descriptor, rec any) error {
	raw := make([]any, len(d.Fields))
	dest := make([]any, len(d.Fields))
	for i := range raw {
		dest[i] = &raw[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return err
	}

	v := reflect.ValueOf(rec).Elem()
	for i, f := range d.Fields {
		if err := assign(v.FieldByIndex(f.Index()), raw[i]); err != nil {
			return dberr.SchemaMapping("scan", "%s.%s (column %s): %v", d.Type, f.Name, f.Column, err)
		}
	}
	return nil
}

// assign stores a driver value into a struct field. NULL leaves the zero value.
func assign(field reflect.Value, src any) error {
	if src == nil {
		field.SetZero()
		return nil
	}

	if field.Type() == reflect.TypeFor[time.Time]() {
		switch s := src.(type) {
		case time.Time:
			field.Set(reflect.ValueOf(s))
			return nil
		case int64:
			field.Set(reflect.ValueOf(time.Unix(s, 0)))
			return nil
		}
		return fmt.Errorf("cannot assign %T to time.Time", src)
	}

	switch field.Kind() {
	case reflect.String:
		switch s := src.(type) {
		case string:
			field.SetString(s)
		case []byte:
			field.SetString(string(s))
		case int64:
			field.SetString(strconv.FormatInt(s, 10))
		case float64:
			field.SetString(strconv.FormatFloat(s, 'g', -1, 64))
		default:
			return fmt.Errorf("cannot assign %T to string", src)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt64(src)
		if err != nil {
			return err
		}
		if field.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, field.Type())
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := toInt64(src)
		if err != nil {
			return err
		}
		if n < 0 || field.OverflowUint(uint64(n)) {
			return fmt.Errorf("value %d overflows %s", n, field.Type())
		}
		field.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		switch s := src.(type) {
		case float64:
			field.SetFloat(s)
		case int64:
			field.SetFloat(float64(s))
		default:
			return fmt.Errorf("cannot assign %T to %s", src, field.Type())
		}
	case reflect.Bool:
		switch s := src.(type) {
		case bool:
			field.SetBool(s)
		case int64:
			field.SetBool(s != 0)
		default:
			return fmt.Errorf("cannot assign %T to bool", src)
		}
	case reflect.Slice:
		b, ok := src.([]byte)
		if !ok || field.Type().Elem().Kind() != reflect.Uint8 {
			return fmt.Errorf("cannot assign %T to %s", src, field.Type())
		}
		field.SetBytes(append([]byte(nil), b...))
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}

func toInt64(src any) (int64, error) {
	switch s := src.(type) {
	case int64:
		return s, nil
	case float64:
		if s != math.Trunc(s) || s < math.MinInt64 || s >= math.MaxInt64 {
			return 0, fmt.Errorf("cannot assign non-integral %v to integer", s)
		}
		return int64(s), nil
	case bool:
		if s {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseInt(s, 10, 64)
	case []byte:
		return strconv.ParseInt(string(s), 10, 64)
	}
	return 0, fmt.Errorf("cannot assign %T to integer", src)
}
