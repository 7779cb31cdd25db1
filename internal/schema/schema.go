// Package schema maps record types to their physical table and columns.
//
// Record types are plain structs. Each exported field maps to one column;
// the column name comes from a `db` tag or, when untagged, from the same
// naming strategy gorm uses (AlbumArtist -> album_artist). The table name
// comes from a TableName method or the pluralized snake_case type name.
//
//	type Song struct {
//		ID      int64  `db:"id,identity"`
//		Artist  string
//		AlbumID int64  `db:"album_id"`
//		cached  string // unexported, ignored
//		Scratch string `db:"-"`
//	}
//
// Descriptors are derived once per type and cached for the life of the
// process. Types are normally registered from an init function with
// Register, which panics on an invalid mapping.
package schema

import (
	"reflect"
	"slices"
	"strings"

	gormschema "gorm.io/gorm/schema"

	"github.com/llehouerou/synaudio/internal/dberr"
)

const tagName = "db"

// Tabler lets a record type choose its table name.
type Tabler interface {
	TableName() string
}

var naming = gormschema.NamingStrategy{}

// Field is one mapped struct field.
type Field struct {
	Name     string
	Column   string
	Identity bool
	index    []int
}

// Index returns the field index path for reflect.Value.FieldByIndex.
func (f Field) Index() []int {
	return f.index
}

// Descriptor is the table/column mapping of a record type.
type Descriptor struct {
	Type   reflect.Type
	Table  string
	Fields []Field

	byName map[string]int
}

// Column returns the physical column for a logical field name.
func (d *Descriptor) Column(name string) (string, error) {
	i, ok := d.byName[name]
	if !ok {
		return "", dberr.SchemaMapping("column lookup", "%s has no mapped field %q", d.Type, name)
	}
	return d.Fields[i].Column, nil
}

// MustColumn is like Column but panics on an unknown field.
func (d *Descriptor) MustColumn(name string) string {
	c, err := d.Column(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Columns resolves several field names at once, failing on the first miss.
func (d *Descriptor) Columns(names ...string) ([]string, error) {
	cols := make([]string, len(names))
	for i, n := range names {
		c, err := d.Column(n)
		if err != nil {
			return nil, err
		}
		cols[i] = c
	}
	return cols, nil
}

// ColumnList returns all columns in field declaration order.
func (d *Descriptor) ColumnList() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Column
	}
	return cols
}

// Identity returns the identity field, if the type declares one.
func (d *Descriptor) Identity() (Field, bool) {
	for _, f := range d.Fields {
		if f.Identity {
			return f, true
		}
	}
	return Field{}, false
}

// Equal reports whether two descriptors map the same fields to the same
// columns of the same table.
func (d *Descriptor) Equal(o *Descriptor) bool {
	if d == o {
		return true
	}
	if d == nil || o == nil {
		return false
	}
	if d.Type != o.Type || d.Table != o.Table || len(d.Fields) != len(o.Fields) {
		return false
	}
	for i := range d.Fields {
		a, b := d.Fields[i], o.Fields[i]
		if a.Name != b.Name || a.Column != b.Column || a.Identity != b.Identity || !slices.Equal(a.index, b.index) {
			return false
		}
	}
	return true
}

// derive builds a descriptor for t without consulting the cache.
func derive(t reflect.Type) (*Descriptor, error) {
	if t == nil {
		return nil, dberr.SchemaMapping("derive", "nil type")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, dberr.SchemaMapping("derive", "%s is not a struct", t)
	}

	d := &Descriptor{
		Type:   t,
		Table:  tableName(t),
		byName: make(map[string]int),
	}
	seen := make(map[string]string)
	identities := 0

	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Anonymous {
			continue
		}
		tag := sf.Tag.Get(tagName)
		if tag == "-" {
			continue
		}
		col, opts, _ := strings.Cut(tag, ",")
		if col == "" {
			col = naming.ColumnName("", sf.Name)
		}
		if other, dup := seen[col]; dup {
			return nil, dberr.SchemaMapping("derive", "%s: fields %s and %s both map to column %q", t, other, sf.Name, col)
		}
		seen[col] = sf.Name

		f := Field{
			Name:     sf.Name,
			Column:   col,
			Identity: opts == "identity",
			index:    sf.Index,
		}
		if f.Identity {
			identities++
		}
		d.byName[f.Name] = len(d.Fields)
		d.Fields = append(d.Fields, f)
	}

	if len(d.Fields) == 0 {
		return nil, dberr.SchemaMapping("derive", "%s has no mappable fields", t)
	}
	if identities > 1 {
		return nil, dberr.SchemaMapping("derive", "%s declares %d identity fields", t, identities)
	}
	return d, nil
}

func tableName(t reflect.Type) string {
	if tb, ok := reflect.New(t).Interface().(Tabler); ok {
		return tb.TableName()
	}
	return naming.TableName(t.Name())
}
