package store

import (
	"encoding/json"
	"strings"

	"github.com/Gobd/fieldschema"
)

// NativeType maps a database's own type name onto the store types the type
// check understands. Names it does not recognize pass through lower-cased.
func NativeType(name string) fieldschema.StoreType {
	n := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(n, '('); i >= 0 {
		n = strings.TrimSpace(n[:i])
	}
	switch n {
	case "text", "varchar", "character varying", "char", "character", "bpchar",
		"string", "keyword", "citext", "nvarchar", "nchar", "clob", "tinytext",
		"mediumtext", "longtext", "name":
		return fieldschema.StoreText
	case "integer", "int", "int2", "int4", "int8", "smallint", "bigint",
		"tinyint", "mediumint", "serial", "bigserial", "smallserial",
		"long", "short", "byte", "int32", "int64":
		return fieldschema.StoreInteger
	}
	return fieldschema.StoreType(n)
}

// Param converts a decoded record value into a driver-friendly query
// parameter: json.Number becomes int64 or float64, everything else is
// returned unchanged.
func Param(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
