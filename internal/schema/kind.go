package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Kind is the primitive kind a schema field declares.
type Kind int

const (
	KindUndefined Kind = iota
	KindObject
	KindBoolean
	KindNumber
	KindString
	KindSymbol
	KindFunction
)

// kindNames holds the schema spelling of every kind, in declaration order.
var kindNames = [...]string{
	KindUndefined: "undefined",
	KindObject:    "object",
	KindBoolean:   "boolean",
	KindNumber:    "number",
	KindString:    "string",
	KindSymbol:    "symbol",
	KindFunction:  "function",
}

// Kinds returns every recognized kind in declaration order.
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kindNames {
		kinds[i] = Kind(i)
	}
	return kinds
}

// KindNames returns the schema spelling of every recognized kind.
func KindNames() []string {
	names := make([]string, len(kindNames))
	copy(names, kindNames[:])
	return names
}

// ParseKind maps a schema spelling such as "number" to its Kind.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText renders the kind with its schema spelling.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Symbol is a unique, opaque value with an optional description.
// It classifies as KindSymbol.
type Symbol struct {
	Description string
}

type undefined struct{}

// Undefined is the sentinel for a value that exists as a key but carries nothing.
// A config key holding Undefined counts as absent.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// KindOf classifies a runtime value. nil classifies as an object, like a
// JSON null does.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindObject
	case undefined:
		return KindUndefined
	case Symbol, *Symbol:
		return KindSymbol
	case bool:
		return KindBoolean
	case string:
		return KindString
	case json.Number:
		return KindNumber
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool:
		return KindBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.String:
		return KindString
	case reflect.Func:
		return KindFunction
	default:
		return KindObject
	}
}
