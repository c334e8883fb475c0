package vdom

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps the canonical description of a node to its structural hash.
type Hasher func(s string) uint64

// DJB2 is the default hasher: 32-bit xor-djb2 over the description, walked
// from the last byte to the first. Fast, collision-tolerant.
func DJB2(s string) uint64 {
	var result uint32 = 5381
	for i := len(s) - 1; i >= 0; i-- {
		result = (result * 33) ^ uint32(s[i])
	}
	return uint64(result)
}

// XXHash is the stronger 64-bit hasher.
func XXHash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// describe builds the "tag:props:children" description a node's hash is taken over.
func describe(tag string, props Props, children []*VNode) string {
	var b strings.Builder
	b.WriteString(tag)
	b.WriteByte(':')
	writeCanonical(&b, reflect.ValueOf(map[string]any(props)), make(map[uintptr]bool))
	b.WriteByte(':')
	for i, child := range children {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(childDigest(child))
	}
	return b.String()
}

// childDigest is the text of a text child and the decimal hash of any other node.
// Placeholders contribute nothing.
func childDigest(child *VNode) string {
	if child == nil {
		return ""
	}
	if child.Kind == KindText {
		return child.Text
	}
	return strconv.FormatUint(child.Hash, 10)
}

// componentTag identifies a component reference in a hash description.
func componentTag(ref ComponentRef) string {
	rv := reflect.ValueOf(ref)
	if rv.Kind() == reflect.Pointer {
		return fmt.Sprintf("%s@%x", ref.ComponentName(), rv.Pointer())
	}
	return fmt.Sprintf("%s#%T", ref.ComponentName(), ref)
}

// foreignTag identifies an external child value by type and identity.
func foreignTag(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("%T@%x", v, rv.Pointer())
	default:
		return fmt.Sprintf("%T:%v", v, v)
	}
}

// writeCanonical serializes v deterministically: map keys are sorted, functions
// are dropped, and a reference seen earlier on the current path is dropped
// instead of being followed again.
func writeCanonical(b *strings.Builder, v reflect.Value, seen map[uintptr]bool) bool {
	if !v.IsValid() {
		b.WriteString("null")
		return true
	}

	if v.CanInterface() {
		switch x := v.Interface().(type) {
		case *VNode:
			if x == nil {
				b.WriteString("null")
			} else {
				b.WriteString("#" + strconv.FormatUint(x.Hash, 10))
			}
			return true
		case ComponentRef:
			if v.Kind() != reflect.Interface {
				b.WriteString(strconv.Quote(componentTag(x)))
				return true
			}
		}
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			b.WriteString("null")
			return true
		}
		return writeCanonical(b, v.Elem(), seen)

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return false

	case reflect.Pointer:
		if v.IsNil() {
			b.WriteString("null")
			return true
		}
		ptr := v.Pointer()
		if seen[ptr] {
			return false
		}
		seen[ptr] = true
		defer delete(seen, ptr)
		return writeCanonical(b, v.Elem(), seen)

	case reflect.String:
		b.WriteString(strconv.Quote(v.String()))
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))

	case reflect.Map:
		if v.IsNil() {
			b.WriteString("{}")
			return true
		}
		ptr := v.Pointer()
		if seen[ptr] {
			return false
		}
		seen[ptr] = true
		defer delete(seen, ptr)

		keys := v.MapKeys()
		names := make([]string, len(keys))
		byName := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			names[i] = fmt.Sprint(k.Interface())
			byName[names[i]] = k
		}
		sort.Strings(names)

		b.WriteByte('{')
		first := true
		for _, name := range names {
			var member strings.Builder
			if !writeCanonical(&member, v.MapIndex(byName[name]), seen) {
				continue
			}
			if !first {
				b.WriteByte(',')
			}
			first = false
			b.WriteString(strconv.Quote(name))
			b.WriteByte(':')
			b.WriteString(member.String())
		}
		b.WriteByte('}')

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice {
			if v.IsNil() {
				b.WriteString("[]")
				return true
			}
			ptr := v.Pointer()
			if v.Len() > 0 && seen[ptr] {
				return false
			}
			if v.Len() > 0 {
				seen[ptr] = true
				defer delete(seen, ptr)
			}
		}
		b.WriteByte('[')
		for i := 0; i < v.Len(); i++ {
			if i > 0 {
				b.WriteByte(',')
			}
			if !writeCanonical(b, v.Index(i), seen) {
				b.WriteString("null")
			}
		}
		b.WriteByte(']')

	case reflect.Struct:
		t := v.Type()
		b.WriteByte('{')
		first := true
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			var member strings.Builder
			if !writeCanonical(&member, v.Field(i), seen) {
				continue
			}
			if !first {
				b.WriteByte(',')
			}
			first = false
			b.WriteString(strconv.Quote(field.Name))
			b.WriteByte(':')
			b.WriteString(member.String())
		}
		b.WriteByte('}')

	default:
		b.WriteString(strconv.Quote(fmt.Sprint(v.Interface())))
	}
	return true
}
