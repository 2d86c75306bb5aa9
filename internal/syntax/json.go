package syntax

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/elliotchance/orderedmap/v2"
)

type object = orderedmap.OrderedMap[string, interface{}]

// FprintJSON writes a JSON representation of the AST to w. Every node is an
// object whose keys are "tag", "line" and then its attributes in
// declaration order, with the type suffix dropped.
func FprintJSON(w io.Writer, node Node) error {
	var raw bytes.Buffer
	if err := encodeValue(&raw, toJSON(node)); err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}
	m := orderedmap.NewOrderedMap[string, interface{}]()
	m.Set("tag", node.Tag())
	m.Set("line", node.Line())
	for _, a := range node.Attrs() {
		switch {
		case a.IsNode():
			c, _ := a.Value.(Node)
			m.Set(a.Key(), toJSON(c))
		case a.IsList():
			list, _ := a.Value.([]Node)
			elems := make([]interface{}, len(list))
			for i, c := range list {
				elems[i] = toJSON(c)
			}
			m.Set(a.Key(), elems)
		default:
			m.Set(a.Key(), a.Value)
		}
	}
	return m
}

// encodeValue writes v as compact JSON, keeping the insertion order of
// ordered maps.
func encodeValue(buf *bytes.Buffer, v interface{}) error {
	switch v := v.(type) {
	case *object:
		buf.WriteByte('{')
		for el := v.Front(); el != nil; el = el.Next() {
			if el != v.Front() {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(el.Key)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encodeValue(buf, el.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case []interface{}:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
	}
	return nil
}
