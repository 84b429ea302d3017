package paramxml

import (
	"fmt"
	"strings"

	"github.com/qbic-pipelines/mqrund/internal/schema"
)

// readObject walks an Object schema node against an XML element,
// producing the generic document shape (map[string]interface{},
// []string, [][]string, and scalar Go values). It is the Go analogue
// of mqparams.py's MQParamSet._simple_read_from_xml.
func readObject(base *elem, node *schema.Node, ignore map[string]bool) (map[string]interface{}, error) {
	if node.Kind != schema.KindObject {
		return nil, fmt.Errorf("paramxml: readObject called on non-object schema node")
	}
	data := make(map[string]interface{}, len(node.PropertyOrder))
	for _, key := range node.PropertyOrder {
		child := node.Properties[key]
		if ignore[child.ID] {
			continue
		}
		el := base.find(key)
		if el == nil {
			return nil, xmlShapef("missing element %q", key)
		}
		v, err := readValue(el, child, ignore)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		data[key] = v
	}
	return data, nil
}

func readValue(el *elem, node *schema.Node, ignore map[string]bool) (interface{}, error) {
	switch node.Kind {
	case schema.KindScalar:
		if !el.hasText {
			return decode(nil, node.Scalar)
		}
		text := el.text
		return decode(&text, node.Scalar)
	case schema.KindArray:
		return readArray(el, node)
	case schema.KindObject:
		return readObject(el, node, ignore)
	default:
		return nil, fmt.Errorf("paramxml: unknown schema kind for %s", node.ID)
	}
}

// readArray supports only list-of-string and list-of-list-of-string
// shapes, the latter joined on-disk with ';' per inner list.
func readArray(el *elem, node *schema.Node) (interface{}, error) {
	item := node.Items
	switch item.Kind {
	case schema.KindScalar:
		if item.Scalar != schema.ScalarString {
			return nil, schemaMismatchf("only list of string supported for %s", node.ID)
		}
		out := make([]string, 0, len(el.children))
		for _, c := range el.children {
			out = append(out, strings.TrimSpace(c.text))
		}
		return out, nil
	case schema.KindArray:
		inner := item.Items
		if inner == nil || inner.Kind != schema.KindScalar || inner.Scalar != schema.ScalarString {
			return nil, schemaMismatchf("only list of list of string supported for %s", node.ID)
		}
		out := make([][]string, 0, len(el.children))
		for _, c := range el.children {
			out = append(out, strings.Split(c.text, ";"))
		}
		return out, nil
	default:
		return nil, schemaMismatchf("unsupported array item shape for %s", node.ID)
	}
}

// writeObject is the inverse of readObject: the Go analogue of
// mqparams.py's MQParamSet._simple_write_into_xml. It iterates the
// schema's declared order rather than the data map's (Go map
// iteration isn't ordered), skipping fields absent from data — a
// document produced through Merge always carries every field its
// preset declares, so in practice nothing is skipped on a fully
// defaulted document.
func writeObject(base *elem, data map[string]interface{}, node *schema.Node, ignore map[string]bool) error {
	if node.Kind != schema.KindObject {
		return fmt.Errorf("paramxml: writeObject called on non-object schema node")
	}
	for key := range data {
		if key == "defaults" {
			continue
		}
		if _, ok := node.Properties[key]; !ok {
			return schemaMismatchf("unknown key: %s", key)
		}
	}
	for _, key := range node.PropertyOrder {
		value, present := data[key]
		if !present {
			continue
		}
		child := node.Properties[key]
		if ignore[child.ID] {
			continue
		}
		dataEl := base.append(newElem(key))
		if err := writeValue(dataEl, value, child); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func writeValue(el *elem, value interface{}, node *schema.Node) error {
	switch node.Kind {
	case schema.KindScalar:
		if value == nil {
			return nil
		}
		s, err := encode(value)
		if err != nil {
			return err
		}
		el.setText(s)
		return nil
	case schema.KindArray:
		return writeArray(el, value, node)
	case schema.KindObject:
		m, ok := value.(map[string]interface{})
		if !ok {
			return schemaMismatchf("expected object for %s, got %T", node.ID, value)
		}
		return writeObject(el, m, node, nil)
	default:
		return schemaMismatchf("unknown schema kind for %s", node.ID)
	}
}

func writeArray(el *elem, value interface{}, node *schema.Node) error {
	item := node.Items
	switch item.Kind {
	case schema.KindScalar:
		if item.Scalar != schema.ScalarString {
			return schemaMismatchf("only list of string supported for %s", node.ID)
		}
		list, ok := value.([]string)
		if !ok {
			return schemaMismatchf("expected []string for %s, got %T", node.ID, value)
		}
		for _, v := range list {
			s := el.append(newElem("string"))
			s.setText(v)
		}
		return nil
	case schema.KindArray:
		inner := item.Items
		if inner == nil || inner.Kind != schema.KindScalar || inner.Scalar != schema.ScalarString {
			return schemaMismatchf("only list of list of string supported for %s", node.ID)
		}
		list, ok := value.([][]string)
		if !ok {
			return schemaMismatchf("expected [][]string for %s, got %T", node.ID, value)
		}
		for _, innerList := range list {
			s := el.append(newElem("string"))
			s.setText(strings.Join(innerList, ";"))
		}
		return nil
	default:
		return schemaMismatchf("unsupported array item shape for %s", node.ID)
	}
}
