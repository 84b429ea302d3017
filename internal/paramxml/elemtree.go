// Package paramxml implements the bidirectional mapping between a
// structured ParameterDocument and the engine's XML parameter file.
//
// The original Python implementation built the XML with
// xml.etree.ElementTree, appending freshly created elements whose tag
// names came from schema keys rather than from a fixed set of Go
// struct field tags. Go's encoding/xml is built around static
// struct-to-tag mappings, so a literal translation doesn't fit; this
// file gives us the same freedom with a small element tree built
// directly on top of the token-level encoding/xml API.
package paramxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// elem is a minimal analogue of xml.etree.ElementTree.Element: a tag
// name, an ordered list of children, and optional text content. Real
// MaxQuant parameter files never mix text and child elements in the
// same node, so elem doesn't need to support that.
type elem struct {
	tag      string
	text     string
	hasText  bool
	attrs    map[string]string
	attrOrder []string
	children []*elem
}

func newElem(tag string) *elem {
	return &elem{tag: tag}
}

func (e *elem) setAttr(key, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	if _, exists := e.attrs[key]; !exists {
		e.attrOrder = append(e.attrOrder, key)
	}
	e.attrs[key] = value
}

func (e *elem) append(child *elem) *elem {
	e.children = append(e.children, child)
	return child
}

func (e *elem) setText(s string) {
	e.text = s
	e.hasText = true
}

// find returns the first direct child with the given tag, or nil.
func (e *elem) find(tag string) *elem {
	for _, c := range e.children {
		if c.tag == tag {
			return c
		}
	}
	return nil
}

// findAll returns every direct child with the given tag.
func (e *elem) findAll(tag string) []*elem {
	var out []*elem
	for _, c := range e.children {
		if c.tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// writeXML renders the tree rooted at e to an XML document, writing
// declaration + element tree, matching ElementTree.write().
func writeXML(root *elem) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := encodeElem(enc, root); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeElem(enc *xml.Encoder, e *elem) error {
	start := xml.StartElement{Name: xml.Name{Local: e.tag}}
	for _, key := range e.attrOrder {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: key}, Value: e.attrs[key]})
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if e.hasText {
		if err := enc.EncodeToken(xml.CharData([]byte(e.text))); err != nil {
			return err
		}
	}
	for _, c := range e.children {
		if err := encodeElem(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

// parseXML parses an XML document into an elem tree rooted at the
// document element.
func parseXML(data []byte) (*elem, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var stack []*elem
	var root *elem
	for {
		tok, err := dec.Token()
		if err != nil {
			if err.Error() == "EOF" {
				break
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := newElem(t.Name.Local)
			for _, a := range t.Attr {
				node.setAttr(a.Name.Local, a.Value)
			}
			if len(stack) > 0 {
				stack[len(stack)-1].append(node)
			} else {
				root = node
			}
			stack = append(stack, node)
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				text := string(t)
				if hasNonSpace(text) || top.hasText {
					top.setText(top.text + text)
				}
			}
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		}
	}
	if root == nil {
		return nil, fmt.Errorf("paramxml: empty XML document")
	}
	return root, nil
}

func hasNonSpace(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
