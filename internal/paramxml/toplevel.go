package paramxml

import "github.com/qbic-pipelines/mqrund/internal/paramdoc"

// topLevelParamsWriter is the one section written as attributes on
// the document root rather than as child elements (mqparams.py's
// TopLevelParams, which reads/writes root.attrib directly).
type topLevelParamsWriter struct {
	data map[string]interface{}
}

func (w *topLevelParamsWriter) merge(userData map[string]interface{}) {
	w.data = mergeSection(paramdoc.TopLevelParamsPresets, userData)
}

func (w *topLevelParamsWriter) readFromXML(root *elem) error {
	data := make(map[string]interface{}, len(topLevelParamsSchema.PropertyOrder))
	for _, key := range topLevelParamsSchema.PropertyOrder {
		raw, ok := root.attrs[key]
		if !ok {
			return xmlShapef("missing attribute %q on root element", key)
		}
		field := topLevelParamsSchema.Properties[key]
		v, err := decode(&raw, field.Scalar)
		if err != nil {
			return err
		}
		data[key] = v
	}
	w.data = data
	return nil
}

func (w *topLevelParamsWriter) writeIntoXML(root *elem) error {
	for _, key := range topLevelParamsSchema.PropertyOrder {
		value, ok := w.data[key]
		if !ok {
			continue
		}
		s, err := encode(value)
		if err != nil {
			return err
		}
		root.setAttr(key, s)
	}
	return nil
}
