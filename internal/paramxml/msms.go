package paramxml

import (
	"github.com/qbic-pipelines/mqrund/internal/paramdoc"
	"github.com/qbic-pipelines/mqrund/internal/schema"
)

// msmsParamsWriter owns the MSMSParams section. Its schema has no
// plain scalar fields of its own; the entire payload lives in
// msmsParamsArray, an array of per-instrument-type parameter sets
// (mqparams.py's MSMSParams ignores '#msmsParamsArray' during the
// generic walk and handles the array by hand — there is no generic
// object walk here at all, so this writer never touches object.go).
//
// Each entry is written as an <msmsParams> element with its scalar
// fields (Name, InPpm, Deisotope, ...) as XML attributes and Tolerance
// / DeNovoTolerance as single numeric child elements, rather than the
// older {Value, Unit} two-child form.
type msmsParamsWriter struct {
	data map[string]interface{}
}

func (w *msmsParamsWriter) merge(userData map[string]interface{}) {
	w.data = mergeSection(paramdoc.MSMSParamsPresets, userData)
}

func (w *msmsParamsWriter) readFromXML(root *elem) error {
	arrayEl := root.find("msmsParamsArray")
	if arrayEl == nil {
		return xmlShapef("missing element %q", "msmsParamsArray")
	}
	var sets []map[string]interface{}
	for _, paramSetEl := range arrayEl.findAll("msmsParams") {
		set := make(map[string]interface{}, len(msmsParamSetFields)+2)
		for _, name := range msmsParamSetFields {
			raw, ok := paramSetEl.attrs[name]
			if !ok {
				return xmlShapef("missing attribute %q on msmsParams element", name)
			}
			scalar := msmsAttrScalarType(name)
			v, err := decode(&raw, scalar)
			if err != nil {
				return err
			}
			set[name] = v
		}
		for _, name := range []string{"Tolerance", "DeNovoTolerance"} {
			tolEl := paramSetEl.find(name)
			if tolEl == nil {
				return xmlShapef("missing element %q on msmsParams entry", name)
			}
			if !tolEl.hasText {
				return xmlShapef("empty tolerance element %q", name)
			}
			text := tolEl.text
			v, err := decode(&text, schema.ScalarNumber)
			if err != nil {
				return err
			}
			set[name] = v
		}
		sets = append(sets, set)
	}
	w.data = map[string]interface{}{"msmsParamsArray": sets}
	return nil
}

func (w *msmsParamsWriter) writeIntoXML(root *elem) error {
	arrayEl := root.append(newElem("msmsParamsArray"))
	sets, _ := w.data["msmsParamsArray"].([]map[string]interface{})
	for _, set := range sets {
		paramSetEl := arrayEl.append(newElem("msmsParams"))
		for _, name := range msmsParamSetFields {
			value, ok := set[name]
			if !ok {
				continue
			}
			s, err := encode(value)
			if err != nil {
				return err
			}
			paramSetEl.setAttr(name, s)
		}
		for _, name := range []string{"Tolerance", "DeNovoTolerance"} {
			value, ok := set[name]
			if !ok {
				continue
			}
			s, err := encode(value)
			if err != nil {
				return err
			}
			tolEl := paramSetEl.append(newElem(name))
			tolEl.setText(s)
		}
	}
	return nil
}
