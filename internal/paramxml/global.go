package paramxml

import "github.com/qbic-pipelines/mqrund/internal/paramdoc"

// globalParamsWriter is the simplest of the six section writers: it
// has no custom XML shape and no path data of its own, so it's a
// direct instance of the generic object walker over globalParamsSchema
// (mqparams.py's GlobalParams adds nothing beyond MQParamSet itself).
type globalParamsWriter struct {
	data map[string]interface{}
}

func (w *globalParamsWriter) merge(userData map[string]interface{}) {
	w.data = mergeSection(paramdoc.GlobalParamsPresets, userData)
}

func (w *globalParamsWriter) readFromXML(root *elem) error {
	el := root.find("globalParams")
	if el == nil {
		return xmlShapef("missing element %q", "globalParams")
	}
	data, err := readObject(el, globalParamsSchema, nil)
	if err != nil {
		return err
	}
	w.data = data
	return nil
}

func (w *globalParamsWriter) writeIntoXML(root *elem) error {
	el := root.append(newElem("globalParams"))
	return writeObject(el, w.data, globalParamsSchema, nil)
}

// mergeSection implements the per-section "defaults" overlay shared by
// globalParams, MSMSParams and topLevelParams: when the user document
// names a preset under "defaults", deep-copy that preset and overlay
// the remaining user keys; otherwise treat the user document (or an
// empty mapping, if none was supplied) as the whole of the data.
func mergeSection(presets map[string]map[string]interface{}, userData map[string]interface{}) map[string]interface{} {
	if userData == nil {
		return map[string]interface{}{}
	}
	if name, ok := userData["defaults"].(string); ok {
		return paramdoc.Merge(presets[name], userData)
	}
	return paramdoc.Merge(nil, userData)
}
