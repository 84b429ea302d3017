package paramxml

import "github.com/qbic-pipelines/mqrund/internal/paramdoc"

// outputWriter owns the output-directory pair (mqparams.py's
// OutputParams): two fixed single-element wrappers holding the
// temporary directory and the fixed combined (output) directory. Both
// elements are always written; a null directory leaves its element
// empty rather than omitting it, and readFromXML requires both
// elements to be present.
type outputWriter struct {
	outputDir *string
	tmpDir    *string
}

func (w *outputWriter) readFromXML(root *elem) error {
	tempEl := root.find("tempFolder")
	outEl := root.find("fixedCombinedFolder")
	if tempEl == nil || outEl == nil {
		return xmlShapef("missing tempFolder or fixedCombinedFolder element")
	}
	if tempEl.hasText && tempEl.text != "" {
		v := tempEl.text
		w.tmpDir = &v
	}
	if outEl.hasText && outEl.text != "" {
		v := outEl.text
		w.outputDir = &v
	}
	return nil
}

func (w *outputWriter) writeIntoXML(root *elem, extra paramdoc.ExtraPathData) error {
	tempEl := root.append(newElem("tempFolder"))
	if extra.TmpDir != nil {
		tempEl.setText(*extra.TmpDir)
	}

	outEl := root.append(newElem("fixedCombinedFolder"))
	if extra.OutputDir != nil {
		outEl.setText(*extra.OutputDir)
	}
	return nil
}
