package paramxml

import "github.com/qbic-pipelines/mqrund/internal/paramdoc"

// fastaWriter owns the fastaFiles section (mqparams.py's FastaParams):
// two flat lists of logical names, fileNames and its firstSearch
// subset, each resolved to an absolute path via the fasta path map at
// emission time.
type fastaWriter struct {
	data  paramdoc.FastaFiles
	extra *paramdoc.ExtraPathData
}

func (w *fastaWriter) readFromXML(root *elem) error {
	filesEl := root.find("fastaFiles")
	firstSearchEl := root.find("fastaFilesFirstSearch")
	if filesEl == nil || firstSearchEl == nil {
		return xmlShapef("missing fastaFiles or fastaFilesFirstSearch element")
	}

	fastaPaths := map[string]string{}
	var fileNames []string
	for _, item := range filesEl.children {
		stem := windowsStem(item.text)
		fastaPaths[stem] = item.text
		fileNames = append(fileNames, stem)
	}

	var firstSearch []string
	for _, item := range firstSearchEl.children {
		stem := windowsStem(item.text)
		if existing, ok := fastaPaths[stem]; ok && existing != item.text {
			return schemaMismatchf("file name for fasta file not unique: %s", stem)
		}
		fastaPaths[stem] = item.text
		firstSearch = append(firstSearch, stem)
	}

	w.data = paramdoc.FastaFiles{FileNames: fileNames, FirstSearch: firstSearch}
	w.extra = &paramdoc.ExtraPathData{FastaPaths: fastaPaths}
	return nil
}

func (w *fastaWriter) writeIntoXML(root *elem, fastaPaths map[string]string) error {
	filesEl := root.append(newElem("fastaFiles"))
	for _, name := range w.data.FileNames {
		path, ok := fastaPaths[name]
		if !ok {
			return missingPathf("no path for fasta file %q", name)
		}
		item := filesEl.append(newElem("string"))
		item.setText(path)
	}

	firstSearchEl := root.append(newElem("fastaFilesFirstSearch"))
	for _, name := range w.data.FirstSearch {
		path, ok := fastaPaths[name]
		if !ok {
			return missingPathf("no path for fasta file %q", name)
		}
		item := firstSearchEl.append(newElem("string"))
		item.setText(path)
	}
	return nil
}
