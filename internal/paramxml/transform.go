package paramxml

import "github.com/qbic-pipelines/mqrund/internal/paramdoc"

// ToXML converts a ParameterDocument into the engine's XML parameter
// file, substituting absolute paths for the logical names used in
// doc.RawFiles and doc.FastaFiles. It is a pure function: no file I/O
// happens here, matching mqparams.py's data_to_xml.
func ToXML(doc *paramdoc.Document, filePaths, fastaPaths map[string]string, outputDir, tmpDir *string) ([]byte, error) {
	root := newElem("MaxQuantParams")

	msms := &msmsParamsWriter{}
	msms.merge(doc.MSMSParams)
	if err := msms.writeIntoXML(root); err != nil {
		return nil, err
	}

	global := &globalParamsWriter{}
	global.merge(doc.GlobalParams)
	if err := global.writeIntoXML(root); err != nil {
		return nil, err
	}

	expandedGroups := make([]paramdoc.RawFileGroup, len(doc.RawFiles))
	for i, group := range doc.RawFiles {
		expandedGroups[i] = paramdoc.RawFileGroup{
			Files:  group.Files,
			Params: mergeSection(paramdoc.RawFileParamsPresets, group.Params),
		}
	}
	raw := &rawFilesWriter{groups: expandedGroups}
	if err := raw.writeIntoXML(root, filePaths); err != nil {
		return nil, err
	}

	out := &outputWriter{}
	if err := out.writeIntoXML(root, paramdoc.NewExtraPathData(nil, nil, outputDir, tmpDir)); err != nil {
		return nil, err
	}

	fasta := &fastaWriter{data: doc.FastaFiles}
	if err := fasta.writeIntoXML(root, fastaPaths); err != nil {
		return nil, err
	}

	top := &topLevelParamsWriter{}
	top.merge(doc.TopLevelParams)
	if err := top.writeIntoXML(root); err != nil {
		return nil, err
	}

	return writeXML(root)
}

// FromXML reconstructs a ParameterDocument and a best-effort
// ExtraPathData from an engine XML parameter file, mirroring
// mqparams.py's xml_to_data.
func FromXML(data []byte) (*paramdoc.Document, paramdoc.ExtraPathData, error) {
	extra := paramdoc.ExtraPathData{FilePaths: map[string]string{}, FastaPaths: map[string]string{}}

	root, err := parseXML(data)
	if err != nil {
		return nil, extra, err
	}

	msms := &msmsParamsWriter{}
	if err := msms.readFromXML(root); err != nil {
		return nil, extra, err
	}

	global := &globalParamsWriter{}
	if err := global.readFromXML(root); err != nil {
		return nil, extra, err
	}

	raw := &rawFilesWriter{}
	if err := raw.readFromXML(root); err != nil {
		return nil, extra, err
	}
	if raw.extra != nil {
		for k, v := range raw.extra.FilePaths {
			extra.FilePaths[k] = v
		}
	}

	out := &outputWriter{}
	if err := out.readFromXML(root); err != nil {
		return nil, extra, err
	}
	extra.OutputDir = out.outputDir
	extra.TmpDir = out.tmpDir

	fasta := &fastaWriter{}
	if err := fasta.readFromXML(root); err != nil {
		return nil, extra, err
	}
	if fasta.extra != nil {
		for k, v := range fasta.extra.FastaPaths {
			extra.FastaPaths[k] = v
		}
	}

	top := &topLevelParamsWriter{}
	if err := top.readFromXML(root); err != nil {
		return nil, extra, err
	}

	doc := &paramdoc.Document{
		RawFiles:       raw.groups,
		FastaFiles:     fasta.data,
		GlobalParams:   global.data,
		MSMSParams:     msms.data,
		TopLevelParams: top.data,
	}
	return doc, extra, nil
}
