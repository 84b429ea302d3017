package paramxml

import (
	"strconv"

	"github.com/qbic-pipelines/mqrund/internal/paramdoc"
	"github.com/qbic-pipelines/mqrund/internal/schema"
)

// rawFilesWriter owns the rawFiles section: the structured document
// groups input files by parameter group, but the XML shape flattens
// that into parallel per-file lists plus a separate per-group list
// (mqparams.py's RawFileParams — generalized here to genuinely group
// files rather than emitting one singleton group per file).
type rawFilesWriter struct {
	groups []paramdoc.RawFileGroup
	extra  *paramdoc.ExtraPathData
}

func (w *rawFilesWriter) readFromXML(root *elem) error {
	experiments := root.find("experiments")
	filePaths := root.find("filePaths")
	fractions := root.find("fractions")
	matching := root.find("matching")
	groupInds := root.find("paramGroupIndices")
	paramGroups := root.find("parameterGroups")
	if experiments == nil || filePaths == nil || fractions == nil || groupInds == nil || paramGroups == nil {
		return xmlShapef("rawFiles section missing one of its parallel arrays")
	}
	n := len(filePaths.children)
	if len(experiments.children) != n || len(fractions.children) != n || len(groupInds.children) != n {
		return xmlShapef("rawFiles parallel arrays have mismatched lengths")
	}

	descs := make([]paramdoc.RawFileDescriptor, n)
	groupIdx := make([]int, n)
	filePathCache := map[string]string{}
	for i := 0; i < n; i++ {
		var d paramdoc.RawFileDescriptor
		if exp := experiments.children[i]; exp.hasText && exp.text != "" {
			d.Experiment = exp.text
		}
		if p := filePaths.children[i]; p.hasText && p.text != "" {
			d.Path = p.text
			d.Name = windowsStem(p.text)
			filePathCache[d.Name] = p.text
		}
		if f := fractions.children[i]; f.hasText && f.text != "" {
			v, err := decode(&f.text, schema.ScalarInteger)
			if err != nil {
				return err
			}
			d.Fraction = v.(int)
			d.HasFraction = true
		}
		if matching != nil && i < len(matching.children) {
			if m := matching.children[i]; m.hasText && m.text != "" {
				v, err := decode(&m.text, schema.ScalarInteger)
				if err != nil {
					return err
				}
				d.Matching = v.(int)
				d.HasMatching = true
			}
		}
		idxEl := groupInds.children[i]
		if !idxEl.hasText {
			return xmlShapef("missing paramGroupIndices entry at position %d", i)
		}
		idx, err := strconv.Atoi(idxEl.text)
		if err != nil {
			return schemaMismatchf("paramGroupIndices entry %q is not an integer", idxEl.text)
		}
		descs[i] = d
		groupIdx[i] = idx
	}

	var order []int
	seen := map[int]bool{}
	byIdx := map[int][]paramdoc.RawFileDescriptor{}
	for i, idx := range groupIdx {
		if !seen[idx] {
			seen[idx] = true
			order = append(order, idx)
		}
		byIdx[idx] = append(byIdx[idx], descs[i])
	}

	groups := make([]paramdoc.RawFileGroup, 0, len(order))
	for _, idx := range order {
		if idx < 0 || idx >= len(paramGroups.children) {
			return xmlShapef("paramGroupIndices entry %d has no matching parameterGroups entry", idx)
		}
		params, err := readObject(paramGroups.children[idx], rawFileParamsSchema, nil)
		if err != nil {
			return err
		}
		groups = append(groups, paramdoc.RawFileGroup{Files: byIdx[idx], Params: params})
	}

	w.groups = groups
	w.extra = &paramdoc.ExtraPathData{FilePaths: filePathCache}
	return nil
}

func (w *rawFilesWriter) writeIntoXML(root *elem, filePaths map[string]string) error {
	experiments := root.append(newElem("experiments"))
	filePathsEl := root.append(newElem("filePaths"))
	fractions := root.append(newElem("fractions"))
	matching := root.append(newElem("matching"))
	groupInds := root.append(newElem("paramGroupIndices"))
	paramGroups := root.append(newElem("parameterGroups"))

	for gi, group := range w.groups {
		for _, file := range group.Files {
			exp := experiments.append(newElem("string"))
			if file.Experiment != "" {
				exp.setText(file.Experiment)
			}

			path, err := resolveFilePath(file.Name, file.Path, filePaths)
			if err != nil {
				return err
			}
			p := filePathsEl.append(newElem("string"))
			p.setText(path)

			frac := fractions.append(newElem("short"))
			if file.HasFraction {
				s, err := encode(file.Fraction)
				if err != nil {
					return err
				}
				frac.setText(s)
			}

			match := matching.append(newElem("unsignedByte"))
			if file.HasMatching {
				s, err := encode(file.Matching)
				if err != nil {
					return err
				}
				match.setText(s)
			}

			idxEl := groupInds.append(newElem("int"))
			s, err := encode(gi)
			if err != nil {
				return err
			}
			idxEl.setText(s)
		}

		groupEl := paramGroups.append(newElem("parameterGroup"))
		if err := writeObject(groupEl, group.Params, rawFileParamsSchema, nil); err != nil {
			return err
		}
	}
	return nil
}

// resolveFilePath substitutes an absolute path for a raw file's
// logical name: the path map is checked first, falling back to the
// descriptor's explicit path, failing with MissingPath when neither
// is available.
func resolveFilePath(name, explicitPath string, filePaths map[string]string) (string, error) {
	if p, ok := filePaths[name]; ok {
		return p, nil
	}
	if explicitPath != "" {
		return explicitPath, nil
	}
	return "", missingPathf("no path for raw file %q", name)
}
