package paramxml

import (
	"testing"

	"github.com/qbic-pipelines/mqrund/internal/paramdoc"
)

func sampleDocument() *paramdoc.Document {
	return &paramdoc.Document{
		GlobalParams:   map[string]interface{}{"defaults": "default"},
		MSMSParams:     map[string]interface{}{"defaults": "default"},
		TopLevelParams: map[string]interface{}{"defaults": "default"},
		FastaFiles: paramdoc.FastaFiles{
			FileNames:   []string{"fasta1"},
			FirstSearch: []string{"fasta1"},
		},
		RawFiles: []paramdoc.RawFileGroup{
			{
				Files: []paramdoc.RawFileDescriptor{
					{Name: "input1", Experiment: "exp1", HasFraction: true, Fraction: 1},
					{Name: "input2", Experiment: "exp2", HasFraction: true, Fraction: 2},
				},
				Params: map[string]interface{}{"defaults": "default"},
			},
		},
	}
}

func samplePaths() (map[string]string, map[string]string) {
	return map[string]string{
			"input1": "C:\\data\\input1.raw",
			"input2": "C:\\data\\input2.raw",
		}, map[string]string{
			"fasta1": "C:\\data\\fasta1.fasta",
		}
}

func TestRoundTrip(t *testing.T) {
	doc := sampleDocument()
	filePaths, fastaPaths := samplePaths()

	xmlBytes, err := ToXML(doc, filePaths, fastaPaths, nil, nil)
	if err != nil {
		t.Fatalf("ToXML failed: %v", err)
	}

	doc2, extra, err := FromXML(xmlBytes)
	if err != nil {
		t.Fatalf("FromXML failed: %v", err)
	}

	if len(doc2.RawFiles) != 1 || len(doc2.RawFiles[0].Files) != 2 {
		t.Fatalf("unexpected rawFiles shape after round trip: %+v", doc2.RawFiles)
	}
	if doc2.RawFiles[0].Files[0].Name != "input1" || doc2.RawFiles[0].Files[1].Name != "input2" {
		t.Errorf("file grouping order not preserved: %+v", doc2.RawFiles[0].Files)
	}
	if extra.FilePaths["input1"] != filePaths["input1"] {
		t.Errorf("extra path data missing input1: %+v", extra.FilePaths)
	}

	xmlBytes2, err := ToXML(doc2, extra.FilePaths, extra.FastaPaths, extra.OutputDir, extra.TmpDir)
	if err != nil {
		t.Fatalf("second ToXML failed: %v", err)
	}
	if string(xmlBytes2) != string(xmlBytes) {
		t.Errorf("second emission does not equal the first:\n--- first ---\n%s\n--- second ---\n%s", xmlBytes, xmlBytes2)
	}
}

func TestMissingPathFailsRawFile(t *testing.T) {
	doc := sampleDocument()
	_, err := ToXML(doc, map[string]string{}, map[string]string{"fasta1": "f"}, nil, nil)
	if err == nil || !IsMissingPath(err) {
		t.Errorf("expected MissingPath error, got %v", err)
	}
}
