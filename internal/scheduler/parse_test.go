package scheduler

import (
	"os"
	"path/filepath"
	"testing"
)

const yamlDoc = `
rawFiles:
  - files:
      - name: sample1
        experiment: exp1
        fraction: 2
        path: sample1.raw
    params:
      lcmsRunType: Standard
fastaFiles:
  fileNames:
    - db
  firstSearch: []
globalParams:
  defaults: default
topLevelParams:
  multiplicity: 1
`

const jsonDoc = `{
  "rawFiles": [
    {"files": [{"name": "sample1", "experiment": "exp1", "matching": 1, "path": "sample1.raw"}], "params": {}}
  ],
  "fastaFiles": {"fileNames": ["db.fasta"], "firstSearch": []},
  "globalParams": {"fixedModifications": ["Carbamidomethyl (C)"]},
  "topLevelParams": {"multiplicity": 1}
}`

func TestParseParameterFileYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := parseParameterFile(path)
	if err != nil {
		t.Fatalf("parseParameterFile: %v", err)
	}
	if len(doc.RawFiles) != 1 || len(doc.RawFiles[0].Files) != 1 {
		t.Fatalf("unexpected raw file groups: %+v", doc.RawFiles)
	}
	f := doc.RawFiles[0].Files[0]
	if f.Name != "sample1" || !f.HasFraction || f.Fraction != 2 {
		t.Errorf("unexpected descriptor: %+v", f)
	}
	if doc.FastaFiles.FileNames[0] != "db" {
		t.Errorf("unexpected fasta files: %+v", doc.FastaFiles)
	}
}

func TestParseParameterFileJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "params.json")
	if err := os.WriteFile(path, []byte(jsonDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := parseParameterFile(path)
	if err != nil {
		t.Fatalf("parseParameterFile: %v", err)
	}
	f := doc.RawFiles[0].Files[0]
	if f.Name != "sample1" || !f.HasMatching || f.Matching != 1 {
		t.Errorf("unexpected descriptor: %+v", f)
	}
}
