package scheduler

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/qbic-pipelines/mqrund/internal/paramdoc"
	"gopkg.in/yaml.v3"
)

// fileDocument is the on-disk shape of a parameter file's recognized
// top-level keys, decoded from either YAML or JSON into the same Go
// structure before being handed to paramxml.ToXML.
type fileDocument struct {
	RawFiles       []rawFileGroupDoc      `yaml:"rawFiles" json:"rawFiles"`
	FastaFiles     fastaFilesDoc          `yaml:"fastaFiles" json:"fastaFiles"`
	GlobalParams   map[string]interface{} `yaml:"globalParams" json:"globalParams"`
	MSMSParams     map[string]interface{} `yaml:"MSMSParams" json:"MSMSParams"`
	TopLevelParams map[string]interface{} `yaml:"topLevelParams" json:"topLevelParams"`
}

type rawFileGroupDoc struct {
	Files  []rawFileDescriptorDoc `yaml:"files" json:"files"`
	Params map[string]interface{} `yaml:"params" json:"params"`
}

type rawFileDescriptorDoc struct {
	Name       string `yaml:"name" json:"name"`
	Experiment string `yaml:"experiment" json:"experiment"`
	Fraction   *int   `yaml:"fraction" json:"fraction"`
	Matching   *int   `yaml:"matching" json:"matching"`
	Path       string `yaml:"path" json:"path"`
}

type fastaFilesDoc struct {
	FileNames   []string `yaml:"fileNames" json:"fileNames"`
	FirstSearch []string `yaml:"firstSearch" json:"firstSearch"`
}

// parseParameterFile reads and decodes the recognized parameter file
// (YAML or JSON, dispatched by extension) into a ParameterDocument.
func parseParameterFile(path string) (*paramdoc.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scheduler: read parameter file: %w", err)
	}

	var doc fileDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("scheduler: parse JSON parameter file: %w", err)
		}
	default: // .yaml, .yml
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("scheduler: parse YAML parameter file: %w", err)
		}
	}

	groups := make([]paramdoc.RawFileGroup, len(doc.RawFiles))
	for i, g := range doc.RawFiles {
		files := make([]paramdoc.RawFileDescriptor, len(g.Files))
		for j, f := range g.Files {
			d := paramdoc.RawFileDescriptor{Name: f.Name, Experiment: f.Experiment, Path: f.Path}
			if f.Fraction != nil {
				d.HasFraction = true
				d.Fraction = *f.Fraction
			}
			if f.Matching != nil {
				d.HasMatching = true
				d.Matching = *f.Matching
			}
			files[j] = d
		}
		groups[i] = paramdoc.RawFileGroup{Files: files, Params: g.Params}
	}

	return &paramdoc.Document{
		RawFiles:       groups,
		FastaFiles:     paramdoc.FastaFiles{FileNames: doc.FastaFiles.FileNames, FirstSearch: doc.FastaFiles.FirstSearch},
		GlobalParams:   doc.GlobalParams,
		MSMSParams:     doc.MSMSParams,
		TopLevelParams: doc.TopLevelParams,
	}, nil
}
