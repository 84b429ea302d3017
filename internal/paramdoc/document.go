// Package paramdoc defines the structured ParameterDocument that
// internal/paramxml converts to and from the engine's XML parameter
// file, along with the preset tables and deep-merge machinery that
// overlay a named default bundle beneath a client-supplied document.
package paramdoc

// Document is the root of a parsed parameter file. Only rawFiles and
// fastaFiles are mandatory; globalParams, MSMSParams and
// topLevelParams may be nil, in which case the writers treat that
// section as an empty mapping. A preset is applied only when a section
// names one under its "defaults" key.
type Document struct {
	RawFiles       []RawFileGroup
	FastaFiles     FastaFiles
	GlobalParams   map[string]interface{}
	MSMSParams     map[string]interface{}
	TopLevelParams map[string]interface{}
}

// RawFileGroup is one parameter group: a set of input-file
// descriptors sharing one parameter mapping.
type RawFileGroup struct {
	Files  []RawFileDescriptor
	Params map[string]interface{}
}

// RawFileDescriptor names one input file within a group. Name is the
// logical identifier resolved against ExtraPathData.FilePaths at XML
// emission time; Path is the fallback used when no such entry exists.
type RawFileDescriptor struct {
	Name       string
	Experiment string
	HasFraction bool
	Fraction    int
	HasMatching bool
	Matching    int
	Path        string
}

// FastaFiles lists the reference sequence databases by logical name.
// FirstSearch is the subset also used in MaxQuant's first search pass.
type FastaFiles struct {
	FileNames   []string
	FirstSearch []string
}

// ExtraPathData carries path information alongside a Document so that
// XML emission can substitute absolute paths for logical names while
// the document itself stays path-agnostic.
type ExtraPathData struct {
	FilePaths  map[string]string
	FastaPaths map[string]string
	OutputDir  *string
	TmpDir     *string
}

// NewExtraPathData builds an ExtraPathData from path maps, treating
// nil maps as empty.
func NewExtraPathData(filePaths, fastaPaths map[string]string, outputDir, tmpDir *string) ExtraPathData {
	if filePaths == nil {
		filePaths = map[string]string{}
	}
	if fastaPaths == nil {
		fastaPaths = map[string]string{}
	}
	return ExtraPathData{
		FilePaths:  filePaths,
		FastaPaths: fastaPaths,
		OutputDir:  outputDir,
		TmpDir:     tmpDir,
	}
}
