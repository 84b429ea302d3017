package scheduler

import (
	"log"
	"path/filepath"
	"strings"

	"github.com/qbic-pipelines/mqrund/internal/request"
)

// Buckets is the result of sorting a request's input files into the
// shapes the rest of the pipeline needs: raw-file and fasta path maps
// keyed by logical name, plus the single recognized parameter file.
type Buckets struct {
	FilePaths  map[string]string
	FastaPaths map[string]string
	ParamFile  string
}

// bucketFiles separates files into data files (.raw, .fasta) and the
// parameter file (.yaml/.yml/.json, extension case-insensitive).
// Fails with BadRequest if the parameter file count isn't exactly
// one, or if two data files of the same kind share a logical name
// (its stem).
func bucketFiles(files []string, logger *log.Logger) (*Buckets, error) {
	b := &Buckets{FilePaths: map[string]string{}, FastaPaths: map[string]string{}}
	var paramFiles []string

	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		name := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		switch ext {
		case ".raw":
			if _, exists := b.FilePaths[name]; exists {
				return nil, request.BadRequest("File name not unique: %s", name)
			}
			b.FilePaths[name] = f
		case ".fasta":
			if _, exists := b.FastaPaths[name]; exists {
				return nil, request.BadRequest("File name not unique: %s", name)
			}
			b.FastaPaths[name] = f
		case ".yaml", ".yml", ".json":
			paramFiles = append(paramFiles, f)
		default:
			logger.Printf("[WARN] unrecognized input file extension, ignoring: %s", f)
		}
	}

	switch len(paramFiles) {
	case 0:
		return nil, request.BadRequest("No parameter file")
	case 1:
		b.ParamFile = paramFiles[0]
	default:
		return nil, request.BadRequest("Too many parameter files")
	}
	return b, nil
}
