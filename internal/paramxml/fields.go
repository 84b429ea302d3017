package paramxml

import "github.com/qbic-pipelines/mqrund/internal/schema"

// Concrete schema trees for the sections whose XML shape is a plain
// object walk (globalParams, the per-group rawFileParams payload, and
// topLevelParams' root attributes). rawFiles, fastaFiles and
// outputOptions have bespoke XML shapes and are handled entirely by
// their own section writers instead of the generic walker in
// object.go — see rawfiles.go, fasta.go, output.go.
//
// Field lists are a representative subset of MaxQuant's real
// parameter surface, not an exhaustive reproduction of every option
// the engine accepts.

var globalParamsSchema = schema.Obj("globalParams",
	[]string{
		"matchBetweenRuns", "matchBetweenRunsFdr", "reQuantify",
		"dependentPeptides", "dependentPeptideFdr", "dependentPeptideMassBin",
		"labelFree", "lfqMinEdgesPerNode", "lfqAvEdgesPerNode",
		"ibaq", "ibaqLogFit", "razorProteinFdr",
		"minPepLen", "peptideFdr", "proteinFdr", "siteFdr",
		"minPeptides", "minRazorPeptides", "minUniquePeptides",
		"restrictProteinQuantification",
	},
	map[string]*schema.Node{
		"matchBetweenRuns":               schema.Bool("globalParams.matchBetweenRuns"),
		"matchBetweenRunsFdr":            schema.Bool("globalParams.matchBetweenRunsFdr"),
		"reQuantify":                     schema.Bool("globalParams.reQuantify"),
		"dependentPeptides":              schema.Bool("globalParams.dependentPeptides"),
		"dependentPeptideFdr":            schema.Num("globalParams.dependentPeptideFdr"),
		"dependentPeptideMassBin":        schema.Num("globalParams.dependentPeptideMassBin"),
		"labelFree":                      schema.Bool("globalParams.labelFree"),
		"lfqMinEdgesPerNode":             schema.Int("globalParams.lfqMinEdgesPerNode"),
		"lfqAvEdgesPerNode":              schema.Int("globalParams.lfqAvEdgesPerNode"),
		"ibaq":                           schema.Bool("globalParams.ibaq"),
		"ibaqLogFit":                     schema.Bool("globalParams.ibaqLogFit"),
		"razorProteinFdr":                schema.Bool("globalParams.razorProteinFdr"),
		"minPepLen":                      schema.Int("globalParams.minPepLen"),
		"peptideFdr":                     schema.Num("globalParams.peptideFdr"),
		"proteinFdr":                     schema.Num("globalParams.proteinFdr"),
		"siteFdr":                        schema.Num("globalParams.siteFdr"),
		"minPeptides":                    schema.Int("globalParams.minPeptides"),
		"minRazorPeptides":               schema.Int("globalParams.minRazorPeptides"),
		"minUniquePeptides":              schema.Int("globalParams.minUniquePeptides"),
		"restrictProteinQuantification":  schema.Bool("globalParams.restrictProteinQuantification"),
	},
)

// rawFileParamsSchema describes the "params" mapping nested inside
// each rawFiles parameter group (mqparams.py's `_schema['properties']
// ['rawFiles']['items']['properties']['params']`).
var rawFileParamsSchema = schema.Obj("rawFileParams",
	[]string{
		"maxCharge", "lcmsRunType", "msInstrument", "groupIndex",
		"maxLabeledAa", "maxNmods", "maxMissedCleavages", "multiplicity",
		"protease", "proteaseFirstSearch",
		"useProteaseFirstSearch", "useVariableModificationsFirstSearch",
		"hasAdditionalVariableModifications", "doMassFiltering",
		"firstSearchTol", "mainSearchTol",
		"variableModifications", "variableModificationsFirstSearch",
		"isobaricLabels", "labels", "fixedModifications",
	},
	map[string]*schema.Node{
		"maxCharge":                           schema.Int("rawFileParams.maxCharge"),
		"lcmsRunType":                         schema.Int("rawFileParams.lcmsRunType"),
		"msInstrument":                        schema.Int("rawFileParams.msInstrument"),
		"groupIndex":                          schema.Int("rawFileParams.groupIndex"),
		"maxLabeledAa":                        schema.Int("rawFileParams.maxLabeledAa"),
		"maxNmods":                            schema.Int("rawFileParams.maxNmods"),
		"maxMissedCleavages":                  schema.Int("rawFileParams.maxMissedCleavages"),
		"multiplicity":                        schema.Int("rawFileParams.multiplicity"),
		"protease":                            schema.Str("rawFileParams.protease"),
		"proteaseFirstSearch":                 schema.Str("rawFileParams.proteaseFirstSearch"),
		"useProteaseFirstSearch":              schema.Bool("rawFileParams.useProteaseFirstSearch"),
		"useVariableModificationsFirstSearch": schema.Bool("rawFileParams.useVariableModificationsFirstSearch"),
		"hasAdditionalVariableModifications":  schema.Bool("rawFileParams.hasAdditionalVariableModifications"),
		"doMassFiltering":                     schema.Bool("rawFileParams.doMassFiltering"),
		"firstSearchTol":                      schema.Num("rawFileParams.firstSearchTol"),
		"mainSearchTol":                       schema.Num("rawFileParams.mainSearchTol"),
		"variableModifications":               schema.ListOfString("rawFileParams.variableModifications"),
		"variableModificationsFirstSearch":    schema.ListOfString("rawFileParams.variableModificationsFirstSearch"),
		"isobaricLabels":                      schema.ListOfString("rawFileParams.isobaricLabels"),
		"labels":                              schema.ListOfListOfString("rawFileParams.labels"),
		"fixedModifications":                  schema.ListOfString("rawFileParams.fixedModifications"),
	},
)

// topLevelParamsSchema describes the fields written as attributes on
// the document root element rather than child elements.
var topLevelParamsSchema = schema.Obj("topLevelParams",
	[]string{
		"slicePeaks", "ncores", "ionCountIntensities", "verboseColumnHeaders",
		"minTime", "maxTime", "calcPeakProperties", "randomize",
		"specialAas", "maxPeptideMass", "scoreThreshold",
	},
	map[string]*schema.Node{
		"slicePeaks":           schema.Bool("topLevelParams.slicePeaks"),
		"ncores":               schema.Int("topLevelParams.ncores"),
		"ionCountIntensities":  schema.Bool("topLevelParams.ionCountIntensities"),
		"verboseColumnHeaders": schema.Bool("topLevelParams.verboseColumnHeaders"),
		"minTime":              schema.Num("topLevelParams.minTime"),
		"maxTime":              schema.Num("topLevelParams.maxTime"),
		"calcPeakProperties":   schema.Bool("topLevelParams.calcPeakProperties"),
		"randomize":            schema.Bool("topLevelParams.randomize"),
		"specialAas":           schema.Str("topLevelParams.specialAas"),
		"maxPeptideMass":       schema.Num("topLevelParams.maxPeptideMass"),
		"scoreThreshold":       schema.Num("topLevelParams.scoreThreshold"),
	},
)

// msmsParamSetFields lists the attribute names recognized on each
// <msmsParams> entry of msmsParamsArray, used by msms.go to validate
// and order attribute emission. Tolerance and DeNovoTolerance are
// handled separately as single numeric child elements rather than
// attributes.
var msmsParamSetFields = []string{
	"Name", "InPpm", "Deisotope", "Topx",
	"HigherCharges", "IncludeWater", "IncludeAmmonia", "DependentLosses",
}

// msmsAttrScalarType returns the declared scalar type for one
// msmsParams attribute name.
func msmsAttrScalarType(name string) schema.ScalarType {
	switch name {
	case "Name":
		return schema.ScalarString
	case "Topx":
		return schema.ScalarInteger
	default:
		return schema.ScalarBoolean
	}
}
