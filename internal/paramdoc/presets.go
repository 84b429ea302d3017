package paramdoc

import "math"

// Preset tables, one per section, each keyed by preset name. These
// are the Go-literal equivalent of maxquant/defaults.py's
// yaml_strings tables: a module-level map loaded once and deep-copied
// before any per-request merge. Only the "default" preset is
// populated here; operators wanting tripleSILAC/doubleSILAC/labelfree
// variants can add further entries following the same shape.

// GlobalParamsPresets holds named default bundles for the globalParams
// section.
var GlobalParamsPresets = map[string]map[string]interface{}{
	"default": {
		"matchBetweenRuns":              true,
		"matchBetweenRunsFdr":           false,
		"reQuantify":                    false,
		"dependentPeptides":             false,
		"dependentPeptideFdr":           0.01,
		"dependentPeptideMassBin":       0.0055,
		"labelFree":                     false,
		"lfqMinEdgesPerNode":            3,
		"lfqAvEdgesPerNode":             6,
		"ibaq":                          false,
		"ibaqLogFit":                    true,
		"razorProteinFdr":               true,
		"minPepLen":                     6,
		"peptideFdr":                    0.01,
		"proteinFdr":                    0.01,
		"siteFdr":                       0.01,
		"minPeptides":                   2,
		"minRazorPeptides":              1,
		"minUniquePeptides":             0,
		"restrictProteinQuantification": true,
	},
}

// MSMSParamsPresets holds named default bundles for the MSMSParams
// section, including the fragment-spectrum-settings array grounded on
// defaults.py's "fragment-spectrum-settings" table.
var MSMSParamsPresets = map[string]map[string]interface{}{
	"default": {
		"msmsParamsArray": []map[string]interface{}{
			{
				"Name": "FTMS", "InPpm": true, "Deisotope": true, "Topx": 10,
				"HigherCharges": true, "IncludeWater": true, "IncludeAmmonia": true,
				"DependentLosses": true, "Tolerance": 20.0, "DeNovoTolerance": 20.0,
			},
			{
				"Name": "ITMS", "InPpm": false, "Deisotope": false, "Topx": 6,
				"HigherCharges": true, "IncludeWater": true, "IncludeAmmonia": true,
				"DependentLosses": true, "Tolerance": 0.5, "DeNovoTolerance": 0.5,
			},
			{
				"Name": "TOF", "InPpm": false, "Deisotope": true, "Topx": 10,
				"HigherCharges": true, "IncludeWater": true, "IncludeAmmonia": true,
				"DependentLosses": true, "Tolerance": 0.1, "DeNovoTolerance": 0.1,
			},
			{
				"Name": "Unknown", "InPpm": false, "Deisotope": false, "Topx": 6,
				"HigherCharges": true, "IncludeWater": true, "IncludeAmmonia": true,
				"DependentLosses": true, "Tolerance": 0.5, "DeNovoTolerance": 0.5,
			},
		},
	},
}

// RawFileParamsPresets holds named default bundles for the "params"
// mapping nested in each rawFiles parameter group, grounded on
// defaults.py's "default-group" block.
var RawFileParamsPresets = map[string]map[string]interface{}{
	"default": {
		"maxCharge":                           7,
		"lcmsRunType":                         0,
		"msInstrument":                        0,
		"groupIndex":                          1,
		"maxLabeledAa":                        3,
		"maxNmods":                            5,
		"maxMissedCleavages":                  2,
		"multiplicity":                        1,
		"protease":                            "Trypsin/P",
		"proteaseFirstSearch":                 "Trypsin/P",
		"useProteaseFirstSearch":              false,
		"useVariableModificationsFirstSearch": false,
		"hasAdditionalVariableModifications":  false,
		"doMassFiltering":                     true,
		"firstSearchTol":                      20.0,
		"mainSearchTol":                       6.0,
		"variableModifications": []string{
			"Oxidation (M)", "Acetyl (Protein N-term)",
		},
		"variableModificationsFirstSearch": []string{
			"Oxidation (M)", "Acetyl (Protein N-term)",
		},
		"isobaricLabels": []string{},
		"labels":         [][]string{{}},
		"fixedModifications": []string{
			"Carbamidomethyl (C)",
		},
	},
}

// TopLevelParamsPresets holds named default bundles for the root
// element's XML attributes.
var TopLevelParamsPresets = map[string]map[string]interface{}{
	"default": {
		"slicePeaks":           true,
		"ncores":               1,
		"ionCountIntensities":  false,
		"verboseColumnHeaders": false,
		"minTime":              math.NaN(),
		"maxTime":              math.NaN(),
		"calcPeakProperties":   true,
		"randomize":            false,
		"specialAas":           "KR",
		"maxPeptideMass":       5000.0,
		"scoreThreshold":       0.0,
	},
}
