package report

import (
	"encoding/json"
	"io"

	"github.com/envdelta/envdelta/internal/pipeline"
	"github.com/envdelta/envdelta/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt    `json:"artifactLocation"`
	Region           sarifRegion `json:"region"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevHigh:
		return "error"
	case types.SevMed:
		return "warning"
	default:
		return "note"
	}
}

// SARIFInput bundles what the writer needs to place findings: the raw
// sources (for line resolution) and the file names reported as artifact
// URIs.
type SARIFInput struct {
	Version     string
	Findings    []types.Finding
	LeftSource  string
	RightSource string
	LeftURI     string
	RightURI    string
	Format      pipeline.Format
}

// WriteSARIF writes findings as SARIF 2.1.0. Line numbers are resolved
// heuristically; findings without a resolvable line are emitted without a
// region.
func WriteSARIF(w io.Writer, in SARIFInput) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: "envdelta", Version: in.Version}},
	}
	for _, f := range in.Findings {
		res := sarifResult{
			RuleID:  f.RuleID,
			Level:   sevToLevel(f.Severity),
			Message: sarifMessage{Text: f.Key + ": " + f.Message},
		}
		uri := in.RightURI
		if f.Context == types.ContextRemoved || f.Context == "left" {
			uri = in.LeftURI
		}
		if line, ok := pipeline.ResolveFindingLine(f, in.LeftSource, in.RightSource, in.Format); ok {
			res.Locations = []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: uri},
					Region:           sarifRegion{StartLine: line},
				},
			}}
		}
		run.Results = append(run.Results, res)
	}
	doc := sarif{Version: "2.1.0", Runs: []sarifRun{run}}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
