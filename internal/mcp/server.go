// Package mcp exposes the assessment engine over the Model Context
// Protocol. Tools are stateless: every call resolves its assessment
// through the injected Store, runs the pure engine entry points, and
// returns explicit result structs. Transport is stdio only.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Odokodan153/Chimera-Nexus/internal/audit"
	"github.com/Odokodan153/Chimera-Nexus/internal/display"
	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/iap"
	"github.com/Odokodan153/Chimera-Nexus/internal/logging"
	"github.com/Odokodan153/Chimera-Nexus/internal/report"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

// Server wraps the MCP SDK server around a Store and the engine configs.
type Server struct {
	MCPServer *sdkmcp.Server

	store    store.Store
	auditCfg audit.Config
	iapCfg   iap.Config
}

// NewServer creates an MCP server with assessment tools. The store is
// caller-supplied so the serve command decides between SQLite and memory;
// configs normally come from DefaultConfig plus CLI flags.
func NewServer(st store.Store, auditCfg audit.Config, iapCfg iap.Config) *Server {
	s := &Server{
		store:    st,
		auditCfg: auditCfg,
		iapCfg:   iapCfg,
	}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "nexus", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "build_assessment",
		Description: "Build and persist a new assessment (version 1) from a raw JSON definition. Fails with field-level detail when validation rejects the input.",
	}, s.handleBuildAssessment)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_assessment",
		Description: "Load one assessment version (latest when version is omitted) as a JSON document.",
	}, s.handleGetAssessment)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "list_assessments",
		Description: "List the latest version of every stored assessment with entity counts.",
	}, s.handleListAssessments)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "compute_iap",
		Description: "Compute Intelligence Asymmetry Pressure for an assessment version, returning the score with every component of its derivation.",
	}, s.handleComputeIAP)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "audit_assessment",
		Description: "Run the cognitive bias battery over an assessment version. Findings are advisory; an empty list means the chain is structurally clean.",
	}, s.handleAuditAssessment)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "render_report",
		Description: "Render a decision-support artifact for an assessment version: a Markdown briefing (with fresh score and audit) or a Graphviz DOT evidence graph.",
	}, s.handleRenderReport)
}

// --- Tool input/output types ---

type buildAssessmentInput struct {
	AssessmentJSON string `json:"assessment_json" jsonschema:"raw assessment definition: name, urgency, threat_vectors, hypotheses, signals (signals reference hypotheses by list index)"`
}

type assessmentMeta struct {
	AssessmentID string `json:"assessment_id"`
	Name         string `json:"name"`
	Version      int    `json:"version"`
	Vectors      int    `json:"vectors"`
	Hypotheses   int    `json:"hypotheses"`
	Signals      int    `json:"signals"`
	CreatedAt    string `json:"created_at"`
}

type buildAssessmentOutput struct {
	Assessment assessmentMeta `json:"assessment"`
}

type getAssessmentInput struct {
	AssessmentID string `json:"assessment_id" jsonschema:"assessment UUID"`
	Version      int    `json:"version,omitempty" jsonschema:"exact version to load (0 or omitted = latest)"`
}

type getAssessmentOutput struct {
	Assessment     assessmentMeta `json:"assessment"`
	AssessmentJSON string         `json:"assessment_json"`
}

type listAssessmentsInput struct{}

type listAssessmentsOutput struct {
	Assessments []assessmentMeta `json:"assessments"`
	Total       int              `json:"total"`
}

type computeIAPInput struct {
	AssessmentID string `json:"assessment_id" jsonschema:"assessment UUID"`
	Version      int    `json:"version,omitempty" jsonschema:"exact version to score (0 or omitted = latest)"`
}

type computeIAPOutput struct {
	Pressure          float64 `json:"pressure"`
	Band              string  `json:"band"`
	Urgency           float64 `json:"urgency"`
	Confidence        float64 `json:"confidence"`
	Effective         float64 `json:"effective_confidence"`
	Epsilon           float64 `json:"epsilon"`
	PrimaryHypothesis string  `json:"primary_hypothesis"`
	AssessmentID      string  `json:"assessment_id"`
	Version           int     `json:"version"`
}

type auditAssessmentInput struct {
	AssessmentID string `json:"assessment_id" jsonschema:"assessment UUID"`
	Version      int    `json:"version,omitempty" jsonschema:"exact version to audit (0 or omitted = latest)"`
}

type findingDoc struct {
	Bias         string   `json:"bias"`
	Severity     string   `json:"severity"`
	Explanation  string   `json:"explanation"`
	Remediation  string   `json:"remediation,omitempty"`
	EvidenceRefs []string `json:"evidence_refs"`
}

type auditAssessmentOutput struct {
	AssessmentID string       `json:"assessment_id"`
	Version      int          `json:"version"`
	Clean        bool         `json:"clean"`
	Findings     []findingDoc `json:"findings"`
}

type renderReportInput struct {
	AssessmentID string `json:"assessment_id" jsonschema:"assessment UUID"`
	Version      int    `json:"version,omitempty" jsonschema:"exact version to render (0 or omitted = latest)"`
	Format       string `json:"format,omitempty" jsonschema:"artifact format: md (default) or dot"`
}

type renderReportOutput struct {
	AssessmentID string `json:"assessment_id"`
	Version      int    `json:"version"`
	Format       string `json:"format"`
	Content      string `json:"content"`
}

// --- Tool handlers ---

func (s *Server) handleBuildAssessment(ctx context.Context, _ *sdkmcp.CallToolRequest, input buildAssessmentInput) (*sdkmcp.CallToolResult, buildAssessmentOutput, error) {
	logger := logging.New("mcp")

	data := []byte(input.AssessmentJSON)
	if !json.Valid(data) {
		return nil, buildAssessmentOutput{}, fmt.Errorf("assessment_json is not valid JSON")
	}
	var raw htc.RawAssessment
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, buildAssessmentOutput{}, fmt.Errorf("decode assessment_json: %w", err)
	}

	a, err := htc.Build(raw)
	if err != nil {
		return nil, buildAssessmentOutput{}, fmt.Errorf("build_assessment: %w", err)
	}
	if err := s.store.Save(a); err != nil {
		return nil, buildAssessmentOutput{}, fmt.Errorf("build_assessment: %w", err)
	}

	logger.Info("assessment built", "id", htc.ShortID(a.ID), "name", a.Name,
		"vectors", len(a.Vectors), "hypotheses", len(a.Hypotheses), "signals", len(a.Signals))

	return nil, buildAssessmentOutput{Assessment: metaDoc(a)}, nil
}

func (s *Server) handleGetAssessment(ctx context.Context, _ *sdkmcp.CallToolRequest, input getAssessmentInput) (*sdkmcp.CallToolResult, getAssessmentOutput, error) {
	a, err := s.load(input.AssessmentID, input.Version)
	if err != nil {
		return nil, getAssessmentOutput{}, err
	}
	doc, err := json.Marshal(a.Document())
	if err != nil {
		return nil, getAssessmentOutput{}, fmt.Errorf("encode assessment: %w", err)
	}
	return nil, getAssessmentOutput{
		Assessment:     metaDoc(a),
		AssessmentJSON: string(doc),
	}, nil
}

func (s *Server) handleListAssessments(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listAssessmentsInput) (*sdkmcp.CallToolResult, listAssessmentsOutput, error) {
	metas, err := s.store.List()
	if err != nil {
		return nil, listAssessmentsOutput{}, fmt.Errorf("list_assessments: %w", err)
	}
	out := listAssessmentsOutput{Assessments: make([]assessmentMeta, 0, len(metas)), Total: len(metas)}
	for _, m := range metas {
		out.Assessments = append(out.Assessments, assessmentMeta{
			AssessmentID: m.ID.String(),
			Name:         m.Name,
			Version:      m.Version,
			Vectors:      m.Vectors,
			Hypotheses:   m.Hypotheses,
			Signals:      m.Signals,
			CreatedAt:    m.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return nil, out, nil
}

func (s *Server) handleComputeIAP(ctx context.Context, _ *sdkmcp.CallToolRequest, input computeIAPInput) (*sdkmcp.CallToolResult, computeIAPOutput, error) {
	a, err := s.load(input.AssessmentID, input.Version)
	if err != nil {
		return nil, computeIAPOutput{}, err
	}
	score, err := iap.Compute(a, s.iapCfg)
	if err != nil {
		return nil, computeIAPOutput{}, fmt.Errorf("compute_iap: %w", err)
	}
	return nil, computeIAPOutput{
		Pressure:          score.Value,
		Band:              display.PressureBand(score.Value),
		Urgency:           score.Urgency,
		Confidence:        score.Confidence,
		Effective:         score.Effective,
		Epsilon:           score.Epsilon,
		PrimaryHypothesis: score.Primary.String(),
		AssessmentID:      score.AssessmentID.String(),
		Version:           score.AssessmentVersion,
	}, nil
}

func (s *Server) handleAuditAssessment(ctx context.Context, _ *sdkmcp.CallToolRequest, input auditAssessmentInput) (*sdkmcp.CallToolResult, auditAssessmentOutput, error) {
	a, err := s.load(input.AssessmentID, input.Version)
	if err != nil {
		return nil, auditAssessmentOutput{}, err
	}
	findings := audit.Run(a, s.auditCfg)
	out := auditAssessmentOutput{
		AssessmentID: a.ID.String(),
		Version:      a.Version,
		Clean:        len(findings) == 0,
		Findings:     make([]findingDoc, 0, len(findings)),
	}
	for _, f := range findings {
		refs := make([]string, 0, len(f.EvidenceRefs))
		for _, r := range f.EvidenceRefs {
			refs = append(refs, r.String())
		}
		out.Findings = append(out.Findings, findingDoc{
			Bias:         string(f.Bias),
			Severity:     string(f.Severity),
			Explanation:  f.Explanation,
			Remediation:  f.Remediation,
			EvidenceRefs: refs,
		})
	}
	return nil, out, nil
}

func (s *Server) handleRenderReport(ctx context.Context, _ *sdkmcp.CallToolRequest, input renderReportInput) (*sdkmcp.CallToolResult, renderReportOutput, error) {
	logger := logging.New("mcp")

	a, err := s.load(input.AssessmentID, input.Version)
	if err != nil {
		return nil, renderReportOutput{}, err
	}

	outFormat := strings.ToLower(input.Format)
	if outFormat == "" {
		outFormat = "md"
	}

	var content string
	switch outFormat {
	case "md", "markdown":
		outFormat = "md"
		// A briefing always carries a fresh score and audit.
		score, err := iap.Compute(a, s.iapCfg)
		if err != nil {
			return nil, renderReportOutput{}, fmt.Errorf("render_report: %w", err)
		}
		findings := audit.Run(a, s.auditCfg)
		content = report.Markdown(a, &score, findings, time.Now())
	case "dot":
		content = report.DOT(a)
	default:
		return nil, renderReportOutput{}, fmt.Errorf("unknown format %q (want md or dot)", input.Format)
	}

	logger.Info("report rendered", "id", htc.ShortID(a.ID), "version", a.Version, "format", outFormat)

	return nil, renderReportOutput{
		AssessmentID: a.ID.String(),
		Version:      a.Version,
		Format:       outFormat,
		Content:      content,
	}, nil
}

// --- helpers ---

// load resolves an assessment id plus optional version against the store.
func (s *Server) load(rawID string, version int) (*htc.Assessment, error) {
	id, err := htc.ParseAssessmentID(rawID)
	if err != nil {
		return nil, err
	}
	if version > 0 {
		return s.store.Get(id, version)
	}
	return s.store.Latest(id)
}

func metaDoc(a *htc.Assessment) assessmentMeta {
	return assessmentMeta{
		AssessmentID: a.ID.String(),
		Name:         a.Name,
		Version:      a.Version,
		Vectors:      len(a.Vectors),
		Hypotheses:   len(a.Hypotheses),
		Signals:      len(a.Signals),
		CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
