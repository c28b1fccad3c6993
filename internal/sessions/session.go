package sessions

import (
	"context"
	"io"
	"strings"
	"time"

	"resume-agent/internal/extract"
	"resume-agent/internal/llm"
	"resume-agent/internal/shared/metrics"
	"resume-agent/internal/shared/telemetry"
)

// DefaultCutoffScore is the overall score a candidate needs to be shortlisted.
const DefaultCutoffScore = 75

// JobContext describes what a resume is scored against. A non-nil
// Description takes precedence over Requirements.
type JobContext struct {
	Requirements []string
	Description  *extract.Document
}

// Option configures a Session.
type Option func(*Session)

// WithModel sets the model name passed to the generator.
func WithModel(model string) Option {
	return func(s *Session) {
		if strings.TrimSpace(model) != "" {
			s.model = strings.TrimSpace(model)
		}
	}
}

// WithCutoffScore overrides DefaultCutoffScore.
func WithCutoffScore(cutoff int) Option {
	return func(s *Session) {
		s.cutoff = cutoff
	}
}

// WithOwnedGenerator makes Dispose close the generator when it implements io.Closer.
func WithOwnedGenerator() Option {
	return func(s *Session) {
		s.ownsGenerator = true
	}
}

// Session holds the state of one analysis lifecycle. It is not safe for
// concurrent use.
type Session struct {
	gen           llm.Generator
	model         string
	cutoff        int
	ownsGenerator bool

	state        State
	resumeText   string
	jobContext   string
	lastAnalysis *AnalysisResult
	weaknesses   []Weakness
}

// New constructs an empty Session that calls gen for every generation step.
func New(gen llm.Generator, opts ...Option) *Session {
	s := &Session{
		gen:    gen,
		model:  llm.DefaultModel,
		cutoff: DefaultCutoffScore,
		state:  StateEmpty,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AnalyzeResume extracts the resume, scores it against job and stores the
// result. Extraction failures leave the session unchanged.
func (s *Session) AnalyzeResume(ctx context.Context, resume extract.Document, job JobContext) (*AnalysisResult, error) {
	if s.state == StateClosed {
		return nil, ErrSessionClosed
	}

	resumeText := extract.Text(resume)
	if resumeText == "" {
		telemetry.Warn("session.extraction_failed", map[string]any{
			"document": resume.Name,
		})
		return nil, ErrExtractionFailed
	}

	jobContext := strings.Join(job.Requirements, ", ")
	if job.Description != nil {
		jobContext = extract.Text(*job.Description)
		if jobContext == "" {
			telemetry.Warn("session.job_description_empty", map[string]any{
				"document": job.Description.Name,
			})
		}
	}

	s.resumeText = resumeText
	s.jobContext = jobContext
	s.lastAnalysis = nil
	s.weaknesses = nil
	s.state = StateReady

	raw, err := s.generate(ctx, llm.TaskScore, llm.Params{
		ResumeText: resumeText,
		JobContext: jobContext,
	})
	if err != nil {
		return nil, err
	}

	payload, err := llm.ParseJSON(raw)
	if err != nil {
		s.parseFailed(llm.TaskScore, err)
		return nil, err
	}
	result := analysisFromMap(payload)

	s.lastAnalysis = &result
	s.weaknesses = append([]Weakness{}, result.DetailedWeaknesses...)
	s.state = StateAnalyzed
	metrics.IncAnalysisCompleted()
	telemetry.Info("session.analyzed", map[string]any{
		"overall_score": result.OverallScore,
		"selected":      result.Selected,
		"meets_cutoff":  result.MeetsCutoff(s.cutoff),
		"weaknesses":    len(result.DetailedWeaknesses),
	})

	out := result
	return &out, nil
}

// AskQuestion answers a free-form question about the loaded resume. A blank
// question is sent as is.
func (s *Session) AskQuestion(ctx context.Context, question string) (string, error) {
	if !s.ready() {
		return NotReadyMessage, nil
	}
	raw, err := s.generate(ctx, llm.TaskAnswerQuestion, llm.Params{
		ResumeText: s.resumeText,
		Question:   question,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// GenerateInterviewQuestions returns up to count questions. Responses without
// any recognizable question lines yield an empty list.
func (s *Session) GenerateInterviewQuestions(ctx context.Context, questionTypes []string, difficulty string, count int) ([]InterviewQuestion, error) {
	if !s.ready() || count <= 0 {
		return []InterviewQuestion{}, nil
	}
	raw, err := s.generate(ctx, llm.TaskInterviewQuestions, llm.Params{
		ResumeText:    s.resumeText,
		QuestionTypes: questionTypes,
		Difficulty:    difficulty,
		NumQuestions:  count,
	})
	if err != nil {
		return nil, err
	}

	tuples := llm.ParseTuples(raw, count)
	if len(tuples) == 0 {
		telemetry.Warn("session.no_interview_questions", map[string]any{
			"requested": count,
		})
	}
	out := make([]InterviewQuestion, 0, len(tuples))
	for _, t := range tuples {
		out = append(out, InterviewQuestion{Category: t.Category, Text: t.Text})
	}
	return out, nil
}

// ImproveResume asks for per-area improvement suggestions.
func (s *Session) ImproveResume(ctx context.Context, areas []string, targetRole string) (ImprovementPlan, error) {
	if !s.ready() {
		return ImprovementPlan{}, nil
	}
	raw, err := s.generate(ctx, llm.TaskSuggestImprovements, llm.Params{
		ResumeText:       s.resumeText,
		ImprovementAreas: areas,
		TargetRole:       targetRole,
	})
	if err != nil {
		return nil, err
	}

	payload, err := llm.ParseJSON(raw)
	if err != nil {
		s.parseFailed(llm.TaskSuggestImprovements, err)
		return nil, err
	}
	return planFromMap(payload), nil
}

// GetImprovedResume returns a rewritten resume body.
func (s *Session) GetImprovedResume(ctx context.Context, targetRole string, highlightSkills string) (string, error) {
	if !s.ready() {
		return NotReadyMessage, nil
	}
	raw, err := s.generate(ctx, llm.TaskRewriteResume, llm.Params{
		ResumeText:      s.resumeText,
		TargetRole:      targetRole,
		HighlightSkills: highlightSkills,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// Dispose releases the generator and clears all state. Calling it again is a no-op.
func (s *Session) Dispose() {
	if s.state == StateClosed {
		return
	}
	if s.ownsGenerator {
		if closer, ok := s.gen.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				telemetry.Warn("session.generator_close_failed", map[string]any{
					"error": err.Error(),
				})
			}
		}
	}
	s.gen = nil
	s.resumeText = ""
	s.jobContext = ""
	s.lastAnalysis = nil
	s.weaknesses = nil
	s.state = StateClosed
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// ResumeText returns the extracted text of the last analyzed resume.
func (s *Session) ResumeText() string {
	return s.resumeText
}

// JobContext returns the context the last resume was scored against.
func (s *Session) JobContext() string {
	return s.jobContext
}

// LastAnalysis returns a copy of the most recent result, or nil.
func (s *Session) LastAnalysis() *AnalysisResult {
	if s.lastAnalysis == nil {
		return nil
	}
	out := *s.lastAnalysis
	return &out
}

// Weaknesses returns the weaknesses of the most recent analysis.
func (s *Session) Weaknesses() []Weakness {
	return append([]Weakness{}, s.weaknesses...)
}

// CutoffScore returns the shortlist threshold used by this session.
func (s *Session) CutoffScore() int {
	return s.cutoff
}

func (s *Session) ready() bool {
	return (s.state == StateReady || s.state == StateAnalyzed) && s.resumeText != ""
}

func (s *Session) generate(ctx context.Context, task llm.Task, params llm.Params) (string, error) {
	prompt, err := llm.BuildPrompt(task, params)
	if err != nil {
		return "", err
	}

	metrics.IncLLMCalls()
	start := time.Now()
	raw, err := s.gen.Generate(ctx, s.model, prompt)
	elapsed := metrics.Since(start)
	metrics.ObserveLLMDurationMs(elapsed)
	if err != nil {
		metrics.IncLLMFailures()
		telemetry.Error("session.generate_failed", map[string]any{
			"task":        task.String(),
			"model":       s.model,
			"duration_ms": elapsed,
			"error":       err.Error(),
		})
		return "", err
	}
	return raw, nil
}

func (s *Session) parseFailed(task llm.Task, err error) {
	metrics.IncLLMParseFailures()
	telemetry.Warn("session.parse_failed", map[string]any{
		"task":  task.String(),
		"error": err.Error(),
	})
}
