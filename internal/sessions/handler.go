package sessions

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-agent/internal/extract"
	"resume-agent/internal/llm"
	"resume-agent/internal/shared/server/respond"
	"resume-agent/internal/shared/storage/object"
)

const (
	maxUploadSize         = 10 << 20 // 10MB
	defaultQuestionCount  = 5
	maxQuestionCount      = 20
	defaultDifficulty     = "Medium"
	sessionIDContextKey   = "sessionId"
	errSessionNotFoundMsg = "session not found"
)

var defaultQuestionTypes = []string{"Technical", "Behavioral"}

// Handler exposes sessions over HTTP.
type Handler struct {
	Registry *Registry
	Store    object.ObjectStore
}

// NewHandler constructs a Handler. store may be nil, which disables
// uploads and resumeKey lookups.
func NewHandler(registry *Registry, store object.ObjectStore) *Handler {
	return &Handler{Registry: registry, Store: store}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.uploadDocument)
	rg.POST("/sessions", h.create)
	rg.GET("/sessions/:id", h.get)
	rg.POST("/sessions/:id/analyze", h.analyze)
	rg.POST("/sessions/:id/questions", h.askQuestion)
	rg.POST("/sessions/:id/interview-questions", h.interviewQuestions)
	rg.POST("/sessions/:id/improvements", h.improvements)
	rg.POST("/sessions/:id/improved-resume", h.improvedResume)
	rg.DELETE("/sessions/:id", h.delete)
}

func (h *Handler) create(c *gin.Context) {
	var resp sessionResponse
	id := h.Registry.CreateWith(func(id string, s *Session) {
		resp = sessionResponse{SessionID: id, State: s.State(), CutoffScore: s.CutoffScore()}
	})
	c.Set(sessionIDContextKey, id)
	respond.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) get(c *gin.Context) {
	id := h.sessionID(c)
	var resp sessionResponse
	err := h.Registry.Do(id, func(s *Session) error {
		resp = sessionResponse{
			SessionID:    id,
			State:        s.State(),
			CutoffScore:  s.CutoffScore(),
			LastAnalysis: s.LastAnalysis(),
			Weaknesses:   s.Weaknesses(),
		}
		return nil
	})
	if err != nil {
		writeError(c, err, "failed to fetch session")
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) analyze(c *gin.Context) {
	id := h.sessionID(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	resume, status, err := h.resumeDocument(c)
	if err != nil {
		code := "validation_error"
		switch status {
		case http.StatusNotFound:
			code = "not_found"
		case http.StatusRequestEntityTooLarge:
			code = "payload_too_large"
		}
		respond.Error(c, status, code, err.Error(), nil)
		return
	}

	job := JobContext{Requirements: requirementsFromForm(c)}
	if fh, err := c.FormFile("jobDescription"); err == nil {
		doc, err := readFormFile(fh)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read jobDescription", nil)
			return
		}
		job.Description = &doc
	}

	var resp analysisResponse
	err = h.Registry.Do(id, func(s *Session) error {
		result, err := s.AnalyzeResume(c.Request.Context(), resume, job)
		if err != nil {
			return err
		}
		resp = analysisResponse{
			SessionID:   id,
			State:       s.State(),
			CutoffScore: s.CutoffScore(),
			MeetsCutoff: result.MeetsCutoff(s.CutoffScore()),
			Result:      result,
		}
		return nil
	})
	if err != nil {
		writeError(c, err, "failed to analyze resume")
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) askQuestion(c *gin.Context) {
	id := h.sessionID(c)
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "question is required", nil)
		return
	}

	var answer string
	err := h.Registry.Do(id, func(s *Session) error {
		var err error
		answer, err = s.AskQuestion(c.Request.Context(), req.Question)
		return err
	})
	if err != nil {
		writeError(c, err, "failed to answer question")
		return
	}
	respond.OK(c, gin.H{"answer": answer})
}

func (h *Handler) interviewQuestions(c *gin.Context) {
	id := h.sessionID(c)
	var req interviewQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if req.Count == 0 {
		req.Count = defaultQuestionCount
	}
	if req.Count < 0 || req.Count > maxQuestionCount {
		respond.Error(c, http.StatusBadRequest, "validation_error", fmt.Sprintf("count must be between 1 and %d", maxQuestionCount), nil)
		return
	}
	if len(req.QuestionTypes) == 0 {
		req.QuestionTypes = defaultQuestionTypes
	}
	if strings.TrimSpace(req.Difficulty) == "" {
		req.Difficulty = defaultDifficulty
	}

	var questions []InterviewQuestion
	err := h.Registry.Do(id, func(s *Session) error {
		var err error
		questions, err = s.GenerateInterviewQuestions(c.Request.Context(), req.QuestionTypes, req.Difficulty, req.Count)
		return err
	})
	if err != nil {
		writeError(c, err, "failed to generate interview questions")
		return
	}
	respond.OK(c, gin.H{"questions": questions})
}

func (h *Handler) improvements(c *gin.Context) {
	id := h.sessionID(c)
	var req improvementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	var plan ImprovementPlan
	err := h.Registry.Do(id, func(s *Session) error {
		var err error
		plan, err = s.ImproveResume(c.Request.Context(), req.Areas, strings.TrimSpace(req.TargetRole))
		return err
	})
	if err != nil {
		writeError(c, err, "failed to suggest improvements")
		return
	}
	respond.OK(c, gin.H{"improvements": plan})
}

func (h *Handler) improvedResume(c *gin.Context) {
	id := h.sessionID(c)
	var req improvedResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	var resume string
	err := h.Registry.Do(id, func(s *Session) error {
		var err error
		resume, err = s.GetImprovedResume(c.Request.Context(), strings.TrimSpace(req.TargetRole), strings.TrimSpace(req.HighlightSkills))
		return err
	})
	if err != nil {
		writeError(c, err, "failed to rewrite resume")
		return
	}
	respond.OK(c, gin.H{"resume": resume})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Registry.Delete(h.sessionID(c)); err != nil {
		writeError(c, err, "failed to delete session")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) uploadDocument(c *gin.Context) {
	if h.Store == nil {
		respond.Error(c, http.StatusServiceUnavailable, "store_unavailable", "document storage is not configured", nil)
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fh, err := c.FormFile("file")
	if tooLarge(err) {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file exceeds upload limit", nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if extract.KindOf(fh.Filename) == extract.KindUnsupported {
		respond.Error(c, http.StatusBadRequest, "validation_error", "only .pdf and .txt files are supported", nil)
		return
	}
	file, err := fh.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	key, size, mimeType, err := h.Store.Save(c.Request.Context(), fh.Filename, file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store document", nil)
		return
	}
	respond.JSON(c, http.StatusCreated, documentResponse{
		ResumeKey: key,
		FileName:  fh.Filename,
		SizeBytes: size,
		MimeType:  mimeType,
	})
}

func (h *Handler) sessionID(c *gin.Context) string {
	id := c.Param("id")
	c.Set(sessionIDContextKey, id)
	return id
}

// resumeDocument reads the uploaded resume file, falling back to resumeKey.
func (h *Handler) resumeDocument(c *gin.Context) (extract.Document, int, error) {
	fh, err := c.FormFile("resume")
	if tooLarge(err) {
		return extract.Document{}, http.StatusRequestEntityTooLarge, errors.New("resume exceeds upload limit")
	}
	if err == nil {
		doc, err := readFormFile(fh)
		if err != nil {
			return extract.Document{}, http.StatusBadRequest, errors.New("unable to read resume")
		}
		return doc, 0, nil
	}

	key := strings.TrimSpace(c.PostForm("resumeKey"))
	if key == "" {
		return extract.Document{}, http.StatusBadRequest, errors.New("resume file or resumeKey is required")
	}
	if h.Store == nil {
		return extract.Document{}, http.StatusBadRequest, errors.New("resumeKey requires document storage")
	}
	rc, err := h.Store.Open(c.Request.Context(), key)
	if err != nil {
		return extract.Document{}, http.StatusNotFound, errors.New("document not found")
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return extract.Document{}, http.StatusBadRequest, errors.New("unable to read resume")
	}
	return extract.FromBytes(path.Base(key), data), 0, nil
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func readFormFile(fh *multipart.FileHeader) (extract.Document, error) {
	f, err := fh.Open()
	if err != nil {
		return extract.Document{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return extract.Document{}, err
	}
	return extract.FromBytes(fh.Filename, data), nil
}

// requirementsFromForm accepts repeated and comma separated requirements fields.
func requirementsFromForm(c *gin.Context) []string {
	var out []string
	for _, raw := range c.PostFormArray("requirements") {
		for _, part := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", errSessionNotFoundMsg, nil)
	case errors.Is(err, ErrExtractionFailed):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", err.Error(), nil)
	case errors.Is(err, ErrSessionClosed):
		respond.Error(c, http.StatusConflict, "session_closed", err.Error(), nil)
	case errors.Is(err, llm.ErrNoStructuredPayload), errors.Is(err, llm.ErrMalformedPayload):
		respond.Error(c, http.StatusBadGateway, "llm_schema_mismatch", "model response could not be parsed", nil)
	case errors.Is(err, llm.ErrMissingParam):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
