package sessions

type sessionResponse struct {
	SessionID    string          `json:"sessionId"`
	State        State           `json:"state"`
	CutoffScore  int             `json:"cutoffScore"`
	LastAnalysis *AnalysisResult `json:"lastAnalysis,omitempty"`
	Weaknesses   []Weakness      `json:"weaknesses,omitempty"`
}

type analysisResponse struct {
	SessionID   string          `json:"sessionId"`
	State       State           `json:"state"`
	CutoffScore int             `json:"cutoffScore"`
	MeetsCutoff bool            `json:"meetsCutoff"`
	Result      *AnalysisResult `json:"result"`
}

type questionRequest struct {
	Question string `json:"question"`
}

type interviewQuestionsRequest struct {
	QuestionTypes []string `json:"questionTypes"`
	Difficulty    string   `json:"difficulty"`
	Count         int      `json:"count"`
}

type improvementsRequest struct {
	Areas      []string `json:"areas"`
	TargetRole string   `json:"targetRole"`
}

type improvedResumeRequest struct {
	TargetRole      string `json:"targetRole"`
	HighlightSkills string `json:"highlightSkills"`
}

type documentResponse struct {
	ResumeKey string `json:"resumeKey"`
	FileName  string `json:"fileName"`
	SizeBytes int64  `json:"sizeBytes"`
	MimeType  string `json:"mimeType"`
}
