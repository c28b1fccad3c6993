package llm

import (
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	//go:embed prompts/score.txt
	promptScore string
	//go:embed prompts/answer_question.txt
	promptAnswerQuestion string
	//go:embed prompts/interview_questions.txt
	promptInterviewQuestions string
	//go:embed prompts/suggest_improvements.txt
	promptSuggestImprovements string
	//go:embed prompts/rewrite_resume.txt
	promptRewriteResume string
)

// TupleNotation is the literal line format the interview prompt asks for and
// ParseTuples recovers.
const TupleNotation = `("Type", "Question")`

// Task selects a prompt template.
type Task int

const (
	TaskScore Task = iota + 1
	TaskAnswerQuestion
	TaskInterviewQuestions
	TaskSuggestImprovements
	TaskRewriteResume
)

func (t Task) String() string {
	switch t {
	case TaskScore:
		return "score"
	case TaskAnswerQuestion:
		return "answer_question"
	case TaskInterviewQuestions:
		return "interview_questions"
	case TaskSuggestImprovements:
		return "suggest_improvements"
	case TaskRewriteResume:
		return "rewrite_resume"
	default:
		return "unknown"
	}
}

var (
	ErrUnknownTask  = errors.New("unknown prompt task")
	ErrMissingParam = errors.New("missing prompt parameter")
)

// Params carries every value a template may embed. Each task reads only the
// fields it needs.
type Params struct {
	ResumeText       string
	JobContext       string
	Question         string
	QuestionTypes    []string
	Difficulty       string
	NumQuestions     int
	ImprovementAreas []string
	TargetRole       string
	HighlightSkills  string
}

// BuildPrompt renders the instruction text for task. It has no side effects
// and the same inputs always produce the same prompt.
func BuildPrompt(task Task, p Params) (string, error) {
	if strings.TrimSpace(p.ResumeText) == "" {
		return "", fmt.Errorf("%w: resume text (task=%s)", ErrMissingParam, task)
	}

	switch task {
	case TaskScore:
		return render(promptScore,
			"{{RESUME_TEXT}}", p.ResumeText,
			"{{JOB_CONTEXT}}", p.JobContext,
		), nil
	case TaskAnswerQuestion:
		return render(promptAnswerQuestion,
			"{{RESUME_TEXT}}", p.ResumeText,
			"{{QUESTION}}", p.Question,
		), nil
	case TaskInterviewQuestions:
		if p.NumQuestions <= 0 {
			return "", fmt.Errorf("%w: question count must be positive (task=%s)", ErrMissingParam, task)
		}
		return render(promptInterviewQuestions,
			"{{NUM_QUESTIONS}}", strconv.Itoa(p.NumQuestions),
			"{{DIFFICULTY}}", p.Difficulty,
			"{{QUESTION_TYPES}}", strings.Join(p.QuestionTypes, ", "),
			"{{RESUME_TEXT}}", p.ResumeText,
			"{{TUPLE_NOTATION}}", TupleNotation,
		), nil
	case TaskSuggestImprovements:
		return render(promptSuggestImprovements,
			"{{IMPROVEMENT_AREAS}}", strings.Join(p.ImprovementAreas, ", "),
			"{{TARGET_ROLE}}", p.TargetRole,
			"{{RESUME_TEXT}}", p.ResumeText,
		), nil
	case TaskRewriteResume:
		return render(promptRewriteResume,
			"{{TARGET_ROLE}}", p.TargetRole,
			"{{HIGHLIGHT_SKILLS}}", p.HighlightSkills,
			"{{RESUME_TEXT}}", p.ResumeText,
		), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownTask, int(task))
	}
}

// render substitutes placeholders in one pass, so values are never re-expanded.
func render(template string, oldnew ...string) string {
	return strings.NewReplacer(oldnew...).Replace(template)
}
