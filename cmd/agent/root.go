package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"resume-agent/internal/bootstrap"
	"resume-agent/internal/extract"
	"resume-agent/internal/sessions"
	"resume-agent/internal/shared/config"
)

// newGenerator is replaced in tests.
var newGenerator = bootstrap.BuildGenerator

type options struct {
	resumePath   string
	jdPath       string
	requirements []string
	model        string
	provider     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "agent",
		Short:         "Analyze a resume against job requirements",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.resumePath, "resume", "", "Path to resume file (.pdf or .txt)")
	root.PersistentFlags().StringVar(&opts.jdPath, "jd", "", "Path to a job description file (overrides --requirements)")
	root.PersistentFlags().StringSliceVar(&opts.requirements, "requirements", nil, "Comma separated role requirements")
	root.PersistentFlags().StringVar(&opts.model, "model", "", "Model name (default from LLM_MODEL)")
	root.PersistentFlags().StringVar(&opts.provider, "provider", "", "LLM provider: gemini, openai or placeholder")

	root.AddCommand(
		newAnalyzeCmd(opts),
		newAskCmd(opts),
		newInterviewCmd(opts),
		newImproveCmd(opts),
		newRewriteCmd(opts),
	)
	return root
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: "Score the resume and list weaknesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *sessions.Session, result *sessions.AnalysisResult) error {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"result":      result,
					"cutoffScore": s.CutoffScore(),
					"meetsCutoff": result.MeetsCutoff(s.CutoffScore()),
				})
			})
		},
	}
}

func newAskCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about the resume",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			return withSession(cmd, opts, func(ctx context.Context, s *sessions.Session, _ *sessions.AnalysisResult) error {
				answer, err := s.AskQuestion(ctx, question)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), answer)
				return err
			})
		},
	}
}

func newInterviewCmd(opts *options) *cobra.Command {
	var (
		types      []string
		difficulty string
		count      int
	)
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Generate interview questions from the resume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *sessions.Session, _ *sessions.AnalysisResult) error {
				questions, err := s.GenerateInterviewQuestions(ctx, types, difficulty, count)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), questions)
			})
		},
	}
	cmd.Flags().StringSliceVar(&types, "types", []string{"Technical", "Behavioral"}, "Question types")
	cmd.Flags().StringVar(&difficulty, "difficulty", "Medium", "Question difficulty")
	cmd.Flags().IntVar(&count, "count", 5, "Number of questions")
	return cmd
}

func newImproveCmd(opts *options) *cobra.Command {
	var (
		areas      []string
		targetRole string
	)
	cmd := &cobra.Command{
		Use:   "improve",
		Short: "Suggest resume improvements per area",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *sessions.Session, _ *sessions.AnalysisResult) error {
				plan, err := s.ImproveResume(ctx, areas, targetRole)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), plan)
			})
		},
	}
	cmd.Flags().StringSliceVar(&areas, "areas", []string{"Skills Highlighting", "Experience", "Summary"}, "Improvement areas")
	cmd.Flags().StringVar(&targetRole, "target-role", "", "Role to tailor suggestions for")
	return cmd
}

func newRewriteCmd(opts *options) *cobra.Command {
	var (
		targetRole string
		highlight  string
	)
	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Rewrite the resume for a target role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd, opts, func(ctx context.Context, s *sessions.Session, _ *sessions.AnalysisResult) error {
				resume, err := s.GetImprovedResume(ctx, targetRole, highlight)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), resume)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&targetRole, "target-role", "", "Role to tailor the resume for")
	cmd.Flags().StringVar(&highlight, "highlight", "", "Skills to highlight")
	return cmd
}

// withSession analyzes the resume in a fresh session, runs fn and disposes the session.
func withSession(cmd *cobra.Command, opts *options, fn func(context.Context, *sessions.Session, *sessions.AnalysisResult) error) error {
	if strings.TrimSpace(opts.resumePath) == "" {
		return fmt.Errorf("--resume is required")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Load()
	if opts.provider != "" {
		cfg.LLMProvider = strings.ToLower(strings.TrimSpace(opts.provider))
	}
	if opts.model != "" {
		cfg.LLMModel = opts.model
	}

	resume, err := readDocument(opts.resumePath)
	if err != nil {
		return err
	}
	job := sessions.JobContext{Requirements: opts.requirements}
	if strings.TrimSpace(opts.jdPath) != "" {
		jd, err := readDocument(opts.jdPath)
		if err != nil {
			return err
		}
		job.Description = &jd
	}

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		return err
	}
	s := sessions.New(gen,
		sessions.WithModel(cfg.LLMModel),
		sessions.WithCutoffScore(cfg.CutoffScore),
		sessions.WithOwnedGenerator(),
	)
	defer s.Dispose()

	result, err := s.AnalyzeResume(ctx, resume, job)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", filepath.Base(opts.resumePath), err)
	}
	return fn(ctx, s, result)
}

func readDocument(path string) (extract.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return extract.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return extract.FromBytes(filepath.Base(path), data), nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
