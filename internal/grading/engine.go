package grading

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/checkdaily/checkdaily/internal/anticheat"
	"github.com/checkdaily/checkdaily/internal/scenario"
)

var (
	ErrMissingPrompt = errors.New("missing prompt")
	ErrMissingAnswer = errors.New("missing answer")
)

// Engine is the single grading entry point. Requests are fully
// independent: no shared mutable state, no caching, safe for concurrent
// use.
type Engine struct {
	catalog *scenario.Catalog
	llm     *LLMGrader
	log     *zap.Logger
}

// NewEngine wires a grading engine. A nil llm selects the deterministic
// heuristic path for every request.
func NewEngine(cat *scenario.Catalog, llm *LLMGrader, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{catalog: cat, llm: llm, log: log}
}

// Grade validates the request, scores it, and applies the anti-cheat
// penalty. An error is returned only for invalid input or when the
// external grader call itself fails.
func (e *Engine) Grade(ctx context.Context, req GradeRequest) (GradeResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return GradeResult{}, ErrMissingPrompt
	}
	if strings.TrimSpace(req.Answer) == "" {
		return GradeResult{}, ErrMissingAnswer
	}

	var res GradeResult
	if e.llm == nil {
		res = e.heuristic(req)
	} else {
		raw, err := e.llm.Grade(ctx, req.ScenarioID, req.Prompt, req.Answer)
		if err != nil {
			return GradeResult{}, fmt.Errorf("grade %q: %w", req.ScenarioID, err)
		}
		if raw.Fallback {
			e.log.Warn("grader output unusable, substituted fallback rubric",
				zap.String("scenario", req.ScenarioID))
		}
		res = raw.Normalize()
	}

	flags := anticheat.Detect(req.Pasted, req.CPS)
	if flags == nil {
		flags = []string{}
	}
	res.Flags = flags
	ApplyPenalty(&res, flags)
	return res, nil
}

func (e *Engine) heuristic(req GradeRequest) GradeResult {
	score := HeuristicScore(e.catalog, req.ScenarioID, req.Answer)
	res := GradeResult{
		Score:    score,
		Band:     BandOf(score),
		Reasons:  []string{},
		Feedback: "Nice! Clear and compliant.",
		Flags:    []string{},
	}
	if score < 80 {
		res.Reasons = []string{ReasonDisclosureGap}
		res.Feedback = "Good start; mention exclusions and waiting period more clearly."
	}
	return res
}
