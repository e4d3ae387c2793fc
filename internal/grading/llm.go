package grading

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/checkdaily/checkdaily/internal/provider"
)

const graderSystemPrompt = `You are a QA grader for Term Life insurance.
Return STRICT JSON only with keys: rubric:{accuracy,clarity,empathy,data,nba}, feedback, reason_codes.
Each rubric key must be 0,1,2. reason_codes must be from this list only:
["Disclosure Gap","Suitability Risk","KYC/AML Risk","Objection Handling Gap","Data Privacy Risk","Empathy Gap","Process Adherence Gap"].`

// graderTemperature keeps run-to-run variance low.
const graderTemperature = 0.2

// RawGrade is the grader's verdict before normalization. Fallback marks
// the canonical substitute used when the grader's output was not usable
// JSON; callers see a plausible grade either way.
type RawGrade struct {
	Rubric      Rubric
	Feedback    string
	ReasonCodes []string
	Fallback    bool
}

// LLMGrader scores answers through an external chat-completions grader.
type LLMGrader struct {
	Provider provider.Provider
	Model    string
}

// Grade sends one grading call. A transport failure is returned as an
// error; unusable response content degrades silently to the canonical
// fallback rubric.
func (g *LLMGrader) Grade(ctx context.Context, scenarioID, prompt, answer string) (RawGrade, error) {
	user := fmt.Sprintf("Moment: %s\nPrompt: %s\nAgent answer: \"\"\"%s\"\"\"", scenarioID, prompt, answer)
	resp, err := g.Provider.ChatCompletion(ctx, &provider.Request{
		Model:       g.Model,
		Temperature: graderTemperature,
		JSONOnly:    true,
		Messages: []provider.Message{
			{Role: "system", Content: graderSystemPrompt},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return RawGrade{}, fmt.Errorf("grader call: %w", err)
	}

	var parsed struct {
		Rubric      *Rubric         `json:"rubric"`
		Feedback    string          `json:"feedback"`
		ReasonCodes json.RawMessage `json:"reason_codes"`
	}
	if err := json.Unmarshal([]byte(resp.Content), &parsed); err != nil || parsed.Rubric == nil {
		return fallbackGrade(), nil
	}
	raw := RawGrade{Rubric: *parsed.Rubric, Feedback: parsed.Feedback}
	// reason_codes that is not a string array yields no reasons, not an error.
	_ = json.Unmarshal(parsed.ReasonCodes, &raw.ReasonCodes)
	return raw, nil
}

func fallbackGrade() RawGrade {
	return RawGrade{
		Rubric:      Rubric{Accuracy: 1, Clarity: 1, Empathy: 1, Data: 1, NBA: 1},
		Feedback:    "Parsed fallback.",
		ReasonCodes: []string{ReasonProcessGap},
		Fallback:    true,
	}
}

// Normalize converts a raw grader verdict into the canonical result:
// score from the rubric sum scaled to 0-100, at most two reason codes
// kept after filtering to the closed enumeration.
func (r RawGrade) Normalize() GradeResult {
	raw := clampCriterion(r.Rubric.Accuracy) +
		clampCriterion(r.Rubric.Clarity) +
		clampCriterion(r.Rubric.Empathy) +
		clampCriterion(r.Rubric.Data) +
		clampCriterion(r.Rubric.NBA)
	score := int(math.Round(float64(raw) / 10 * 100))

	reasons := make([]string, 0, 2)
	seen := map[string]struct{}{}
	for _, code := range r.ReasonCodes {
		if _, ok := graderReasonCodes[code]; !ok {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		reasons = append(reasons, code)
		if len(reasons) == 2 {
			break
		}
	}

	feedback := r.Feedback
	if feedback == "" {
		feedback = "Thank you."
	}
	return GradeResult{
		Score:    score,
		Band:     BandOf(score),
		Reasons:  reasons,
		Feedback: feedback,
		Flags:    []string{},
	}
}

func clampCriterion(v int) int {
	if v < 0 {
		return 0
	}
	if v > 2 {
		return 2
	}
	return v
}
