package grading

// Band is the coarse risk-readiness classification derived from a score.
type Band string

const (
	BandGreen Band = "Green"
	BandAmber Band = "Amber"
	BandRed   Band = "Red"
)

// BandOf maps a 0-100 score onto a band. Total: every score lands in
// exactly one of the three bands.
func BandOf(score int) Band {
	switch {
	case score >= 80:
		return BandGreen
	case score >= 65:
		return BandAmber
	default:
		return BandRed
	}
}

// Reason codes attached to a grade to explain compliance deficiencies.
// The grader may only emit the first seven; the suspicion code is added
// by the penalty step alone.
const (
	ReasonDisclosureGap   = "Disclosure Gap"
	ReasonSuitabilityRisk = "Suitability Risk"
	ReasonKYCAMLRisk      = "KYC/AML Risk"
	ReasonObjectionGap    = "Objection Handling Gap"
	ReasonDataPrivacyRisk = "Data Privacy Risk"
	ReasonEmpathyGap      = "Empathy Gap"
	ReasonProcessGap      = "Process Adherence Gap"
	ReasonCopySuspicion   = "AI/Copy-Paste Suspicion"
)

// graderReasonCodes is the closed set a well-behaved grader may return.
// Anything outside it is dropped during normalization.
var graderReasonCodes = map[string]struct{}{
	ReasonDisclosureGap:   {},
	ReasonSuitabilityRisk: {},
	ReasonKYCAMLRisk:      {},
	ReasonObjectionGap:    {},
	ReasonDataPrivacyRisk: {},
	ReasonEmpathyGap:      {},
	ReasonProcessGap:      {},
}

// GradeRequest is one trainee submission: the scenario being answered,
// the prompt as shown to the trainee, the free-text answer, and optional
// client-reported typing telemetry.
type GradeRequest struct {
	ScenarioID string   `json:"scenarioId"`
	Prompt     string   `json:"prompt"`
	Answer     string   `json:"answer"`
	Pasted     *bool    `json:"pasted,omitempty"`
	CPS        *float64 `json:"cps,omitempty"`
}

// Rubric is the five-criterion structure the external grader fills in.
// Each criterion is scored 0, 1 or 2.
type Rubric struct {
	Accuracy int `json:"accuracy"`
	Clarity  int `json:"clarity"`
	Empathy  int `json:"empathy"`
	Data     int `json:"data"`
	NBA      int `json:"nba"`
}

// GradeResult is the canonical graded outcome returned to the caller.
type GradeResult struct {
	Score    int      `json:"score"`
	Band     Band     `json:"band"`
	Reasons  []string `json:"reasons"`
	Feedback string   `json:"feedback"`
	Flags    []string `json:"flags"`
}
