package grading

// suspicionNote is appended to feedback when anti-cheat flags fired.
const suspicionNote = " Note: this answer looks pasted or typed unnaturally fast; please resubmit in your own words."

// ApplyPenalty adjusts a result when suspicion flags are present: scores
// above 70 drop by 15 (floor 55), the band is recomputed, and the
// suspicion reason and feedback note are attached. Not idempotent; the
// engine calls it exactly once per request.
func ApplyPenalty(res *GradeResult, flags []string) {
	if len(flags) == 0 {
		return
	}
	if res.Score > 70 {
		res.Score -= 15
		if res.Score < 55 {
			res.Score = 55
		}
	}
	res.Band = BandOf(res.Score)
	if !containsString(res.Reasons, ReasonCopySuspicion) {
		res.Reasons = append(res.Reasons, ReasonCopySuspicion)
	}
	res.Feedback += suspicionNote
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
