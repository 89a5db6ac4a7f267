package models

// SpreadCoverage represents the against-the-spread outcome for a game
type SpreadCoverage string

const (
	SpreadHomeCovered   SpreadCoverage = "HOME_COVERED"
	SpreadAwayCovered   SpreadCoverage = "AWAY_COVERED"
	SpreadHomeMissed    SpreadCoverage = "HOME_MISSED"
	SpreadAwayMissed    SpreadCoverage = "AWAY_MISSED"
	SpreadNotApplicable SpreadCoverage = "NOT_APPLICABLE"
)

// Covered reports whether the favorite beat the spread
func (s SpreadCoverage) Covered() bool {
	return s == SpreadHomeCovered || s == SpreadAwayCovered
}

// OUResult represents the over/under outcome for a game
type OUResult string

const (
	OUOver  OUResult = "OVER"
	OUUnder OUResult = "UNDER"
	OUPush  OUResult = "PUSH"
)

// DerivedLabel holds the outcome fields computed from a single GameRecord.
// Labels are ephemeral and recomputed on every pass.
type DerivedLabel struct {
	ActualSpread   int            `json:"actual_spread"`
	SpreadCoverage SpreadCoverage `json:"spread_coverage"`
	OUResult       OUResult       `json:"ou_result"`
}

// LabeledGame pairs a game record with its derived outcome label
type LabeledGame struct {
	GameRecord
	Label DerivedLabel `json:"label"`
}
