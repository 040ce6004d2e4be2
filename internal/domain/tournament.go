package domain

// Phase is the single discrete stage of the tournament lifecycle. Phases only
// ever move forward; a reset is the only way back to PhaseRegistration.
type Phase string

const (
	PhaseRegistration Phase = "registration"
	PhaseVoting       Phase = "voting"
	PhaseTeamNaming   Phase = "team_naming"
	PhaseDraft        Phase = "draft"
	PhaseTeamCreation Phase = "team_creation"
	PhaseMatchSetup   Phase = "match_setup"
	PhaseActive       Phase = "active"
)

// phaseCaptainNaming appeared in older persisted blobs between voting and
// team naming. It is folded into PhaseTeamNaming on load.
const phaseCaptainNaming Phase = "captain_naming"

// Roster keys in Teams, TeamNames and TeamPairings.
const (
	TeamKeyCaptain1 = "captain1"
	TeamKeyCaptain2 = "captain2"
)

// GhostPlayer is the sentinel appended when registration closes on an odd
// player count. It is drafted and paired like any other player.
const GhostPlayer = "ghost"

type MatchResult string

const (
	ResultTeam1 MatchResult = "team1"
	ResultTeam2 MatchResult = "team2"
	ResultTie   MatchResult = "tie"
)

// ValidResult reports whether r is a recordable match outcome.
func ValidResult(r MatchResult) bool {
	return r == ResultTeam1 || r == ResultTeam2 || r == ResultTie
}

// Match is one scheduled game between a sub-team from each roster.
// Result stays nil until the match is scored.
type Match struct {
	ID       int          `json:"id"`
	Team1    []string     `json:"team1"`
	Team2    []string     `json:"team2"`
	Captain1 string       `json:"captain1"`
	Captain2 string       `json:"captain2"`
	Result   *MatchResult `json:"result"`
}

// DraftPick is one append-only audit entry of the draft.
type DraftPick struct {
	Pick    int    `json:"pick"`
	Captain string `json:"captain"`
	Player  string `json:"player"`
}

// TournamentState is the single shared aggregate behind the whole tournament.
// It is loaded, mutated and saved wholesale on every action; the service layer
// serializes those cycles.
type TournamentState struct {
	Players          []string              `json:"players"`
	Phase            Phase                 `json:"phase"`
	VotingOpen       bool                  `json:"votingOpen"`
	CaptainVotes     map[string]int        `json:"captainVotes"`
	VotedCallers     map[string]bool       `json:"votedCallers"`
	Captains         []string              `json:"captains"`
	AvailablePlayers []string              `json:"availablePlayers"`
	Teams            map[string][]string   `json:"teams"`
	DraftOrder       []DraftPick           `json:"draftOrder"`
	CurrentDraftTurn int                   `json:"currentDraftTurn"`
	TeamNames        map[string]string     `json:"teamNames"`
	TeamPairings     map[string][][]string `json:"teamPairings"`
	Matches          []Match               `json:"matches"`
}

// NewTournamentState returns the fresh registration-phase aggregate.
func NewTournamentState() *TournamentState {
	return &TournamentState{
		Players:          []string{},
		Phase:            PhaseRegistration,
		CaptainVotes:     map[string]int{},
		VotedCallers:     map[string]bool{},
		Captains:         []string{},
		AvailablePlayers: []string{},
		Teams:            map[string][]string{},
		DraftOrder:       []DraftPick{},
		TeamNames:        map[string]string{},
		TeamPairings:     map[string][][]string{},
		Matches:          []Match{},
	}
}

// Normalize repairs a state decoded from a persisted blob: nil collections
// become empty and legacy phase values are folded into their current names.
func (s *TournamentState) Normalize() {
	if s.Players == nil {
		s.Players = []string{}
	}
	if s.Phase == phaseCaptainNaming {
		s.Phase = PhaseTeamNaming
	}
	if s.CaptainVotes == nil {
		s.CaptainVotes = map[string]int{}
	}
	if s.VotedCallers == nil {
		s.VotedCallers = map[string]bool{}
	}
	if s.Captains == nil {
		s.Captains = []string{}
	}
	if s.AvailablePlayers == nil {
		s.AvailablePlayers = []string{}
	}
	if s.Teams == nil {
		s.Teams = map[string][]string{}
	}
	if s.DraftOrder == nil {
		s.DraftOrder = []DraftPick{}
	}
	if s.TeamNames == nil {
		s.TeamNames = map[string]string{}
	}
	if s.TeamPairings == nil {
		s.TeamPairings = map[string][][]string{}
	}
	if s.Matches == nil {
		s.Matches = []Match{}
	}
}

// HasPlayer reports whether name is a registered player.
func (s *TournamentState) HasPlayer(name string) bool {
	return s.RegistrationIndex(name) >= 0
}

// RegistrationIndex returns the position of name in registration order,
// or -1 when name is not registered.
func (s *TournamentState) RegistrationIndex(name string) int {
	for i, p := range s.Players {
		if p == name {
			return i
		}
	}
	return -1
}

// CaptainKeyForTurn maps a zero-based draft turn to the roster key that picks
// on it. Captain 1 opens with a solo pick, then the sides alternate in pairs:
// 1, 2, 2, 1, 1, 2, 2, 1, ...  Both captains already hold themselves as their
// round-zero member, so the opening solo pick keeps the rosters level.
func CaptainKeyForTurn(turn int) string {
	if turn == 0 {
		return TeamKeyCaptain1
	}
	switch turn % 4 {
	case 1, 2:
		return TeamKeyCaptain2
	default:
		return TeamKeyCaptain1
	}
}

// Standings is the aggregate of scored matches. Unscored matches contribute
// to no counter.
type Standings struct {
	Captain1Wins int `json:"captain1Wins"`
	Captain2Wins int `json:"captain2Wins"`
	Ties         int `json:"ties"`
}

// Standings folds the recorded match results into win/tie totals.
func (s *TournamentState) Standings() Standings {
	var out Standings
	for _, m := range s.Matches {
		if m.Result == nil {
			continue
		}
		switch *m.Result {
		case ResultTeam1:
			out.Captain1Wins++
		case ResultTeam2:
			out.Captain2Wins++
		case ResultTie:
			out.Ties++
		}
	}
	return out
}
