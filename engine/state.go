package engine

import "fmt"

// GovernmentInput carries the user-entered parameters of one elected
// government. The enacted policy and the conflict flag are derived from the
// claims, never entered directly.
type GovernmentInput struct {
	President              PlayerID
	Chancellor             PlayerID
	PresidentClaimedBlues  int
	ChancellorClaimedBlues int
	// Action parameters; which ones apply depends on the board slot the
	// government unlocks.
	ActionTarget  PlayerID
	ActionClaim   Policy
	PeekClaim     [3]Policy
	BurnDiscarded bool
}

// GameState is the session aggregate: the fixed configuration, the
// append-only election history and the manually asserted facts. All derived
// quantities (board counts, alive set, rotation, deck contexts) are
// recomputed from the log, so undo is a plain truncation.
type GameState struct {
	Config GameConfiguration

	// AssumePassiveHitler excludes assignments where Hitler actively
	// attacks (conflicts or fascist investigations).
	AssumePassiveHitler bool
	// AssumeNoFascistConflict excludes assignments that explain a conflict
	// by two fascist-team players attacking each other.
	AssumeNoFascistConflict bool

	manualFacts []Information
	history     []ElectionResult
	observers   []func(event string)
}

// NewGameState validates the configuration and starts an empty session.
// Both honesty relaxations start enabled; they match how the game is
// usually played and can be toggled per query.
func NewGameState(cfg GameConfiguration) (*GameState, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &GameState{
		Config:                  cfg,
		AssumePassiveHitler:     true,
		AssumeNoFascistConflict: true,
	}, nil
}

// Subscribe registers a callback invoked with a short description after
// every successful mutation.
func (gs *GameState) Subscribe(fn func(event string)) {
	gs.observers = append(gs.observers, fn)
}

func (gs *GameState) notify(format string, args ...interface{}) {
	event := fmt.Sprintf(format, args...)
	for _, fn := range gs.observers {
		fn(event)
	}
}

// boardState is the replay accumulator for the derived game state.
type boardState struct {
	dead            PlayerSet
	liberalPolicies int
	fascistPolicies int
	context         CardContext
	// rotation is the seat of the last president elected in regular
	// rotation; zero before the first government.
	rotation PlayerID
	// special is the pending special-election appointee, zero if none.
	special PlayerID
}

func (gs *GameState) replay(prefix int) boardState {
	st := boardState{
		dead:            PlayerSet{},
		liberalPolicies: gs.Config.InitialPlacedLiberal,
		fascistPolicies: gs.Config.InitialPlacedFascist,
		context:         StartingContext(gs.Config),
	}
	for _, er := range gs.history[:prefix] {
		st.apply(gs.Config, er)
	}
	return st
}

func (st *boardState) nextAlive(seat PlayerID, tableSize int) PlayerID {
	for i := 0; i < tableSize; i++ {
		seat = seat%PlayerID(tableSize) + 1
		if !st.dead[seat] {
			return seat
		}
	}
	return 0
}

func (st *boardState) apply(cfg GameConfiguration, er ElectionResult) {
	drawn, discarded := er.DrawnDiscarded()
	st.context = st.context.AtomicDraw(drawn, discarded)

	if er.Kind == ResultTopDeck {
		if er.TopDeckPolicy == PolicyLiberal {
			st.liberalPolicies++
		} else {
			st.fascistPolicies++
		}
		// The three failed candidacies leading up to the top-deck each
		// advanced the rotation; the term-limit slate is wiped with them.
		if st.rotation != 0 {
			for i := 0; i < 3; i++ {
				st.rotation = st.nextAlive(st.rotation, cfg.TableSize)
			}
		}
		st.special = 0
		return
	}

	g := er.Gov
	if st.special != 0 && g.President == st.special {
		st.special = 0
	} else {
		st.rotation = g.President
	}
	if g.PolicyPassed == PolicyLiberal {
		st.liberalPolicies++
	} else {
		st.fascistPolicies++
	}
	switch g.Action.Kind {
	case ActionKill:
		st.dead[g.Action.Target] = true
	case ActionSpecialElection:
		st.special = g.Action.Target
	}
}

// AliveCount is the number of seats still in the game.
func (gs *GameState) AliveCount() int {
	st := gs.replay(len(gs.history))
	return gs.Config.TableSize - len(st.dead)
}

// DeadPlayers returns the killed seats in seat order.
func (gs *GameState) DeadPlayers() []PlayerID {
	st := gs.replay(len(gs.history))
	return st.dead.sorted()
}

// CurrentContext is the deck context before the next draw.
func (gs *GameState) CurrentContext() CardContext {
	return gs.replay(len(gs.history)).context
}

// BoardCounts returns the enacted liberal and fascist policy counts,
// including any initially placed policies.
func (gs *GameState) BoardCounts() (liberal, fascist int) {
	st := gs.replay(len(gs.history))
	return st.liberalPolicies, st.fascistPolicies
}

// ExpectedPresident is the next presidential candidate under round-robin
// rotation with death skipping and special-election override. Zero before
// the first government, when any seat may preside.
func (gs *GameState) ExpectedPresident() PlayerID {
	st := gs.replay(len(gs.history))
	if st.special != 0 {
		return st.special
	}
	if st.rotation == 0 {
		return 0
	}
	return st.nextAlive(st.rotation, gs.Config.TableSize)
}

// GameOver reports whether a policy track is complete and which side won.
// Five liberal policies win for the liberals, six fascist policies for the
// fascists. Hitler-dependent endings are invisible to the tracker.
func (gs *GameState) GameOver() (winner Policy, over bool) {
	st := gs.replay(len(gs.history))
	switch {
	case st.fascistPolicies >= 6:
		return PolicyFascist, true
	case st.liberalPolicies >= 5:
		return PolicyLiberal, true
	}
	return 0, false
}

func (gs *GameState) requireAlive(p PlayerID, st boardState) error {
	if !gs.Config.PlayerExists(p) {
		return &BadPlayerIDError{ID: p}
	}
	if st.dead[p] {
		return &IneligibleError{Player: p, Reason: "dead"}
	}
	return nil
}

// AddGovernment validates and appends one elected government. The enacted
// policy follows the claims: a fascist policy is recorded exactly when the
// president claimed no blues or the chancellor claimed none against a
// president who claimed at least one (a conflict). The mutation is rolled
// back whole if it would make the fact database contradictory.
func (gs *GameState) AddGovernment(in GovernmentInput) error {
	if _, over := gs.GameOver(); over {
		return ErrGameOver
	}
	st := gs.replay(len(gs.history))

	if err := gs.requireAlive(in.President, st); err != nil {
		return err
	}
	if err := gs.requireAlive(in.Chancellor, st); err != nil {
		return err
	}
	if in.Chancellor == in.President {
		return &IneligibleError{Player: in.Chancellor, Reason: "the president cannot be their own chancellor"}
	}
	if expected := gs.ExpectedPresident(); expected != 0 && in.President != expected {
		return &IneligibleError{Player: in.President,
			Reason: fmt.Sprintf("not the presidential candidate in rotation (expected player %d)", expected)}
	}
	if in.PresidentClaimedBlues < 0 || in.PresidentClaimedBlues > 3 {
		return &ClaimOutOfRangeError{Claimed: in.PresidentClaimedBlues, Window: 3}
	}
	if in.ChancellorClaimedBlues < 0 || in.ChancellorClaimedBlues > 2 {
		return &ClaimOutOfRangeError{Claimed: in.ChancellorClaimedBlues, Window: 2}
	}
	if len(gs.history) > 0 {
		if last := gs.history[len(gs.history)-1]; last.Kind == ResultElection {
			if in.Chancellor == last.Gov.Chancellor {
				return &IneligibleError{Player: in.Chancellor,
					Reason: "served as chancellor in the previous government"}
			}
			if gs.AliveCount() > 5 && in.Chancellor == last.Gov.President {
				return &IneligibleError{Player: in.Chancellor,
					Reason: "served as president in the previous government"}
			}
		}
	}

	conflict := in.PresidentClaimedBlues > 0 && in.ChancellorClaimedBlues == 0
	policy := PolicyLiberal
	if conflict || in.PresidentClaimedBlues == 0 {
		policy = PolicyFascist
	}

	action := PresidentialAction{Kind: ActionNone}
	if policy == PolicyFascist && st.fascistPolicies < 5 {
		slot := gs.Config.FascistBoard[st.fascistPolicies]
		action.Kind = slot.Kind
		switch slot.Kind {
		case ActionKill, ActionSpecialElection:
			if err := gs.requireAlive(in.ActionTarget, st); err != nil {
				return err
			}
			if slot.Kind == ActionSpecialElection && in.ActionTarget == in.President {
				return &IneligibleError{Player: in.ActionTarget,
					Reason: "the president cannot appoint themselves"}
			}
			action.Target = in.ActionTarget
		case ActionInvestigation, ActionRevealParty:
			if err := gs.requireAlive(in.ActionTarget, st); err != nil {
				return err
			}
			if in.ActionTarget == in.President {
				return &IneligibleError{Player: in.ActionTarget,
					Reason: "the president cannot investigate themselves"}
			}
			action.Target = in.ActionTarget
			action.Claim = in.ActionClaim
		case ActionTopDeckPeek:
			action.PeekClaim = in.PeekClaim
		case ActionPeekAndBurn:
			action.Claim = in.ActionClaim
			action.Discarded = in.BurnDiscarded
			action.PeekContext = st.context.AtomicDraw(3, 2)
		}
	}

	entry := ElectionResult{
		Kind:    ResultElection,
		Context: st.context,
		Gov: ElectedGovernment{
			President:                    in.President,
			Chancellor:                   in.Chancellor,
			PresidentClaimedBlues:        in.PresidentClaimedBlues,
			ChancellorClaimedBlues:       in.ChancellorClaimedBlues,
			Conflict:                     conflict,
			PolicyPassed:                 policy,
			Action:                       action,
			ChancellorConfirmedNotHitler: st.fascistPolicies >= gs.Config.HitlerZoneFascistPolicies,
		},
	}
	gs.history = append(gs.history, entry)
	if err := gs.checkConsistent(); err != nil {
		gs.history = gs.history[:len(gs.history)-1]
		return err
	}
	gs.notify("recorded government of president %d and chancellor %d passing a %s policy",
		in.President, in.Chancellor, policy)
	return nil
}

// AddTopDeck appends a forced top-card enactment after three failed
// elections. Policies enacted this way trigger no presidential action.
func (gs *GameState) AddTopDeck(policy Policy) error {
	if _, over := gs.GameOver(); over {
		return ErrGameOver
	}
	st := gs.replay(len(gs.history))
	gs.history = append(gs.history, ElectionResult{
		Kind:          ResultTopDeck,
		Context:       st.context,
		TopDeckPolicy: policy,
	})
	if err := gs.checkConsistent(); err != nil {
		gs.history = gs.history[:len(gs.history)-1]
		return err
	}
	gs.notify("recorded top-decked %s policy", policy)
	return nil
}

// PopElection removes the most recent history entry.
func (gs *GameState) PopElection() error {
	if len(gs.history) == 0 {
		return ErrNoHistory
	}
	gs.history = gs.history[:len(gs.history)-1]
	gs.notify("removed the most recent election entry")
	return nil
}

// AddFact appends a manually asserted fact, rejecting it whole if any
// referenced seat is unknown or the database would become contradictory.
func (gs *GameState) AddFact(in Information) error {
	for _, p := range in.Players() {
		if !gs.Config.PlayerExists(p) {
			return &BadPlayerIDError{ID: p}
		}
	}
	gs.manualFacts = append(gs.manualFacts, in)
	if err := gs.checkConsistent(); err != nil {
		gs.manualFacts = gs.manualFacts[:len(gs.manualFacts)-1]
		return err
	}
	gs.notify("recorded fact #%d", len(gs.manualFacts)-1)
	return nil
}

// RemoveFact deletes the manual fact at the given zero-based index.
// Derived facts cannot be removed; they disappear with their history entry.
func (gs *GameState) RemoveFact(index int) error {
	if index < 0 || index >= len(gs.manualFacts) {
		return &BadFactIndexError{Index: index}
	}
	gs.manualFacts = append(gs.manualFacts[:index], gs.manualFacts[index+1:]...)
	gs.notify("removed fact #%d", index)
	return nil
}

// ManualFacts returns a copy of the asserted fact list.
func (gs *GameState) ManualFacts() []Information {
	out := make([]Information, len(gs.manualFacts))
	copy(out, gs.manualFacts)
	return out
}

// History returns a copy of the election log.
func (gs *GameState) History() []ElectionResult {
	out := make([]ElectionResult, len(gs.history))
	copy(out, gs.history)
	return out
}

// AllFacts is the manual fact list plus everything derivable from the
// election history.
func (gs *GameState) AllFacts() []Information {
	derived := CollectInformation(gs.Config, gs.history)
	out := make([]Information, 0, len(gs.manualFacts)+len(derived))
	out = append(out, gs.manualFacts...)
	out = append(out, derived...)
	return out
}

// FilteredAssignments runs the full population through every fact under the
// session's relaxation settings.
func (gs *GameState) FilteredAssignments() ([]RoleAssignment, error) {
	return FilterAssignments(gs.Config.Assignments(), gs.AllFacts(),
		gs.AssumePassiveHitler, gs.AssumeNoFascistConflict)
}

func (gs *GameState) checkConsistent() error {
	_, err := gs.FilteredAssignments()
	return err
}

// Snapshot is the serializable form of a session. Derived state is not
// captured; it is replayed from the history on restore.
type Snapshot struct {
	Config                  GameConfiguration `json:"config"`
	AssumePassiveHitler     bool              `json:"assumePassiveHitler"`
	AssumeNoFascistConflict bool              `json:"assumeNoFascistConflict"`
	ManualFacts             []Information     `json:"manualFacts,omitempty"`
	History                 []ElectionResult  `json:"history,omitempty"`
}

// Snapshot captures the session for persistence.
func (gs *GameState) Snapshot() Snapshot {
	return Snapshot{
		Config:                  gs.Config,
		AssumePassiveHitler:     gs.AssumePassiveHitler,
		AssumeNoFascistConflict: gs.AssumeNoFascistConflict,
		ManualFacts:             gs.ManualFacts(),
		History:                 gs.History(),
	}
}

// RestoreGameState rebuilds a session from a snapshot, re-validating the
// configuration and the fact database: stored data is not trusted to still
// satisfy the invariants it was saved under.
func RestoreGameState(s Snapshot) (*GameState, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}
	gs := &GameState{
		Config:                  s.Config,
		AssumePassiveHitler:     s.AssumePassiveHitler,
		AssumeNoFascistConflict: s.AssumeNoFascistConflict,
		manualFacts:             append([]Information(nil), s.ManualFacts...),
		history:                 append([]ElectionResult(nil), s.History...),
	}
	if err := gs.checkConsistent(); err != nil {
		return nil, err
	}
	return gs, nil
}
