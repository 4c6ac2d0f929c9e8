package engine

// GameConfiguration fixes the table and board parameters for a session.
// It is validated at construction and re-validated after any interactive
// edit or load from disk.
type GameConfiguration struct {
	TableSize                  int
	NumRegularFascists         int
	InitialLiberalDeckPolicies int
	InitialFascistDeckPolicies int
	InitialPlacedLiberal       int
	InitialPlacedFascist       int
	// FascistBoard holds the presidential action unlocked by the 1st
	// through 5th fascist policy.
	FascistBoard [5]PresidentialAction
	HitlerZoneFascistPolicies  int
	VetoZoneFascistPolicies    int
}

func smallBoard() [5]PresidentialAction {
	return [5]PresidentialAction{
		{Kind: ActionNone},
		{Kind: ActionNone},
		{Kind: ActionTopDeckPeek},
		{Kind: ActionKill},
		{Kind: ActionKill},
	}
}

func mediumBoard() [5]PresidentialAction {
	return [5]PresidentialAction{
		{Kind: ActionNone},
		{Kind: ActionInvestigation},
		{Kind: ActionSpecialElection},
		{Kind: ActionKill},
		{Kind: ActionKill},
	}
}

func largeBoard() [5]PresidentialAction {
	return [5]PresidentialAction{
		{Kind: ActionInvestigation},
		{Kind: ActionInvestigation},
		{Kind: ActionSpecialElection},
		{Kind: ActionKill},
		{Kind: ActionKill},
	}
}

// NewStandardConfiguration builds the stock configuration for a table of
// the given size. The rebalanced variant plays a 10-card fascist deck on
// 6, 7 and 9 seats and starts the 6-seat board with one fascist policy
// already placed.
func NewStandardConfiguration(tableSize int, rebalanced bool) (GameConfiguration, error) {
	cfg := GameConfiguration{
		TableSize:                  tableSize,
		NumRegularFascists:         (tableSize-1)/2 - 1,
		InitialLiberalDeckPolicies: 6,
		InitialFascistDeckPolicies: 11,
		HitlerZoneFascistPolicies:  3,
		VetoZoneFascistPolicies:    5,
	}
	if rebalanced && (tableSize == 6 || tableSize == 7 || tableSize == 9) {
		cfg.InitialFascistDeckPolicies = 10
	}
	if rebalanced && tableSize == 6 {
		cfg.InitialPlacedFascist = 1
	}
	switch tableSize {
	case 5, 6:
		cfg.FascistBoard = smallBoard()
	case 7, 8:
		cfg.FascistBoard = mediumBoard()
	case 9, 10:
		cfg.FascistBoard = largeBoard()
	default:
		return GameConfiguration{}, &BadPlayerCountError{Count: tableSize}
	}
	return cfg, nil
}

// Validate checks every field against its documented bounds. The bounds
// mirror SecretHitler.io's table restrictions rather than anything
// inherent to the engine.
func (cfg GameConfiguration) Validate() error {
	switch {
	case cfg.TableSize < 5 || cfg.TableSize > 10:
		return &InvalidConfigurationError{Field: "TableSize"}
	case cfg.NumRegularFascists < 1 || cfg.NumRegularFascists >= cfg.TableSize/2:
		return &InvalidConfigurationError{Field: "NumRegularFascists"}
	case cfg.InitialLiberalDeckPolicies < 5 || cfg.InitialLiberalDeckPolicies > 8:
		return &InvalidConfigurationError{Field: "InitialLiberalDeckPolicies"}
	case cfg.InitialFascistDeckPolicies < 10 || cfg.InitialFascistDeckPolicies > 19:
		return &InvalidConfigurationError{Field: "InitialFascistDeckPolicies"}
	case cfg.InitialPlacedLiberal < 0 || cfg.InitialPlacedLiberal > 2:
		return &InvalidConfigurationError{Field: "InitialPlacedLiberal"}
	case cfg.InitialPlacedFascist < 0 || cfg.InitialPlacedFascist > 2:
		return &InvalidConfigurationError{Field: "InitialPlacedFascist"}
	case cfg.HitlerZoneFascistPolicies < 1 || cfg.HitlerZoneFascistPolicies > 5:
		return &InvalidConfigurationError{Field: "HitlerZoneFascistPolicies"}
	case cfg.VetoZoneFascistPolicies < 1 || cfg.VetoZoneFascistPolicies > 5:
		return &InvalidConfigurationError{Field: "VetoZoneFascistPolicies"}
	}
	return nil
}

// Assignments returns the memoized role-assignment population for this
// configuration.
func (cfg GameConfiguration) Assignments() []RoleAssignment {
	return GenerateRoleAssignments(cfg.TableSize, cfg.NumRegularFascists)
}

// PlayerExists reports whether the seat is part of the configured table.
func (cfg GameConfiguration) PlayerExists(p PlayerID) bool {
	return p >= 1 && int(p) <= cfg.TableSize
}
