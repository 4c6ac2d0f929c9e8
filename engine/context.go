package engine

// CardContext tracks the draw pile at one point of the game: cards still in
// the current shuffle's deck, cards discarded but not yet reshuffled, and
// the index of the current shuffle.
type CardContext struct {
	CardsLeft      int
	CardsDiscarded int
	ShuffleIndex   int
}

// StartingContext is the context before the first draw of a game.
func StartingContext(cfg GameConfiguration) CardContext {
	return CardContext{
		CardsLeft: cfg.InitialLiberalDeckPolicies + cfg.InitialFascistDeckPolicies,
	}
}

// AtomicDraw advances the context past one draw-and-discard step. When the
// draw would leave fewer than three cards, the discard pile is shuffled
// back in instead: the deck regains the discarded cards, the discard pile
// resets and the shuffle index increments.
func (c CardContext) AtomicDraw(draw, discard int) CardContext {
	if c.CardsLeft-draw < 3 {
		return CardContext{
			CardsLeft:      c.CardsLeft + c.CardsDiscarded,
			CardsDiscarded: 0,
			ShuffleIndex:   c.ShuffleIndex + 1,
		}
	}
	return CardContext{
		CardsLeft:      c.CardsLeft - draw,
		CardsDiscarded: c.CardsDiscarded + discard,
		ShuffleIndex:   c.ShuffleIndex,
	}
}
