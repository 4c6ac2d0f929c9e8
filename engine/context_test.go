package engine

import "testing"

func TestAtomicDraw(t *testing.T) {
	cases := []struct {
		name           string
		start          CardContext
		draw, discard  int
		want           CardContext
	}{
		{
			name:  "regular draw",
			start: CardContext{CardsLeft: 17, CardsDiscarded: 0, ShuffleIndex: 0},
			draw:  3, discard: 2,
			want: CardContext{CardsLeft: 14, CardsDiscarded: 2, ShuffleIndex: 0},
		},
		{
			name:  "reshuffle when fewer than three would remain",
			start: CardContext{CardsLeft: 3, CardsDiscarded: 2, ShuffleIndex: 0},
			draw:  3, discard: 2,
			want: CardContext{CardsLeft: 5, CardsDiscarded: 0, ShuffleIndex: 1},
		},
		{
			name:  "draw leaving exactly three stays",
			start: CardContext{CardsLeft: 6, CardsDiscarded: 8, ShuffleIndex: 0},
			draw:  3, discard: 2,
			want: CardContext{CardsLeft: 3, CardsDiscarded: 10, ShuffleIndex: 0},
		},
		{
			name:  "top-deck draw",
			start: CardContext{CardsLeft: 5, CardsDiscarded: 4, ShuffleIndex: 1},
			draw:  1, discard: 0,
			want: CardContext{CardsLeft: 4, CardsDiscarded: 4, ShuffleIndex: 1},
		},
		{
			name:  "top-deck triggering reshuffle",
			start: CardContext{CardsLeft: 3, CardsDiscarded: 6, ShuffleIndex: 1},
			draw:  1, discard: 0,
			want: CardContext{CardsLeft: 9, CardsDiscarded: 0, ShuffleIndex: 2},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.start.AtomicDraw(c.draw, c.discard)
			if got != c.want {
				t.Fatalf("AtomicDraw(%d,%d) on %+v = %+v, want %+v",
					c.draw, c.discard, c.start, got, c.want)
			}
		})
	}
}

func TestStartingContext(t *testing.T) {
	cfg, err := NewStandardConfiguration(7, false)
	if err != nil {
		t.Fatalf("configuration failed: %v", err)
	}
	ctx := StartingContext(cfg)
	if ctx.CardsLeft != 17 || ctx.CardsDiscarded != 0 || ctx.ShuffleIndex != 0 {
		t.Fatalf("starting context = %+v", ctx)
	}
}
