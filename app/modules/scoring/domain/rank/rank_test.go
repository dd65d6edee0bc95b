package rank

import "testing"

func TestWithTies(t *testing.T) {
	t.Run("ties share rank and next rank skips the block", func(t *testing.T) {
		ranked := WithTies([]float64{3, 3, 4, 5}, func(v float64) float64 { return v }, Lower)

		wantRanks := []int{1, 1, 3, 4}
		wantTies := []int{2, 2, 1, 1}
		for i, r := range ranked {
			if r.Rank != wantRanks[i] {
				t.Fatalf("rank[%d] = %d, want %d", i, r.Rank, wantRanks[i])
			}
			if r.TieCount != wantTies[i] {
				t.Fatalf("tieCount[%d] = %d, want %d", i, r.TieCount, wantTies[i])
			}
		}
	})

	t.Run("higher direction reverses the order", func(t *testing.T) {
		ranked := WithTies([]float64{3, 5, 4}, func(v float64) float64 { return v }, Higher)
		if ranked[0].Score != 5 || ranked[0].Rank != 1 {
			t.Fatalf("expected 5 ranked first, got %+v", ranked[0])
		}
		if ranked[2].Score != 3 || ranked[2].Rank != 3 {
			t.Fatalf("expected 3 ranked last, got %+v", ranked[2])
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		ranked := WithTies(nil, func(v float64) float64 { return v }, Lower)
		if len(ranked) != 0 {
			t.Fatalf("expected empty, got %d items", len(ranked))
		}
	})

	t.Run("stable for equal scores", func(t *testing.T) {
		ranked := WithTies([]string{"a", "b"}, func(string) float64 { return 4 }, Lower)
		if ranked[0].Item != "a" || ranked[1].Item != "b" {
			t.Fatalf("tie broke input order: %+v", ranked)
		}
	})
}

func TestWinnersAndAtRank(t *testing.T) {
	ranked := WithTies([]float64{4, 4, 5}, func(v float64) float64 { return v }, Lower)

	if got := len(Winners(ranked)); got != 2 {
		t.Fatalf("expected 2 winners, got %d", got)
	}
	if got := len(AtRank(ranked, 3)); got != 1 {
		t.Fatalf("expected 1 item at rank 3, got %d", got)
	}
	if !HasTieAt(ranked, 1) {
		t.Fatal("expected tie at rank 1")
	}
	if HasTieAt(ranked, 3) {
		t.Fatal("expected no tie at rank 3")
	}
}
