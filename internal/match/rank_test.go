package match

import "testing"

func TestRankAssignsDenseRanks(t *testing.T) {
	t.Parallel()

	results := Rank([]*Report{
		{JDName: "a", OverallScore: 5},
		{JDName: "b", OverallScore: 8},
		{JDName: "c", OverallScore: 8},
	})

	if results[0].OverallScore != 8 || results[1].OverallScore != 8 || results[2].OverallScore != 5 {
		t.Fatalf("expected descending order, got %v %v %v",
			results[0].OverallScore, results[1].OverallScore, results[2].OverallScore)
	}

	if results[0].Rank != 1 || results[1].Rank != 1 {
		t.Fatalf("tied scores must share rank 1, got %d and %d", results[0].Rank, results[1].Rank)
	}
	if results[2].Rank != 3 {
		t.Fatalf("rank after a tie skips, expected 3, got %d", results[2].Rank)
	}
}

func TestRankSortsUnparseableLast(t *testing.T) {
	t.Parallel()

	results := Rank([]*Report{
		{JDName: "broken-1", OverallScore: ScoreUnparseable},
		{JDName: "mid", OverallScore: 6},
		{JDName: "top", OverallScore: 9},
		{JDName: "broken-2", OverallScore: ScoreUnparseable},
	})

	if results[0].JDName != "top" || results[0].Rank != 1 {
		t.Fatalf("expected top first with rank 1, got %s rank %d", results[0].JDName, results[0].Rank)
	}
	if results[1].JDName != "mid" || results[1].Rank != 2 {
		t.Fatalf("expected mid second with rank 2, got %s rank %d", results[1].JDName, results[1].Rank)
	}

	// Unparseable entries keep their relative input order at the tail.
	if results[2].JDName != "broken-1" || results[3].JDName != "broken-2" {
		t.Fatalf("unexpected tail order: %s, %s", results[2].JDName, results[3].JDName)
	}
	if results[2].Rank != 3 || results[3].Rank != 3 {
		t.Fatalf("unparseable entries share the rank after all scored ones, got %d and %d",
			results[2].Rank, results[3].Rank)
	}
}

func TestRankSingleEntry(t *testing.T) {
	t.Parallel()

	results := Rank([]*Report{{JDName: "only", OverallScore: 3}})
	if results[0].Rank != 1 {
		t.Fatalf("expected rank 1, got %d", results[0].Rank)
	}
}

func TestRankEmpty(t *testing.T) {
	t.Parallel()

	if got := Rank(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
