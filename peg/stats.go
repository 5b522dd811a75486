package peg

// Stats counts the work done by a parser. A nil *Stats records nothing.
//
// Counters accumulate across parses so one Stats can be shared by several
// parsers when measuring a batch.
type Stats struct {
	// MatchAttempts counts calls into the memo table, including rule
	// references.
	MatchAttempts int
	// MemoHits counts attempts answered from the memo table.
	MemoHits int
	// GrowthRounds counts extra rounds run by left-recursive entries.
	GrowthRounds int
	// Recoveries counts successful recovery searches.
	Recoveries int
}

func (s *Stats) attempt() {
	if s != nil {
		s.MatchAttempts++
	}
}

func (s *Stats) hit() {
	if s != nil {
		s.MemoHits++
	}
}

func (s *Stats) grow() {
	if s != nil {
		s.GrowthRounds++
	}
}

func (s *Stats) recovered() {
	if s != nil {
		s.Recoveries++
	}
}

// Reset zeroes all counters.
func (s *Stats) Reset() {
	*s = Stats{}
}
