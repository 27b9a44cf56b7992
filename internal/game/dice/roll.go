package dice

// Between returns a uniform random int in [lo, hi].
//
// Precondition: src must be non-nil; lo <= hi.
// Postcondition: lo <= result <= hi.
func Between(src Source, lo, hi int) int {
	if lo > hi {
		panic("dice: Between called with lo > hi")
	}
	return lo + src.Intn(hi-lo+1)
}

// Check performs a probability check: it draws one value from src and reports
// whether it fell under chance. A chance <= 0 never succeeds; a chance >= 1
// always succeeds.
//
// Precondition: src must be non-nil.
func Check(src Source, chance float64) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 1 {
		return true
	}
	return src.Float64() < chance
}
