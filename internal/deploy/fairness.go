package deploy

// EnsureFairness guarantees that at least one column receives no box in a batch,
// so the player always has somewhere to go. A column that is unarmed or whose
// ceiling is blocked already qualifies. Otherwise each column is disarmed on a coin
// flip, and if the flips disarm nothing one column is picked at random. It reports
// whether armed was changed.
func EnsureFairness(armed, open []bool, rng RandomSource) bool {
	if len(armed) == 0 {
		return false
	}
	for i := range armed {
		if !armed[i] || (i < len(open) && !open[i]) {
			return false
		}
	}

	disarmed := false
	for i := range armed {
		if rng.Bool() {
			armed[i] = false
			disarmed = true
		}
	}
	if !disarmed {
		armed[rng.Intn(len(armed))] = false
	}
	return true
}
