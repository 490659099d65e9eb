package loyalty

// Every 6th visit in a client's lifetime sequence is on the house.
const FreeEvery = 6

// IsFreeVisit reports whether the visit at the given offset from the client's
// current count is free. Offsets are 1-based: offset 1 is the next visit.
// The decision depends only on the pre-booking count and the offset, never on
// price or service.
func IsFreeVisit(visits, offset int) bool {
	return (visits+offset)%FreeEvery == 0
}

// PriceForBatch sums the unit price over offsets 1..batch, skipping the
// offsets whose visit index lands on a free visit.
func PriceForBatch(visits int, unit float64, batch int) float64 {
	var total float64
	for k := 1; k <= batch; k++ {
		if !IsFreeVisit(visits, k) {
			total += unit
		}
	}
	return total
}

// StampsFilled is the loyalty-card position in [0,5].
func StampsFilled(visits int) int {
	return visits % FreeEvery
}

// VisitsUntilFree counts paid visits remaining before the next free one.
// Zero means the very next visit is free.
func VisitsUntilFree(visits int) int {
	return FreeEvery - 1 - StampsFilled(visits)
}
