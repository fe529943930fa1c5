package repository

// Page is a limit/offset window over a listing ordered by the repository.
// Validation belongs to the service; repositories trust what they receive.
type Page struct {
	Limit  int
	Offset int
}

// Window reports the half-open index range [from, to) the page covers in a
// population of total rows, clamped to the population.
func (p Page) Window(total int) (from, to int) {
	from = p.Offset
	if from > total {
		from = total
	}
	to = from + p.Limit
	if to > total || to < from {
		to = total
	}
	return from, to
}
