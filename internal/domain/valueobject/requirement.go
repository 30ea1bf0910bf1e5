package valueobject

// Requirement is the derived lower bound a box must satisfy to possibly
// hold a set of products: the pointwise maximum of every product's
// rotation-invariant sorted dimension triple, plus the total weight.
//
// Satisfying the requirement is a necessary condition for fit, not a
// sufficient one; it is used to filter catalog queries, never to confirm
// packability.
type Requirement struct {
	// MinDims are the three required dimension bounds, ascending.
	MinDims [3]float64

	// TotalWeight is the sum of all product weights in kilograms.
	TotalWeight float64
}

// AggregateRequirement computes the Requirement for a set of products.
// The caller guarantees a non-empty input; an empty slice yields the
// zero Requirement.
//
// Parameters:
//   - products: the products to aggregate
//
// Returns:
//   - Requirement: pointwise-max sorted dimensions and summed weight
func AggregateRequirement(products []Product) Requirement {
	var req Requirement
	for _, p := range products {
		dims := p.SortedDims()
		for i := 0; i < 3; i++ {
			if dims[i] > req.MinDims[i] {
				req.MinDims[i] = dims[i]
			}
		}
		req.TotalWeight += p.Weight()
	}
	return req
}
