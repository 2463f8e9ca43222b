package problemgen

// Request narrows generation of a single problem. Zero fields fall back
// to DefaultRequest values.
type Request struct {
	// Operator applies to arithmetic and word problems. OpMixed picks one
	// per problem.
	Operator Operator

	// Range bounds arithmetic operands and results.
	Range int

	// Tier selects the fraction generation policy.
	Tier Tier

	// Grade filters the word-problem template catalog.
	Grade int
}

// DefaultRequest returns the request used when the caller gives no hints.
func DefaultRequest() Request {
	return Request{
		Operator: OpMixed,
		Range:    20,
		Tier:     TierSameDenominator,
		Grade:    2,
	}
}

// WithDefaults fills zero fields from DefaultRequest.
func (r Request) WithDefaults() Request {
	def := DefaultRequest()
	if r.Operator == OpNone {
		r.Operator = def.Operator
	}
	if r.Range <= 0 {
		r.Range = def.Range
	}
	if !r.Tier.Valid() {
		r.Tier = def.Tier
	}
	if r.Grade <= 0 {
		r.Grade = def.Grade
	}
	return r
}

// Merge overlays the non-zero fields of hint onto r.
func (r Request) Merge(hint Request) Request {
	if hint.Operator != OpNone {
		r.Operator = hint.Operator
	}
	if hint.Range > 0 {
		r.Range = hint.Range
	}
	if hint.Tier.Valid() {
		r.Tier = hint.Tier
	}
	if hint.Grade > 0 {
		r.Grade = hint.Grade
	}
	return r
}
