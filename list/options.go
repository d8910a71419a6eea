package list

// DefaultEstimatedExtent is the provisional extent used when Options leaves
// EstimatedExtent unset: one extent unit, which for terminal hosts is the
// single-row case.
const DefaultEstimatedExtent = 1

// Options configures an Engine. The zero value is usable: every item
// measures one unit, no prefetch margin, and the viewport starts at zero
// until the host supplies one through SetViewport.
type Options[T any] struct {
	// Measurer reports per-item extents. If nil, every item measures
	// EstimatedExtent.
	Measurer Measurer[T]

	// EstimatedExtent is the provisional extent used before a real
	// measurement completes, and the uniform extent when Measurer is nil.
	// Values <= 0 fall back to DefaultEstimatedExtent.
	EstimatedExtent int

	// PrefetchMargin is the extra extent rendered beyond each edge of the
	// viewport for smooth scrolling. Negative values are treated as 0.
	PrefetchMargin int

	// ViewportExtent is the initial viewport size along the scroll axis.
	// The host updates it later through SetViewport as layout changes.
	ViewportExtent int

	// SlotShape keys the recycle pool. Slots are reused only across
	// positions of the same shape. If nil, every position shares the zero
	// shape.
	SlotShape func(position int, item T) Shape
}

func (o *Options[T]) fill() {
	if o.EstimatedExtent <= 0 {
		o.EstimatedExtent = DefaultEstimatedExtent
	}
	if o.Measurer == nil {
		o.Measurer = Fixed[T](o.EstimatedExtent)
	}
	if o.PrefetchMargin < 0 {
		o.PrefetchMargin = 0
	}
	if o.ViewportExtent < 0 {
		o.ViewportExtent = 0
	}
}
