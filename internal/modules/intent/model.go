// README: Travel intent extracted from a free-text question.
package intent

import "greenroute/internal/types"

// TravelIntent is the strictly-typed result of extraction. It is built once
// at the provider boundary and never mutated afterwards. Labels may be empty
// and Constraints may be nil when the model output was unusable.
type TravelIntent struct {
	StartLabel       string
	DestinationLabel string
	Constraints      []types.ConstraintSpec
}
