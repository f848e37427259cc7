package driven

import "github.com/prospecta-labs/prospecta-core/internal/core/domain"

// LeadProcessor is one stage of the result post-processing pipeline.
// Stages run server-side over a search's full lead list before it is
// returned to clients.
type LeadProcessor interface {
	// Name identifies the processor in logs and diagnostics
	Name() string

	// Order determines position in the pipeline (lower runs first)
	Order() int

	// Process transforms the lead list. Implementations may filter,
	// reorder or rewrite entries but must not mutate the inputs.
	Process(leads []*domain.Lead) []*domain.Lead
}

// LeadPipeline chains lead processors in order
type LeadPipeline interface {
	// Add appends a processor; the pipeline re-sorts by Order before the
	// next Process call
	Add(p LeadProcessor)

	// Process applies all processors in order
	Process(leads []*domain.Lead) []*domain.Lead

	// List returns processor names in pipeline order
	List() []string
}
