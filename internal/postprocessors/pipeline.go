package postprocessors

import (
	"sort"
	"sync"

	"github.com/prospecta-labs/prospecta-core/internal/core/domain"
	"github.com/prospecta-labs/prospecta-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.LeadPipeline = (*Pipeline)(nil)

// Pipeline implements LeadPipeline.
// It chains lead processors in Order() sequence over a search's result list.
type Pipeline struct {
	mu         sync.RWMutex
	processors []driven.LeadProcessor
	sorted     bool
}

// NewPipeline creates a new empty pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		processors: make([]driven.LeadProcessor, 0),
	}
}

// DefaultPipeline creates a pipeline with the default processors.
func DefaultPipeline() *Pipeline {
	p := NewPipeline()
	p.Add(NewSorter())
	p.Add(NewDeduper())
	return p
}

// Add adds a processor to the pipeline.
// Processors are sorted by Order() before processing.
func (p *Pipeline) Add(processor driven.LeadProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processors = append(p.processors, processor)
	p.sorted = false
}

// Process applies all processors in order.
func (p *Pipeline) Process(leads []*domain.Lead) []*domain.Lead {
	p.mu.Lock()
	if !p.sorted {
		sort.SliceStable(p.processors, func(i, j int) bool {
			return p.processors[i].Order() < p.processors[j].Order()
		})
		p.sorted = true
	}
	processors := make([]driven.LeadProcessor, len(p.processors))
	copy(processors, p.processors)
	p.mu.Unlock()

	for _, proc := range processors {
		leads = proc.Process(leads)
	}
	return leads
}

// List returns processor names in order.
func (p *Pipeline) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, len(p.processors))
	for i, proc := range p.processors {
		names[i] = proc.Name()
	}
	return names
}

// Sorter orders leads newest first. Webhook deliveries can commit out of
// order under the queued worker, so the stored order is not guaranteed.
type Sorter struct{}

// Verify interface compliance
var _ driven.LeadProcessor = (*Sorter)(nil)

// NewSorter creates a sorter.
func NewSorter() *Sorter {
	return &Sorter{}
}

func (s *Sorter) Name() string { return "sorter" }
func (s *Sorter) Order() int   { return 0 }

func (s *Sorter) Process(leads []*domain.Lead) []*domain.Lead {
	out := make([]*domain.Lead, len(leads))
	copy(out, leads)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Deduper drops leads whose phone or email repeats an earlier entry. The
// scrape engine revisits listings across pages and duplicates are common.
// Runs after the sorter so the newest occurrence wins.
type Deduper struct{}

// Verify interface compliance
var _ driven.LeadProcessor = (*Deduper)(nil)

// NewDeduper creates a deduper.
func NewDeduper() *Deduper {
	return &Deduper{}
}

func (d *Deduper) Name() string { return "deduper" }
func (d *Deduper) Order() int   { return 10 }

func (d *Deduper) Process(leads []*domain.Lead) []*domain.Lead {
	seenPhone := make(map[string]struct{})
	seenEmail := make(map[string]struct{})

	out := make([]*domain.Lead, 0, len(leads))
	for _, lead := range leads {
		phone := lead.CleanPhone()
		if phone != "" {
			if _, dup := seenPhone[phone]; dup {
				continue
			}
		}
		if lead.Email != "" {
			if _, dup := seenEmail[lead.Email]; dup {
				continue
			}
		}

		if phone != "" {
			seenPhone[phone] = struct{}{}
		}
		if lead.Email != "" {
			seenEmail[lead.Email] = struct{}{}
		}
		out = append(out, lead)
	}
	return out
}
