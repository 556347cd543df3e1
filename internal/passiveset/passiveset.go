// Package passiveset implements PassiveSet: the given-clause loop's
// priority queue of not-yet-activated ProofSteps, ordered by
// proofstep.Score so that Pop always returns the most promising pending
// step. No original_source file for this component was retrieved with the
// rest of the prover's Rust sources; its design follows spec.md 4.5's
// textual description (a max-priority queue scored by (negadepth, tier,
// heuristic), MAX_DEPTH 3, with AutomaticReject applied before a step ever
// enters the queue) plus the queue's observed call shape in prover.rs
// (PushBatch after a batch of inferences, Pop one at a time to drive the
// next activation).
package passiveset

import (
	"container/heap"

	"sooth/internal/proofstep"
)

// entry pairs a step's external id (assigned by the Prover, which owns the
// single global id space shared with the ActiveSet) with its ProofStep and
// precomputed Score.
type entry struct {
	id    int
	step  proofstep.ProofStep
	score proofstep.Score
}

// innerHeap is a container/heap.Interface max-heap over entry.score.
type innerHeap []entry

func (h innerHeap) Len() int { return len(h) }
func (h innerHeap) Less(i, j int) bool {
	// container/heap is a min-heap; invert Score.Less to get a max-heap.
	return h[j].score.Less(h[i].score)
}
func (h innerHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *innerHeap) Push(x any)   { *h = append(*h, x.(entry)) }
func (h *innerHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// PassiveSet is the priority queue of pending proof steps.
type PassiveSet struct {
	heap innerHeap
}

func New() *PassiveSet {
	ps := &PassiveSet{}
	heap.Init(&ps.heap)
	return ps
}

// Push enqueues step under id, unless it's automatically rejected (deep
// Factual-Factual deduction, spec.md 4.5). Returns false when rejected.
func (p *PassiveSet) Push(id int, step proofstep.ProofStep) bool {
	if step.AutomaticReject() {
		return false
	}
	heap.Push(&p.heap, entry{id: id, step: step, score: step.ComputeScore()})
	return true
}

// PushBatch pushes every (id, step) pair, returning the ids actually
// accepted (in the same relative order).
func (p *PassiveSet) PushBatch(ids []int, steps []proofstep.ProofStep) []int {
	accepted := make([]int, 0, len(ids))
	for i, id := range ids {
		if p.Push(id, steps[i]) {
			accepted = append(accepted, id)
		}
	}
	return accepted
}

// Pop removes and returns the highest-scoring pending step.
func (p *PassiveSet) Pop() (int, proofstep.ProofStep, bool) {
	if p.heap.Len() == 0 {
		return 0, proofstep.ProofStep{}, false
	}
	e := heap.Pop(&p.heap).(entry)
	return e.id, e.step, true
}

// Len reports how many steps are still pending.
func (p *PassiveSet) Len() int { return p.heap.Len() }

// GetContradiction scans the still-pending queue for two unit,
// opposite-polarity literal clauses with identical sides that together are already
// unsatisfiable without needing either one activated — the
// PassiveContradiction shortcut. Returns both steps (in discovery order)
// and true if found; neither step is removed from the queue.
func (p *PassiveSet) GetContradiction() ([]proofstep.ProofStep, bool) {
	type unit struct {
		idx int
	}
	var units []unit
	for i, e := range p.heap {
		if e.step.Clause.Len() == 1 {
			units = append(units, unit{idx: i})
		}
	}
	for i := 0; i < len(units); i++ {
		li := p.heap[units[i].idx].step.Clause.Literals[0]
		for j := i + 1; j < len(units); j++ {
			lj := p.heap[units[j].idx].step.Clause.Literals[0]
			if li.Positive != lj.Positive && li.Left.Equal(lj.Left) && li.Right.Equal(lj.Right) {
				return []proofstep.ProofStep{p.heap[units[i].idx].step, p.heap[units[j].idx].step}, true
			}
		}
	}
	return nil, false
}

// Resimplify re-runs simplify (typically ActiveSet.Simplify) against every
// still-pending step, dropping or shrinking entries now that a newly
// activated clause may have made them redundant. Mirrors spec.md 4.5's
// "simplify(new_id, &new_step)": the double simplification (new clause vs.
// old passives, old passives vs. new clause) keeps every passive step
// simplified with respect to the whole active set.
func (p *PassiveSet) Resimplify(simplify func(proofstep.ProofStep) (proofstep.ProofStep, bool)) {
	kept := p.heap[:0]
	for _, e := range p.heap {
		simplified, ok := simplify(e.step)
		if !ok {
			continue
		}
		e.step = simplified
		e.score = simplified.ComputeScore()
		kept = append(kept, e)
	}
	p.heap = kept
	heap.Init(&p.heap)
}

// IterSteps exposes the currently pending steps (without their ids), e.g. for
// printing diagnostics; order is the heap's internal order, not priority
// order.
func (p *PassiveSet) IterSteps() []proofstep.ProofStep {
	out := make([]proofstep.ProofStep, len(p.heap))
	for i, e := range p.heap {
		out[i] = e.step
	}
	return out
}
