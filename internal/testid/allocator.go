package testid

import "strconv"

// AllocationTable hands out "{base}-{n}" identifiers. Counters start at 1
// for every base and are scoped to one table, which is scoped to one file.
// An identifier is never handed out twice, nor is one that was reserved.
type AllocationTable struct {
	counts map[string]int
	taken  map[string]bool
	prefix string
}

// NewAllocationTable returns an empty table. prefix is prepended to every
// identifier but does not take part in counting.
func NewAllocationTable(prefix string) *AllocationTable {
	return &AllocationTable{
		counts: make(map[string]int),
		taken:  make(map[string]bool),
		prefix: prefix,
	}
}

// Reserve marks id as already used in the file.
func (a *AllocationTable) Reserve(id string) {
	if id != "" {
		a.taken[id] = true
	}
}

// Next returns the next free identifier for base. Counter values whose
// identifier is taken are skipped.
func (a *AllocationTable) Next(base string) string {
	for {
		a.counts[base]++
		id := a.prefix + base + "-" + strconv.Itoa(a.counts[base])
		if !a.taken[id] {
			a.taken[id] = true
			return id
		}
	}
}

// Count returns the last counter value used for base.
func (a *AllocationTable) Count(base string) int {
	return a.counts[base]
}

// Reset forgets all counters and reservations.
func (a *AllocationTable) Reset() {
	clear(a.counts)
	clear(a.taken)
}
