package xyplot

import "sync"

// CategoryPool interns category names in order of first appearance.
// The index of a name is its position on an ordinal scale.
type CategoryPool struct {
	sync.Mutex
	index map[string]int
	pool  []string
}

func NewCategoryPool(init ...string) *CategoryPool {
	cp := &CategoryPool{index: make(map[string]int), pool: make([]string, 0, len(init))}
	for _, s := range init {
		cp.Add(s)
	}
	return cp
}

// Add interns s and returns its index.
func (cp *CategoryPool) Add(s string) int {
	cp.Lock()
	defer cp.Unlock()
	if i, ok := cp.index[s]; ok {
		return i
	}
	cp.pool = append(cp.pool, s)
	cp.index[s] = len(cp.pool) - 1
	return len(cp.pool) - 1
}

// Find returns the index of s or -1.
func (cp *CategoryPool) Find(s string) int {
	cp.Lock()
	defer cp.Unlock()
	if i, ok := cp.index[s]; ok {
		return i
	}
	return -1
}

// Get returns the i'th category or "" if i is out of range.
func (cp *CategoryPool) Get(i int) string {
	cp.Lock()
	defer cp.Unlock()
	if i < 0 || i >= len(cp.pool) {
		return ""
	}
	return cp.pool[i]
}

func (cp *CategoryPool) Len() int {
	cp.Lock()
	defer cp.Unlock()
	return len(cp.pool)
}

// Strings returns a copy of all categories in insertion order.
func (cp *CategoryPool) Strings() []string {
	cp.Lock()
	defer cp.Unlock()
	return append([]string(nil), cp.pool...)
}
