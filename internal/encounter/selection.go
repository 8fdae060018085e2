package encounter

import (
	"fmt"
	"sort"

	"github.com/lawnchairsociety/encounter/internal/monster"
)

// Selection is a hand-picked list of monsters, listed by name.
type Selection struct {
	counts map[*monster.Template]int
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{counts: make(map[*monster.Template]int)}
}

// Set sets the count for a template, adding it if necessary. A count of zero
// or less removes it.
func (s *Selection) Set(t *monster.Template, count int) {
	if count <= 0 {
		delete(s.counts, t)
		return
	}
	s.counts[t] = count
}

// Delete removes the n-th entry (1-based) of Groups.
func (s *Selection) Delete(n int) error {
	if len(s.counts) == 0 {
		return fmt.Errorf("no monsters to delete")
	}
	groups := s.Groups()
	if n < 1 || n > len(groups) {
		return fmt.Errorf("entry %d is out of bounds", n)
	}
	delete(s.counts, groups[n-1].Template)
	return nil
}

// Clear empties the selection.
func (s *Selection) Clear() {
	clear(s.counts)
}

// Empty reports whether nothing is selected.
func (s *Selection) Empty() bool {
	return len(s.counts) == 0
}

// Groups returns the selection ordered by template name.
func (s *Selection) Groups() []Group {
	groups := make([]Group, 0, len(s.counts))
	for t, n := range s.counts {
		groups = append(groups, Group{Template: t, Count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Template.Name < groups[j].Template.Name
	})
	return groups
}
