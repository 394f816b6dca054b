package dreconfig

import (
	"sort"

	"github.com/oklog/ulid/v2"
)

// Tree é a hierarquia de contas montada uma vez por leitura.
type Tree struct {
	byID     map[ulid.ULID]*Account
	children map[ulid.ULID][]*Account
	roots    []*Account
}

func BuildTree(accounts []*Account) *Tree {
	t := &Tree{
		byID:     make(map[ulid.ULID]*Account, len(accounts)),
		children: make(map[ulid.ULID][]*Account),
	}
	for _, a := range accounts {
		t.byID[a.Id] = a
	}
	for _, a := range accounts {
		if a.ParentAccountId == nil {
			t.roots = append(t.roots, a)
			continue
		}
		t.children[*a.ParentAccountId] = append(t.children[*a.ParentAccountId], a)
		if _, ok := t.byID[*a.ParentAccountId]; !ok {
			t.roots = append(t.roots, a)
		}
	}

	sortByOrder(t.roots)
	for _, list := range t.children {
		sortByOrder(list)
	}
	return t
}

func sortByOrder(list []*Account) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].DisplayOrder < list[j].DisplayOrder
	})
}

func (t *Tree) Get(id ulid.ULID) (*Account, bool) {
	a, ok := t.byID[id]
	return a, ok
}

func (t *Tree) Roots() []*Account {
	return t.roots
}

func (t *Tree) Children(id ulid.ULID) []*Account {
	return t.children[id]
}

func (t *Tree) Len() int {
	return len(t.byID)
}

// Descendants devolve o fecho transitivo dos filhos de id, sem incluir id.
func (t *Tree) Descendants(id ulid.ULID) []ulid.ULID {
	visited := map[ulid.ULID]struct{}{id: {}}
	var out []ulid.ULID

	queue := []ulid.ULID{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range t.children[current] {
			if _, seen := visited[child.Id]; seen {
				continue
			}
			visited[child.Id] = struct{}{}
			out = append(out, child.Id)
			queue = append(queue, child.Id)
		}
	}
	return out
}

// Siblings devolve as contas com o mesmo pai de id (incluindo a própria), por ordem.
func (t *Tree) Siblings(id ulid.ULID) []*Account {
	a, ok := t.byID[id]
	if !ok {
		return nil
	}
	if a.ParentAccountId == nil {
		out := make([]*Account, 0, len(t.roots))
		for _, r := range t.roots {
			if r.ParentAccountId == nil {
				out = append(out, r)
			}
		}
		return out
	}
	return t.children[*a.ParentAccountId]
}

// WouldCycle informa se pendurar id sob parent criaria um ciclo.
func (t *Tree) WouldCycle(id, parent ulid.ULID) bool {
	if id == parent {
		return true
	}
	for _, d := range t.Descendants(id) {
		if d == parent {
			return true
		}
	}
	return false
}

type ExpandedSet map[ulid.ULID]struct{}

func NewExpandedSet(ids ...ulid.ULID) ExpandedSet {
	s := make(ExpandedSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s ExpandedSet) Has(id ulid.ULID) bool {
	_, ok := s[id]
	return ok
}

// Toggle expande ou recolhe id e devolve o novo estado.
func (s ExpandedSet) Toggle(id ulid.ULID) bool {
	if s.Has(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

type Row struct {
	Account     *Account `json:"account"`
	Depth       int      `json:"depth"`
	HasChildren bool     `json:"hasChildren"`
	Expanded    bool     `json:"expanded"`
}

// Render achata a árvore nas linhas visíveis; filhos só aparecem sob pais expandidos.
func (t *Tree) Render(expanded ExpandedSet) []Row {
	rows := make([]Row, 0, len(t.byID))
	visited := make(map[ulid.ULID]struct{}, len(t.byID))

	var walk func(a *Account, depth int)
	walk = func(a *Account, depth int) {
		if _, seen := visited[a.Id]; seen {
			return
		}
		visited[a.Id] = struct{}{}

		kids := t.children[a.Id]
		open := expanded.Has(a.Id)
		rows = append(rows, Row{Account: a, Depth: depth, HasChildren: len(kids) > 0, Expanded: open})
		if !open {
			return
		}
		for _, k := range kids {
			walk(k, depth+1)
		}
	}

	for _, r := range t.roots {
		walk(r, 0)
	}
	return rows
}

// Walk percorre a árvore inteira em profundidade, na ordem de exibição.
func (t *Tree) Walk(fn func(a *Account, depth int)) {
	all := make(ExpandedSet, len(t.byID))
	for id := range t.byID {
		all[id] = struct{}{}
	}
	for _, row := range t.Render(all) {
		fn(row.Account, row.Depth)
	}
}
