package dreconfig

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func account(name string, order int, parent *Account) *Account {
	a := &Account{Id: ulid.Make(), Name: name, DisplayOrder: order}
	if parent != nil {
		a.ParentAccountId = &parent.Id
	}
	return a
}

func names(list []*Account) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Name)
	}
	return out
}

func TestBuildTreeGroupsAndSorts(t *testing.T) {
	t.Parallel()

	receita := account("Receita", 1, nil)
	custos := account("Custos", 0, nil)
	servicos := account("Serviços", 2, receita)
	produtos := account("Produtos", 1, receita)
	ghost := &Account{Id: ulid.Make(), Name: "Órfã", DisplayOrder: 5}
	missing := ulid.Make()
	ghost.ParentAccountId = &missing

	tree := BuildTree([]*Account{receita, custos, servicos, produtos, ghost})

	assert.Equal(t, []string{"Custos", "Receita", "Órfã"}, names(tree.Roots()))
	assert.Equal(t, []string{"Produtos", "Serviços"}, names(tree.Children(receita.Id)))
	assert.Equal(t, 5, tree.Len())
}

func TestDescendantsIsTransitiveClosure(t *testing.T) {
	t.Parallel()

	x := account("X", 0, nil)
	a := account("A", 0, x)
	b := account("B", 1, x)
	a1 := account("A1", 0, a)
	a11 := account("A11", 0, a1)
	other := account("Outra", 1, nil)
	otherChild := account("Filha", 0, other)

	tree := BuildTree([]*Account{x, a, b, a1, a11, other, otherChild})

	got := tree.Descendants(x.Id)
	assert.ElementsMatch(t, []ulid.ULID{a.Id, b.Id, a1.Id, a11.Id}, got)
	assert.NotContains(t, got, x.Id)
	assert.Empty(t, tree.Descendants(a11.Id))
}

func TestDescendantsSurvivesCycles(t *testing.T) {
	t.Parallel()

	a := &Account{Id: ulid.Make(), Name: "A"}
	b := &Account{Id: ulid.Make(), Name: "B"}
	a.ParentAccountId = &b.Id
	b.ParentAccountId = &a.Id

	tree := BuildTree([]*Account{a, b})

	assert.Equal(t, []ulid.ULID{b.Id}, tree.Descendants(a.Id))
}

func TestWouldCycle(t *testing.T) {
	t.Parallel()

	root := account("Raiz", 0, nil)
	child := account("Filha", 0, root)
	grandchild := account("Neta", 0, child)
	tree := BuildTree([]*Account{root, child, grandchild})

	assert.True(t, tree.WouldCycle(root.Id, root.Id))
	assert.True(t, tree.WouldCycle(root.Id, grandchild.Id))
	assert.False(t, tree.WouldCycle(grandchild.Id, root.Id))
}

func TestSiblings(t *testing.T) {
	t.Parallel()

	r1 := account("R1", 0, nil)
	r2 := account("R2", 1, nil)
	c1 := account("C1", 1, r1)
	c2 := account("C2", 0, r1)
	tree := BuildTree([]*Account{r1, r2, c1, c2})

	assert.Equal(t, []string{"R1", "R2"}, names(tree.Siblings(r2.Id)))
	assert.Equal(t, []string{"C2", "C1"}, names(tree.Siblings(c1.Id)))
	assert.Nil(t, tree.Siblings(ulid.Make()))
}

func TestRenderRespectsExpandedSet(t *testing.T) {
	t.Parallel()

	root := account("Raiz", 0, nil)
	child := account("Filha", 0, root)
	grandchild := account("Neta", 0, child)
	tree := BuildTree([]*Account{root, child, grandchild})

	expanded := NewExpandedSet()
	rows := tree.Render(expanded)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].HasChildren)
	assert.False(t, rows[0].Expanded)

	assert.True(t, expanded.Toggle(root.Id))
	rows = tree.Render(expanded)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[1].Depth)

	expanded.Toggle(child.Id)
	rows = tree.Render(expanded)
	require.Len(t, rows, 3)
	assert.Equal(t, "Neta", rows[2].Account.Name)
	assert.False(t, rows[2].HasChildren)

	assert.False(t, expanded.Toggle(root.Id))
	assert.Len(t, tree.Render(expanded), 1)
}

func TestWalkVisitsEverything(t *testing.T) {
	t.Parallel()

	root := account("Raiz", 0, nil)
	child := account("Filha", 0, root)
	tree := BuildTree([]*Account{child, root})

	var visited []string
	tree.Walk(func(a *Account, depth int) {
		visited = append(visited, a.Name)
	})
	assert.Equal(t, []string{"Raiz", "Filha"}, visited)
}
