package dreconfig

import "github.com/oklog/ulid/v2"

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

func (d Direction) IsValid() bool {
	return d == DirectionUp || d == DirectionDown
}

// SwapWithSibling troca a ordem de id com o irmão adjacente na direção pedida.
// Nas pontas da lista nada muda e ok é falso.
func SwapWithSibling(siblings []*Account, id ulid.ULID, dir Direction) (moved, other *Account, ok bool) {
	idx := -1
	for i, s := range siblings {
		if s.Id == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil, false
	}

	target := idx - 1
	if dir == DirectionDown {
		target = idx + 1
	}
	if target < 0 || target >= len(siblings) {
		return nil, nil, false
	}

	moved, other = siblings[idx], siblings[target]
	moved.DisplayOrder, other.DisplayOrder = other.DisplayOrder, moved.DisplayOrder
	return moved, other, true
}
