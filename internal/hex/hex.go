// Package hex builds the adjacency graph of a rectangular hex grid laid out
// in odd-r offset coordinates.
package hex

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned for grids without at least one row and
// one column.
var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// Cube is a cube coordinate. X+Y+Z is always zero.
type Cube struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Add returns the component-wise sum of c and o.
func (c Cube) Add(o Cube) Cube {
	return Cube{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Distance returns the number of steps between two cells.
func (c Cube) Distance(o Cube) int {
	return max(abs(c.X-o.X), abs(c.Y-o.Y), abs(c.Z-o.Z))
}

// Offset is an odd-r offset coordinate.
type Offset struct {
	Col int `json:"col" msgpack:"col"`
	Row int `json:"row" msgpack:"row"`
}

func (o Offset) String() string {
	return fmt.Sprintf("%d,%d", o.Col, o.Row)
}

// Directions holds the six cube unit vectors.
var Directions = [6]Cube{
	{X: 0, Y: 1, Z: -1},
	{X: 1, Y: 0, Z: -1},
	{X: -1, Y: 1, Z: 0},
	{X: 1, Y: -1, Z: 0},
	{X: 0, Y: -1, Z: 1},
	{X: -1, Y: 0, Z: 1},
}

// Neighbors returns the six cube coordinates adjacent to c.
func (c Cube) Neighbors() [6]Cube {
	var out [6]Cube
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// OffsetToCube converts an odd-r offset coordinate to a cube coordinate.
func OffsetToCube(o Offset) Cube {
	x := o.Col - (o.Row-(o.Row&1))/2
	z := o.Row
	return Cube{X: x, Y: -x - z, Z: z}
}

// Cell is one generated grid cell. Its Id equals its index in the slice
// returned by Grid.
type Cell struct {
	Id        int
	Cube      Cube
	Offset    Offset
	Neighbors []int
}

// Grid lays out rows*cols cells row by row and links every pair of cells
// whose cube coordinates are one step apart.
func Grid(rows, cols int) ([]Cell, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	cells := make([]Cell, 0, rows*cols)
	index := make(map[Cube]int, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			o := Offset{Col: col, Row: row}
			c := Cell{
				Id:     len(cells),
				Cube:   OffsetToCube(o),
				Offset: o,
			}
			index[c.Cube] = c.Id
			cells = append(cells, c)
		}
	}

	for i := range cells {
		for _, n := range cells[i].Cube.Neighbors() {
			if id, ok := index[n]; ok {
				cells[i].Neighbors = append(cells[i].Neighbors, id)
			}
		}
	}

	return cells, nil
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
