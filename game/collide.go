package game

type BoundingBox struct {
	W int32 `json:"w"`
	H int32 `json:"h"`
}

// Collidable is anything that occupies an axis-aligned box anchored at its
// position (bottom-left corner, y growing upwards).
type Collidable interface {
	Box() BoundingBox
	Pos() Position
}

func (p Player) Box() BoundingBox {
	if p.Ducked {
		return BoundingBox{W: PlayerW, H: PlayerDuckedH}
	}
	return BoundingBox{W: PlayerW, H: PlayerH}
}

func (p Player) Pos() Position {
	return Position{X: PlayerX, Y: p.Y}
}

func (o Obstacle) Box() BoundingBox {
	switch o.Category {
	case Bird:
		return BoundingBox{W: BirdW, H: BirdH}
	default:
		return BoundingBox{W: CactusW, H: CactusH}
	}
}

func (o Obstacle) Pos() Position {
	return o.Position
}

// Overlaps reports whether the boxes of a and b intersect. Touching edges do
// not count.
func Overlaps(a, b Collidable) bool {
	pa, ba := a.Pos(), a.Box()
	pb, bb := b.Pos(), b.Box()
	return pa.X < pb.X+bb.W && pb.X < pa.X+ba.W &&
		pa.Y < pb.Y+bb.H && pb.Y < pa.Y+ba.H
}

// passed reports whether the obstacle's trailing edge is behind the player.
func (o Obstacle) passed() bool {
	return o.Position.X+o.Box().W < PlayerX
}
