package bsp

// locatePolyobjects is the §6 "polyobject container search": for every
// anchor and spot the level loader supplied, descend the finished tree by
// point classification against each node's partition line until a
// subsector is reached.
func (b *Builder[Sector]) locatePolyobjects(root Child) []PolyContainer {
	var out []PolyContainer
	for _, a := range b.input.Anchors {
		out = append(out, PolyContainer{PolyNum: a.PolyNum, Subsector: b.findSubsector(root, a.X, a.Y)})
	}
	for _, s := range b.input.PolySpots {
		out = append(out, PolyContainer{PolyNum: s.PolyNum, Subsector: b.findSubsector(root, s.X, s.Y)})
	}
	return out
}

func (b *Builder[Sector]) findSubsector(child Child, x, y Fixed) int32 {
	for !child.IsSubsector {
		n := b.nodes[child.Index]
		line := Line{X: n.X, Y: n.Y, Dx: n.Dx, Dy: n.Dy}
		if sideOf(line, x, y) == SideBack {
			child = n.BackChild
		} else {
			child = n.FrontChild
		}
	}
	return child.Index
}
