// Package bsp builds a Binary Space Partitioning tree from a 2D polygonal
// level: a planar line set partitioning the plane into sectors.
//
// The builder produces a tree whose leaves (subsectors) are convex, a seg
// list annotating every line fragment with its sector context, and,
// optionally, a GL-nodes variant with minisegs closing every subsector into
// a convex polygon. It also resolves polyobject anchors and spots to the
// subsector containing them. WAD/lump I/O, CLI and logging, and
// blockmap/reject computation are left to callers; this package only knows
// vertices, linedefs, sidedefs and opaque sector identifiers.
package bsp
