package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"

	. "github.com/osuushi/umesh"
)

var (
	splitElements = kingpin.Flag("split-elements", "Number of times to split the largest element.").Default("0").Int()
	splitEdges    = kingpin.Flag("split-edges", "Number of times to split the longest edge.").Default("0").Int()
	offconstant   = kingpin.Flag("offcenter", "Off-center constant used to place points when splitting elements.").Default("0.5").Float64()
	show          = kingpin.Flag("show", "Draw the mesh to the terminal.").Bool()
	scale         = kingpin.Flag("scale", "Pixels per unit when drawing.").Default("1").Float64()
	verbose       = kingpin.Flag("verbose", "Log refused operations.").Short('v').Bool()
)

// Demo of the mesh operators. Input on stdin should be newline separated
// points in the form "x y" describing a Y-monotone polygon. The polygon is
// triangulated, then refined by splitting elements and edges, with
// edge swaps restoring the Delaunay property after every split.
func main() {
	kingpin.Parse()

	var logger *zap.Logger
	var err error
	if *verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	poly, err := readPolygon(os.Stdin)
	if err != nil {
		logger.Fatal("could not read polygon", zap.Error(err))
	}
	if !poly.IsCCW() {
		poly = poly.Reverse()
	}

	mesh, err := MonotoneMesh(poly)
	if err != nil {
		logger.Fatal("could not build mesh", zap.Error(err))
	}
	mesh.Logger = logger

	for i := 0; i < *splitElements; i++ {
		refineLargestElement(mesh, *offconstant)
	}
	for i := 0; i < *splitEdges; i++ {
		refineLongestEdge(mesh)
	}

	if err := Validate(mesh); err != nil {
		logger.Fatal("mesh is invalid", zap.Error(err))
	}
	printStats(mesh)

	if *show {
		if err := mesh.DbgDraw(*scale); err != nil {
			logger.Error("could not draw mesh", zap.Error(err))
		}
	}
}

func readPolygon(in io.Reader) (Polygon, error) {
	points := []Point{}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		point, err := parsePoint(line)
		if err != nil {
			return Polygon{}, err
		}
		points = append(points, point)
	}
	if err := scanner.Err(); err != nil {
		return Polygon{}, errors.Wrap(err, "reading input")
	}
	if len(points) < 3 {
		return Polygon{}, errors.Errorf("need at least 3 points, got %d", len(points))
	}
	return Polygon{Points: points}, nil
}

func parsePoint(line string) (Point, error) {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return Point{}, errors.Errorf("expected \"x y\", got %q", line)
	}
	x, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return Point{}, errors.Wrapf(err, "parsing %q", line)
	}
	y, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return Point{}, errors.Wrapf(err, "parsing %q", line)
	}
	return Point{X: x, Y: y}, nil
}

// Inserts the off-center of the largest element. An off-center outside the
// mesh falls back to the centroid.
func refineLargestElement(mesh *Mesh, offconstant float64) {
	largest := NoElement
	for _, el := range mesh.Elements() {
		if largest == NoElement || mesh.ElementArea(el) > mesh.ElementArea(largest) {
			largest = el
		}
	}
	if largest == NoElement {
		return
	}

	p := mesh.ElementOffcenter(largest, offconstant)
	target := mesh.LocateElement(p, largest)
	if target == NoElement || !strictlyInside(mesh, target, p) {
		target = largest
		p = centroid(mesh, largest)
	}
	node := mesh.SplitElement(target, p)
	restoreDelaunay(mesh, node)
}

func refineLongestEdge(mesh *Mesh) {
	longest := NoEdge
	for _, e := range mesh.Edges() {
		if longest == NoEdge || mesh.EdgeLength(e) > mesh.EdgeLength(longest) {
			longest = e
		}
	}
	if longest == NoEdge {
		return
	}
	node, _, _ := mesh.SplitEdge(longest)
	restoreDelaunay(mesh, node)
}

func strictlyInside(mesh *Mesh, el ElementID, p Point) bool {
	for _, h := range mesh.ElementHalfEdges(el) {
		if mesh.OrientedSide(h, p) != OnPositiveSide {
			return false
		}
	}
	return true
}

func centroid(mesh *Mesh, el ElementID) Point {
	nodes := mesh.ElementNodes(el)
	sum := Point{}
	for _, n := range nodes {
		sum = sum.Add(mesh.Position(n))
	}
	return sum.Scale(1.0 / 3)
}

// Lawson flips: swap the edges opposite the new node until they are all
// locally Delaunay. Each swap exposes two more edges to check.
func restoreDelaunay(mesh *Mesh, node NodeID) {
	stack := []EdgeID{}
	for _, h := range mesh.OutgoingHalfEdges(node) {
		if !mesh.IsFree(h) {
			stack = append(stack, mesh.Next(h).Edge())
		}
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if mesh.IsDelaunay(e) {
			continue
		}
		if _, ok := mesh.SwapEdgeChecked(e); !ok {
			continue
		}
		// After the swap, e joins node to the far corner. Its elements' other
		// edges are the ones to recheck.
		for side := 0; side < 2; side++ {
			h := e.HalfEdge(side)
			if mesh.Origin(h) == node {
				stack = append(stack, mesh.Next(h).Edge())
			}
			if mesh.Target(h) == node {
				stack = append(stack, mesh.Prev(h).Edge())
			}
		}
	}
}

func printStats(mesh *Mesh) {
	area := 0.0
	minAngle := math.Inf(1)
	for _, el := range mesh.Elements() {
		area += mesh.ElementArea(el)
		minAngle = math.Min(minAngle, mesh.ElementMinAngle(el))
	}
	fmt.Println(mesh)
	fmt.Printf("area: %g\n", area)
	fmt.Printf("minimum angle: %.2f°\n", minAngle)
	if bound, ok := mesh.BoundingBox(); ok {
		fmt.Printf("bounds: (%g, %g) - (%g, %g)\n", bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y())
	}
}
