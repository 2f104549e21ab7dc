package triangle

import (
	"fmt"
	"strconv"
	"strings"
)

// Switches select triangulation behavior. The string form uses the classic
// single-letter command line switches.
type Switches struct {
	PSLG              bool    // p: triangulate a planar straight line graph
	ConvexHull        bool    // c: enclose the convex hull with segments
	Edges             bool    // e: output the edge list
	ZeroBased         bool    // z: number everything from zero
	NoBoundarySteiner bool    // Y: no Steiner points on boundary segments
	Voronoi           bool    // v: output the Voronoi dual
	Quiet             bool    // Q: no terminal output
	Quality           bool    // q: quality mesh generation
	MaxArea           float64 // a<area>: maximum triangle area, 0 for none
}

// DefaultSwitches returns the switches used by boundary reconstruction.
func DefaultSwitches() Switches {
	return Switches{
		PSLG:       true,
		ConvexHull: true,
		Edges:      true,
		ZeroBased:  true,
		Voronoi:    true,
		Quiet:      true,
	}
}

func (s Switches) String() string {
	var b strings.Builder
	for _, f := range []struct {
		on bool
		c  byte
	}{
		{s.PSLG, 'p'},
		{s.ConvexHull, 'c'},
		{s.Edges, 'e'},
		{s.ZeroBased, 'z'},
		{s.NoBoundarySteiner, 'Y'},
		{s.Voronoi, 'v'},
		{s.Quiet, 'Q'},
		{s.Quality, 'q'},
	} {
		if f.on {
			b.WriteByte(f.c)
		}
	}
	if s.MaxArea > 0 {
		b.WriteByte('a')
		b.WriteString(strconv.FormatFloat(s.MaxArea, 'f', -1, 64))
	}
	return b.String()
}

// ParseSwitches parses the string form produced by Switches.String.
func ParseSwitches(str string) (Switches, error) {
	var s Switches
	for i := 0; i < len(str); i++ {
		switch c := str[i]; c {
		case 'p':
			s.PSLG = true
		case 'c':
			s.ConvexHull = true
		case 'e':
			s.Edges = true
		case 'z':
			s.ZeroBased = true
		case 'Y':
			s.NoBoundarySteiner = true
		case 'v':
			s.Voronoi = true
		case 'Q':
			s.Quiet = true
		case 'q':
			s.Quality = true
		case 'a':
			j := i + 1
			for j < len(str) && (str[j] == '.' || (str[j] >= '0' && str[j] <= '9')) {
				j++
			}
			area, err := strconv.ParseFloat(str[i+1:j], 64)
			if err != nil || area <= 0 {
				return Switches{}, fmt.Errorf("%w: bad area %q", ErrUnsupportedSwitch, str[i+1:j])
			}
			s.MaxArea = area
			i = j - 1
		default:
			return Switches{}, fmt.Errorf("%w: %q", ErrUnsupportedSwitch, c)
		}
	}
	return s, nil
}
