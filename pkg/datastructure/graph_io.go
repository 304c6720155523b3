package datastructure

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/Postmanx/pkg/util"
)

/*
serialized graph, bzip2 compressed text:

	<numVertices> <numEdges>
	<lon> <lat>                                           one line per vertex, in vertex order
	<from> <to> <length> <synthetic> <duplicate> "<name>" "<type>"   one line per edge, in edge order

floats are written with the shortest text that parses back to the same bits, so vertex keys survive a round trip exactly.
*/

func (g *Graph) WriteGraphFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := g.WriteGraph(f); err != nil {
		return err
	}
	return f.Close()
}

func (g *Graph) WriteGraph(out io.Writer) error {
	bz, err := bzip2.NewWriter(out, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", len(g.vertices), len(g.edges))

	for _, v := range g.vertices {
		fmt.Fprintf(w, "%s %s\n", util.FormatFloat(v.Lon), util.FormatFloat(v.Lat))
	}

	for _, e := range g.edges {
		fmt.Fprintf(w, "%d %d %s %t %t %s %s\n",
			e.from, e.to, util.FormatFloat(e.attrs.Length), e.synthetic, e.duplicate,
			strconv.Quote(e.attrs.Name), strconv.Quote(e.attrs.Type))
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return bz.Close()
}

func ParseIndex(s string) (Index, error) {
	u, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, fmt.Errorf("value %s overflows uint32", s)
	}
	return Index(u), nil
}

func ReadGraphFile(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadGraph(f)
}

func ReadGraph(in io.Reader) (*Graph, error) {
	bz, err := bzip2.NewReader(in, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReader(bz)

	line, err := util.ReadLine(br)
	if err != nil {
		return nil, fmt.Errorf("read graph header: %w", err)
	}

	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return nil, fmt.Errorf("malformed graph header %q", line)
	}

	numVertices, err := ParseIndex(tokens[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := ParseIndex(tokens[1])
	if err != nil {
		return nil, err
	}

	g := NewGraphWithSize(int(numVertices), int(numEdges))

	for i := 0; i < int(numVertices); i++ {
		vertexLine, err := util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("read vertex %d: %w", i, err)
		}
		k, err := parseVertex(vertexLine)
		if err != nil {
			return nil, err
		}
		if id := g.AddVertex(k); id != Index(i) {
			return nil, util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
				"vertex %d duplicates vertex %d at %s", i, id, k)
		}
	}

	for i := 0; i < int(numEdges); i++ {
		edgeLine, err := util.ReadLine(br)
		if err != nil {
			return nil, fmt.Errorf("read edge %d: %w", i, err)
		}
		if err := parseEdge(g, edgeLine); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}

	return g, nil
}

func parseVertex(line string) (VertexKey, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 2 {
		return VertexKey{}, util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
			"malformed vertex line %q", line)
	}
	lon, err := util.StringToFloat64(tokens[0])
	if err != nil {
		return VertexKey{}, util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
			"malformed vertex line %q", line)
	}
	lat, err := util.StringToFloat64(tokens[1])
	if err != nil {
		return VertexKey{}, util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
			"malformed vertex line %q", line)
	}
	return NewCheckedVertexKey(lon, lat)
}

func parseEdge(g *Graph, line string) error {
	// five plain fields, then two quoted strings that may contain spaces
	rest := line
	fieldsOut := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		rest = strings.TrimLeft(rest, " ")
		end := strings.IndexByte(rest, ' ')
		if end < 0 {
			return fmt.Errorf("malformed edge line %q", line)
		}
		fieldsOut = append(fieldsOut, rest[:end])
		rest = rest[end:]
	}

	from, err := ParseIndex(fieldsOut[0])
	if err != nil {
		return err
	}
	to, err := ParseIndex(fieldsOut[1])
	if err != nil {
		return err
	}
	if int(from) >= g.NumberOfVertices() || int(to) >= g.NumberOfVertices() {
		return fmt.Errorf("edge endpoint out of range in %q", line)
	}
	length, err := util.StringToFloat64(fieldsOut[2])
	if err != nil {
		return err
	}
	synthetic, err := strconv.ParseBool(fieldsOut[3])
	if err != nil {
		return err
	}
	duplicate, err := strconv.ParseBool(fieldsOut[4])
	if err != nil {
		return err
	}

	name, rest, err := unquotePrefix(rest)
	if err != nil {
		return fmt.Errorf("malformed edge name in %q: %w", line, err)
	}
	roadType, _, err := unquotePrefix(rest)
	if err != nil {
		return fmt.Errorf("malformed edge type in %q: %w", line, err)
	}

	g.addEdge(from, to, NewEdgeAttributes(name, length, roadType), synthetic, duplicate)
	return nil
}

func unquotePrefix(s string) (string, string, error) {
	s = strings.TrimLeft(s, " ")
	quoted, err := strconv.QuotedPrefix(s)
	if err != nil {
		return "", "", err
	}
	val, err := strconv.Unquote(quoted)
	if err != nil {
		return "", "", err
	}
	return val, s[len(quoted):], nil
}
