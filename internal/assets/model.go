package assets

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Model is a wireframe mesh read from a Wavefront OBJ file.
type Model struct {
	Name     string
	Vertices []mgl64.Vec3
	Edges    [][2]int
	Min, Max mgl64.Vec3
}

// Center returns the middle of the bounding box.
func (m *Model) Center() mgl64.Vec3 {
	return m.Min.Add(m.Max).Mul(0.5)
}

// Extent returns the largest side of the bounding box.
func (m *Model) Extent() float64 {
	d := m.Max.Sub(m.Min)
	return max(d.X(), d.Y(), d.Z())
}

// ParseOBJ reads the vertex and face records of an OBJ stream. Faces are
// reduced to their unique edges; everything else is ignored.
func ParseOBJ(name string, r io.Reader) (*Model, error) {
	m := &Model{Name: name}
	seen := make(map[[2]int]bool)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: vertex needs 3 coordinates", name, line)
			}
			var v mgl64.Vec3
			for i := 0; i < 3; i++ {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", name, line, err)
				}
				v[i] = f
			}
			m.addVertex(v)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%s:%d: face needs 3 vertices", name, line)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				// "v", "v/vt", "v//vn" and "v/vt/vn" all start with the vertex
				n, err := strconv.Atoi(strings.SplitN(f, "/", 2)[0])
				if err != nil {
					return nil, fmt.Errorf("%s:%d: %w", name, line, err)
				}
				if n < 0 {
					n = len(m.Vertices) + n + 1
				}
				if n < 1 || n > len(m.Vertices) {
					return nil, fmt.Errorf("%s:%d: vertex %d out of range", name, line, n)
				}
				idx = append(idx, n-1)
			}
			for i := range idx {
				a, b := idx[i], idx[(i+1)%len(idx)]
				if a > b {
					a, b = b, a
				}
				if e := [2]int{a, b}; !seen[e] {
					seen[e] = true
					m.Edges = append(m.Edges, e)
				}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("%s: no vertices", name)
	}
	return m, nil
}

func (m *Model) addVertex(v mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		m.Min, m.Max = v, v
	}
	for i := 0; i < 3; i++ {
		m.Min[i] = min(m.Min[i], v[i])
		m.Max[i] = max(m.Max[i], v[i])
	}
	m.Vertices = append(m.Vertices, v)
}

// LoadModel reads an OBJ file from disk.
func LoadModel(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model %s: %w", path, err)
	}
	defer f.Close()
	return ParseOBJ(path, f)
}

// LoadModelAsync loads a model on its own goroutine and hands the result
// to out. When loading fails the generated cube is delivered instead so
// the stand still shows something. out should be buffered.
func LoadModelAsync(path string, out chan<- *Model, logger *slog.Logger) {
	go func() {
		m, err := LoadModel(path)
		if err != nil {
			logger.Warn("model unavailable, using placeholder", "path", path, "err", err)
			m = CubeModel()
		}
		out <- m
	}()
}

// CubeModel is the unit cube centered on the origin.
func CubeModel() *Model {
	m, err := ParseOBJ("cube", strings.NewReader(cubeOBJ))
	if err != nil {
		panic(err)
	}
	return m
}

const cubeOBJ = `v -0.5 -0.5 -0.5
v 0.5 -0.5 -0.5
v 0.5 0.5 -0.5
v -0.5 0.5 -0.5
v -0.5 -0.5 0.5
v 0.5 -0.5 0.5
v 0.5 0.5 0.5
v -0.5 0.5 0.5
f 1 2 3 4
f 5 6 7 8
f 1 2 6 5
f 2 3 7 6
f 3 4 8 7
f 4 1 5 8
`
