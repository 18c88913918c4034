package simplet

import (
	"sort"
	"strconv"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
)

import (
	"github.com/timtadh/simplets/canon"
)

const maxParsedFace = 16

// ParseFaces reads a comma separated list of faces, each a whitespace
// separated list of vertex ids: "0 1 2, 2 3". Bracketed faces as written by
// Label are accepted too: "[0 1 2] [2 3]".
func ParseFaces(str string) ([][]int, error) {
	faces := make([][]int, 0, 4)
	for _, part := range strings.Split(strings.Replace(str, "]", ",", -1), ",") {
		fields := strings.Fields(strings.Trim(strings.TrimSpace(part), "[]"))
		if len(fields) == 0 {
			continue
		}
		face := make([]int, 0, len(fields))
		for _, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Errorf("bad vertex %q in face %q", field, part)
			}
			face = append(face, v)
		}
		faces = append(faces, face)
	}
	if len(faces) == 0 {
		return nil, errors.Errorf("no faces in %q", str)
	}
	return faces, nil
}

// FromFaces builds the pattern generated by the given faces: every face and
// all of its subfaces. Vertex ids are renumbered 0..n-1 in ascending order.
func FromFaces(id int, engine canon.Canonicalizer, faces [][]int) (*Simplet, error) {
	ids := make(map[int]int)
	for _, f := range faces {
		if len(f) > maxParsedFace {
			return nil, errors.Errorf("face %v has more than %d vertices", f, maxParsedFace)
		}
		for _, v := range f {
			ids[v] = -1
		}
	}
	verts := make([]int, 0, len(ids))
	for v := range ids {
		verts = append(verts, v)
	}
	sort.Ints(verts)
	for i, v := range verts {
		ids[v] = i
	}

	closure := make(map[string][]int)
	for _, f := range faces {
		mapped := make([]int, 0, len(f))
		seen := make(map[int]bool, len(f))
		for _, v := range f {
			if !seen[ids[v]] {
				seen[ids[v]] = true
				mapped = append(mapped, ids[v])
			}
		}
		sort.Ints(mapped)
		for mask := 1; mask < 1<<uint(len(mapped)); mask++ {
			sub := make([]int, 0, len(mapped))
			for i, v := range mapped {
				if mask&(1<<uint(i)) != 0 {
					sub = append(sub, v)
				}
			}
			if len(sub) > 1 {
				closure[formatVertices(sub)] = sub
			}
		}
	}
	subs := make([][]int, 0, len(closure))
	for _, sub := range closure {
		subs = append(subs, sub)
	}
	sort.Slice(subs, func(i, j int) bool {
		if len(subs[i]) != len(subs[j]) {
			return len(subs[i]) < len(subs[j])
		}
		return canon.LessInts(subs[i], subs[j])
	})

	s := New(id, engine)
	for v := range verts {
		if err := s.AddVertex(v, -1); err != nil {
			return nil, err
		}
	}
	for _, sub := range subs {
		f, err := s.AddFace(sub)
		if err != nil {
			return nil, err
		}
		s.UpdateCofaces(f)
	}
	return s, nil
}
