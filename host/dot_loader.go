package host

import (
	"io"
	"io/ioutil"
)

import (
	"github.com/timtadh/combos"
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/dot"
)

// LoadDot reads a complex from a DOT graph. Every edge is a 2-face and every
// isolated node is a 0-face. Each subgraph is one face made of the nodes
// named inside it, which is how faces of three or more vertices are written:
//
//	graph {
//	    a -- b;
//	    subgraph f0 { a; b; c; }
//	}
func LoadDot(r io.Reader) (*Complex, error) {
	text, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &dotParse{
		vids: make(map[string]int),
		seen: make(map[int]bool),
	}
	err = dot.StreamParse(text, p)
	if err != nil {
		return nil, err
	}
	for v, sid := range p.names {
		if !p.seen[v] {
			errors.Logf("DEBUG", "dot node %v is isolated, adding it as a 0-face", sid)
			p.addFace([]int{v})
		}
	}
	return New(p.faces)
}

type dotParse struct {
	faces    []*Face
	vids     map[string]int
	names    []string
	seen     map[int]bool
	subgraph int
	face     []int
}

func (p *dotParse) Enter(name string, n *combos.Node) error {
	if name == "SubGraph" {
		if p.subgraph > 0 {
			return errors.Errorf("nested subgraphs are not faces")
		}
		p.subgraph++
		p.face = make([]int, 0, 4)
	}
	return nil
}

func (p *dotParse) Stmt(n *combos.Node) error {
	switch n.Label {
	case "Node":
		v := p.vertex(n.Get(0).Value.(string))
		if p.subgraph > 0 {
			p.face = append(p.face, v)
		}
	case "Edge":
		src := p.vertex(n.Get(0).Value.(string))
		targ := p.vertex(n.Get(1).Value.(string))
		if src == targ {
			return errors.Errorf("self loop on %v is not a face", n.Get(0).Value)
		}
		if p.subgraph > 0 {
			p.face = append(p.face, src, targ)
		} else {
			p.addFace([]int{src, targ})
		}
	}
	return nil
}

func (p *dotParse) Exit(name string) error {
	if name == "SubGraph" {
		p.subgraph--
		if len(p.face) > 0 {
			p.addFace(p.face)
		}
		p.face = nil
	}
	return nil
}

func (p *dotParse) vertex(sid string) int {
	if v, has := p.vids[sid]; has {
		return v
	}
	v := len(p.names)
	p.vids[sid] = v
	p.names = append(p.names, sid)
	return v
}

func (p *dotParse) addFace(verts []int) {
	for _, v := range verts {
		p.seen[v] = true
	}
	p.faces = append(p.faces, &Face{Id: len(p.faces), Vertices: verts})
}
