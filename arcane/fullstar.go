package arcane

// Graph is the complete derivation graph of one client, built in dependency
// order. Build one per request; it is immutable afterwards.
type Graph struct {
	Client  Client
	Main    MainStar
	Error   ErrorStar
	Mission MissionStar
	Footer  FooterStar
	Table   PythagorianTable
}

// NewGraph derives every star of c.
func NewGraph(c Client) *Graph {
	main := NewMainStar(c)
	errStar := NewErrorStar(main)
	return &Graph{
		Client:  c,
		Main:    main,
		Error:   errStar,
		Mission: NewMissionStar(main, errStar),
		Footer:  NewFooterStar(c),
		Table:   NewPythagorianTable(c),
	}
}

// Triangle resolves the triangle for pointer.
func (g *Graph) Triangle(pointer Pointer) (Triangle, error) {
	return NewTriangle(g.Main, g.Error, pointer)
}

// Triangles resolves the triangles for pointers in order.
func (g *Graph) Triangles(pointers []Pointer) ([]Triangle, error) {
	out := make([]Triangle, 0, len(pointers))
	for _, p := range pointers {
		t, err := g.Triangle(p)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// FullStar flattens the fullstar page: main (with header), mission, error and
// footer stars followed by each pointer's inverted vertices.
func (g *Graph) FullStar(pointers []Pointer) (*Labels, error) {
	l := MergeLabels(NewLabels(),
		g.Main.Labels(),
		g.Mission.Labels(),
		g.Error.Labels(),
		g.Footer.Labels(),
	)
	triangles, err := g.Triangles(pointers)
	if err != nil {
		return nil, err
	}
	for _, t := range triangles {
		MergeLabels(l, t.InvertedLabels())
	}
	return l, nil
}

// StarLabels flattens main and error stars without the header.
func (g *Graph) StarLabels() *Labels {
	l := MergeLabels(NewLabels(), g.Main.Labels(), g.Error.Labels())
	l.Delete("header_text")
	return l
}
