package arcane

// CombineCouple merges two clients' main stars into the couple page labels:
// R(a.x + b.x) for every attribute plus a "<a> + <b>" header.
func CombineCouple(a, b MainStar) *Labels {
	l := NewLabels()
	for i, p := range Pointers {
		setInt(l, string(p), ReduceArcana(a.values[i]+b.values[i]))
	}
	l.Set("header_text", a.client.Name+" + "+b.client.Name)
	return l
}
