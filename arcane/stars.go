package arcane

// MainStar holds the five primary arcana of a client.
type MainStar struct {
	client Client
	values [5]int
}

// NewMainStar derives the primary arcana from the client's birthday.
func NewMainStar(c Client) MainStar {
	return newStar(c, MaxArcana)
}

func newStar(c Client, ceiling int) MainStar {
	personality := Reduce(c.Birthday.Day(), ceiling)
	spirituality := Reduce(int(c.Birthday.Month()), ceiling)
	money := Reduce(c.Birthday.Year(), ceiling)
	relationship := Reduce(personality+spirituality+money, ceiling)
	health := Reduce(2*relationship, ceiling)

	return MainStar{
		client: c,
		values: [5]int{personality, spirituality, money, relationship, health},
	}
}

// Client returns the client the star was derived from.
func (s MainStar) Client() Client { return s.client }

func (s MainStar) Personality() int  { return s.values[0] }
func (s MainStar) Spirituality() int { return s.values[1] }
func (s MainStar) Money() int        { return s.values[2] }
func (s MainStar) Relationship() int { return s.values[3] }
func (s MainStar) Health() int       { return s.values[4] }

// Get returns the attribute named by p. p must be valid.
func (s MainStar) Get(p Pointer) int {
	return s.values[mustIndex(p)]
}

// Values returns the attributes in canonical pointer order.
func (s MainStar) Values() [5]int { return s.values }

// Labels flattens the star with its header first.
func (s MainStar) Labels() *Labels {
	l := NewLabels()
	l.Set("header_text", s.client.Header())
	for i, p := range Pointers {
		setInt(l, string(p), s.values[i])
	}
	return l
}

// ErrorStar pairs every primary arcanum with its cyclic successor.
type ErrorStar struct {
	values [5]int
}

// NewErrorStar derives err_x = R(x + next(x)) over
// personality → spirituality → money → relationship → health → personality.
func NewErrorStar(s MainStar) ErrorStar {
	var e ErrorStar
	for i := range s.values {
		e.values[i] = ReduceArcana(s.values[i] + s.values[(i+1)%len(s.values)])
	}
	return e
}

func (e ErrorStar) Personality() int  { return e.values[0] }
func (e ErrorStar) Spirituality() int { return e.values[1] }
func (e ErrorStar) Money() int        { return e.values[2] }
func (e ErrorStar) Relationship() int { return e.values[3] }
func (e ErrorStar) Health() int       { return e.values[4] }

// Get returns err_<p>. p must be valid.
func (e ErrorStar) Get(p Pointer) int {
	return e.values[mustIndex(p)]
}

// Values returns err_* in canonical pointer order.
func (e ErrorStar) Values() [5]int { return e.values }

// Labels flattens the star as err_<pointer> entries.
func (e ErrorStar) Labels() *Labels {
	l := NewLabels()
	for i, p := range Pointers {
		setInt(l, "err_"+string(p), e.values[i])
	}
	return l
}

// MissionStar sums the main and error stars.
type MissionStar struct {
	Mission      int
	MissionError int
	MissionFull  int
}

// NewMissionStar derives mission, mission_error and mission_full.
func NewMissionStar(s MainStar, e ErrorStar) MissionStar {
	mission := ReduceArcana(sum(s.values))
	missionError := ReduceArcana(sum(e.values))
	return MissionStar{
		Mission:      mission,
		MissionError: missionError,
		MissionFull:  ReduceArcana(mission + missionError),
	}
}

// Labels flattens the mission star.
func (m MissionStar) Labels() *Labels {
	l := NewLabels()
	setInt(l, "mission", m.Mission)
	setInt(l, "mission_error", m.MissionError)
	setInt(l, "mission_full", m.MissionFull)
	return l
}

// FooterStar repeats the MainStar recurrence on the 1..9 scale.
type FooterStar struct {
	values [5]int
}

// NewFooterStar derives the footer numbers with ceiling 9 at every step.
func NewFooterStar(c Client) FooterStar {
	return FooterStar{values: newStar(c, FooterCeiling).values}
}

// Get returns foot_<p>. p must be valid.
func (f FooterStar) Get(p Pointer) int {
	return f.values[mustIndex(p)]
}

// Values returns foot_* in canonical pointer order.
func (f FooterStar) Values() [5]int { return f.values }

// Labels flattens the star as foot_<pointer> entries.
func (f FooterStar) Labels() *Labels {
	l := NewLabels()
	for i, p := range Pointers {
		setInt(l, "foot_"+string(p), f.values[i])
	}
	return l
}

func sum(values [5]int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func mustIndex(p Pointer) int {
	i := p.index()
	if i < 0 {
		panic("arcane: unknown pointer " + string(p))
	}
	return i
}
