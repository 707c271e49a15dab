package arcane

import (
	"fmt"
	"strings"
	"time"

	"github.com/teranos/arcana/errors"
)

// Gender of a client, normalised by the intake layer.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

// Client is the immutable input of every derivation.
type Client struct {
	Name     string    `json:"name" yaml:"name"`
	Birthday time.Time `json:"birthday" yaml:"birthday"`
	Gender   Gender    `json:"gender" yaml:"gender"`
}

// NewClient builds a Client from already validated parts.
func NewClient(name string, birthday time.Time, gender Gender) Client {
	return Client{Name: name, Birthday: birthday, Gender: gender}
}

// Header is the page header text, e.g. "Anna 15.05.90".
func (c Client) Header() string {
	return fmt.Sprintf("%s %s", c.Name, c.Birthday.Format("02.01.06"))
}

// Pointer names one of the five life domains.
type Pointer string

const (
	Personality  Pointer = "personality"
	Spirituality Pointer = "spirituality"
	Money        Pointer = "money"
	Relationship Pointer = "relationship"
	Health       Pointer = "health"
)

// Pointers lists the life domains in canonical (cyclic) order.
var Pointers = []Pointer{Personality, Spirituality, Money, Relationship, Health}

// ChildPointers are the triangles produced for a child report.
var ChildPointers = []Pointer{Personality, Money}

func (p Pointer) index() int {
	for i, known := range Pointers {
		if known == p {
			return i
		}
	}
	return -1
}

// Valid reports whether p is one of the five known pointers.
func (p Pointer) Valid() bool {
	return p.index() >= 0
}

// ParsePointer validates a pointer name.
func ParsePointer(s string) (Pointer, error) {
	p := Pointer(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", errors.NewInvalidArgumentError("unknown pointer %q (want one of personality, spirituality, money, relationship, health)", s)
	}
	return p, nil
}

// ParsePointers validates a list of pointer names, preserving order.
func ParsePointers(names []string) ([]Pointer, error) {
	out := make([]Pointer, 0, len(names))
	for _, name := range names {
		p, err := ParsePointer(name)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
