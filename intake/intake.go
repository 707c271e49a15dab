// Package intake turns raw user input into a validated arcane.Client.
// The derivation core assumes its input is valid; this is where that
// assumption is enforced.
package intake

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/teranos/arcana/arcane"
	"github.com/teranos/arcana/errors"
)

// DateLayout accepts "15.05.1990" as well as "6.2.2019".
const DateLayout = "2.1.2006"

// AdultAge is the age from which a client gets the adult report.
const AdultAge = 12

// MaxNameLength is the longest name printed in full; longer names keep
// only their first word.
const MaxNameLength = 10

// AgeClass restricts which birthdays a scenario accepts.
type AgeClass int

const (
	AnyAge AgeClass = iota
	Adult
	Child
)

func (a AgeClass) String() string {
	switch a {
	case Adult:
		return "adult"
	case Child:
		return "child"
	}
	return "any"
}

// Input is one client as typed by the user.
type Input struct {
	Name     string `json:"name" yaml:"name" mapstructure:"name"`
	Birthday string `json:"birthday" yaml:"birthday" mapstructure:"birthday"`
	Gender   string `json:"gender" yaml:"gender" mapstructure:"gender"`
}

// NewClient validates in against class as of now.
func NewClient(in Input, class AgeClass, now time.Time) (arcane.Client, error) {
	name, err := TrimName(in.Name)
	if err != nil {
		return arcane.Client{}, err
	}
	gender, err := ParseGender(in.Gender)
	if err != nil {
		return arcane.Client{}, err
	}
	birthday, err := ParseBirthday(in.Birthday, now)
	if err != nil {
		return arcane.Client{}, err
	}
	if err := CheckAge(birthday, class, now); err != nil {
		return arcane.Client{}, errors.Wrapf(err, "client %s", name)
	}
	return arcane.NewClient(name, birthday, gender), nil
}

// ParseBirthday parses a dd.mm.yyyy date. Dates after now are rejected.
func ParseBirthday(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.WithHint(
			errors.NewInvalidArgumentError("invalid birthday %q", s),
			"use the DD.MM.YYYY format, e.g. 15.05.1990",
		)
	}
	if d.After(now) {
		return time.Time{}, errors.NewInvalidArgumentError("birthday %s is in the future", s)
	}
	return d, nil
}

// Age is the number of full years between birthday and now.
func Age(birthday, now time.Time) int {
	age := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() ||
		(now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		age--
	}
	return age
}

// CheckAge enforces the adult/child split at AdultAge.
func CheckAge(birthday time.Time, class AgeClass, now time.Time) error {
	age := Age(birthday, now)
	switch {
	case class == Adult && age < AdultAge:
		return errors.NewInvalidArgumentError("an adult client must be at least %d (got %d)", AdultAge, age)
	case class == Child && age >= AdultAge:
		return errors.NewInvalidArgumentError("a child must be younger than %d (got %d)", AdultAge, age)
	}
	return nil
}

var genders = map[string]arcane.Gender{
	"M": arcane.GenderMale, "М": arcane.GenderMale, "MALE": arcane.GenderMale, "МУЖ": arcane.GenderMale,
	"F": arcane.GenderFemale, "Ж": arcane.GenderFemale, "FEMALE": arcane.GenderFemale, "ЖЕН": arcane.GenderFemale,
}

// ParseGender accepts Latin and Cyrillic letters and short words, in any case.
func ParseGender(s string) (arcane.Gender, error) {
	if g, ok := genders[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return g, nil
	}
	return "", errors.WithHint(
		errors.NewInvalidArgumentError("invalid gender %q", s),
		"use M or F (М or Ж)",
	)
}

// TrimName strips whitespace and shortens long names to their first word.
// Names become page file names, so path separators are rejected.
func TrimName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.NewInvalidArgumentError("name is empty")
	}
	if strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", errors.WithHint(
			errors.NewInvalidArgumentError("name %q contains a path separator", name),
			"use letters, spaces and hyphens only",
		)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.Fields(name)[0]
	}
	return name, nil
}
