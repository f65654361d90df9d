package location

import (
	"errors"
	"strings"
)

// State names how far down the hierarchy a selection has progressed.
type State int

const (
	NoDivision State = iota
	DivisionSelected
	DistrictSelected
	UpazilaSelected
)

var (
	ErrNoDivision = errors.New("no division selected")
	ErrNoDistrict = errors.New("no district selected")
)

// Cascade is the dependent-picker state of the edit-profile screen: selecting
// a level refilters the level below it and resets everything beneath the
// changed level to unselected.
type Cascade struct {
	tables *Tables

	division Area
	district Area
	upazila  Area

	districts []Area
	upazilas  []Area

	state State
}

func NewCascade(t *Tables) *Cascade {
	return &Cascade{tables: t}
}

func (c *Cascade) State() State { return c.state }

// SelectDivision picks a top-level entry, refilters the district candidates
// and resets district and upazila selections.
func (c *Cascade) SelectDivision(name string) error {
	div, ok := findByName(c.tables.Divisions(), name)
	if !ok {
		return errors.New("unknown division: " + name)
	}
	c.division = div
	c.districts = c.tables.DistrictsOf(div.ID)
	c.district = Area{}
	c.upazila = Area{}
	c.upazilas = nil
	c.state = DivisionSelected
	return nil
}

// SelectDistrict picks a district from the current division's candidates and
// resets the upazila selection.
func (c *Cascade) SelectDistrict(name string) error {
	if c.state < DivisionSelected {
		return ErrNoDivision
	}
	dist, ok := findByName(c.districts, name)
	if !ok {
		return errors.New("unknown district: " + name)
	}
	c.district = dist
	c.upazilas = c.tables.UpazilasOf(dist.ID)
	c.upazila = Area{}
	c.state = DistrictSelected
	return nil
}

// SelectUpazila picks a locality from the current district's candidates.
func (c *Cascade) SelectUpazila(name string) error {
	if c.state < DistrictSelected {
		return ErrNoDistrict
	}
	up, ok := findByName(c.upazilas, name)
	if !ok {
		return errors.New("unknown upazila: " + name)
	}
	c.upazila = up
	c.state = UpazilaSelected
	return nil
}

func (c *Cascade) Division() string { return c.division.Name }
func (c *Cascade) District() string { return c.district.Name }
func (c *Cascade) Upazila() string  { return c.upazila.Name }

// Districts returns the candidate districts for the selected division.
func (c *Cascade) Districts() []Area { return c.districts }

// Upazilas returns the candidate upazilas for the selected district.
func (c *Cascade) Upazilas() []Area { return c.upazilas }

// Address renders the resolved selection as the single address string stored
// on the user record.
func (c *Cascade) Address() string {
	parts := []string{}
	for _, p := range []string{c.division.Name, c.district.Name, c.upazila.Name} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
