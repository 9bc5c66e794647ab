package model

import "errors"

var ErrDriverNotFound = errors.New("driver not found")

// Roster keeps drivers in file order and provides lookup by abbreviation.
// If an abbreviation occurs more than once, lookups return the first one.
type Roster struct {
	drivers []*Driver
	lookup  map[string]*Driver
}

func NewRoster() *Roster {
	return &Roster{
		drivers: make([]*Driver, 0),
		lookup:  make(map[string]*Driver),
	}
}

// Add appends d and reports whether its abbreviation was new.
func (r *Roster) Add(d *Driver) bool {
	r.drivers = append(r.drivers, d)
	if _, ok := r.lookup[d.Abbreviation]; ok {
		return false
	}
	r.lookup[d.Abbreviation] = d
	return true
}

func (r *Roster) Lookup(abbr string) (*Driver, error) {
	if d, ok := r.lookup[abbr]; ok {
		return d, nil
	}
	return nil, ErrDriverNotFound
}

// Drivers returns the drivers in roster order.
// The slice is a copy, the drivers are shared.
func (r *Roster) Drivers() []*Driver {
	ret := make([]*Driver, len(r.drivers))
	copy(ret, r.drivers)
	return ret
}

func (r *Roster) Len() int {
	return len(r.drivers)
}
