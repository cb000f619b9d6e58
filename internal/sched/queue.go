package sched

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pacer-org/pacer/internal/core"
)

var (
	ErrCyclicGraph = errors.New("cyclic dependencies detected")
	ErrUnknownUnit = errors.New("unit missing from unit list")
)

// Graph describes the structural dependencies the consideration queue is
// built from: each unit maps to the units that must get their chance to run
// first. Units that appear only on the dependency side are added to the
// graph with no dependencies of their own. A unit listed as its own
// dependency is allowed; ordering ignores the self-edge, since gating a unit
// on its own runs is condition business, not queue business.
type Graph map[core.Unit][]core.Unit

// Units returns every unit in the graph, sorted by name.
func (g Graph) Units() []core.Unit {
	seen := core.NewUnitSet()
	for unit, deps := range g {
		seen.Add(unit)
		for _, dep := range deps {
			seen.Add(dep)
		}
	}
	return seen.Units()
}

// buildConsiderationQueue layers the graph so that layer k holds exactly the
// units whose dependencies all sit in layers before k. Units inside a layer
// have no ordering among themselves. Returns ErrCyclicGraph when no such
// layering exists.
func buildConsiderationQueue(g Graph) ([][]core.Unit, error) {
	deps := make(map[core.Unit]core.UnitSet, len(g))
	for unit, ds := range g {
		set := core.NewUnitSet()
		for _, d := range ds {
			if d == unit {
				continue
			}
			set.Add(d)
		}
		deps[unit] = set
	}
	for _, ds := range g {
		for _, d := range ds {
			if _, ok := deps[d]; !ok {
				deps[d] = core.NewUnitSet()
			}
		}
	}

	resolved := core.NewUnitSet()
	var layers [][]core.Unit

	for len(deps) > 0 {
		var layer []core.Unit
		for unit, ds := range deps {
			ready := true
			for d := range ds {
				if !resolved.Has(d) {
					ready = false
					break
				}
			}
			if ready {
				layer = append(layer, unit)
			}
		}

		if len(layer) == 0 {
			var stuck []string
			for unit := range deps {
				stuck = append(stuck, unit.Name())
			}
			sort.Strings(stuck)
			return nil, fmt.Errorf("%w: %s", ErrCyclicGraph, strings.Join(stuck, ", "))
		}

		sort.Slice(layer, func(i, j int) bool { return layer[i].Name() < layer[j].Name() })
		for _, unit := range layer {
			resolved.Add(unit)
			delete(deps, unit)
		}
		layers = append(layers, layer)
	}

	return layers, nil
}

// validateOrdering checks an explicit layering against the unit list. Every
// unit named by a layer must be in the list; a listed unit absent from all
// layers is legal and is simply never considered.
func validateOrdering(units []core.Unit, layers [][]core.Unit) error {
	known := core.NewUnitSet(units...)
	for _, layer := range layers {
		for _, unit := range layer {
			if !known.Has(unit) {
				return fmt.Errorf("%w: %s", ErrUnknownUnit, unit.Name())
			}
		}
	}
	return nil
}
