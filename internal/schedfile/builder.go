package schedfile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/samber/lo"

	"github.com/pacer-org/pacer/internal/condition"
	"github.com/pacer-org/pacer/internal/core"
	"github.com/pacer-org/pacer/internal/logger"
	"github.com/pacer-org/pacer/internal/logger/tag"
	"github.com/pacer-org/pacer/internal/sched"
)

// Schedule is a named, runnable scheduler built from a definition file.
type Schedule struct {
	// Name identifies the schedule in logs and dry-run output.
	Name string
	// Description is the optional note from the definition file.
	Description string
	// Scheduler carries the consideration queue, unit conditions, and
	// termination conditions from the definition, bound and ready to run.
	Scheduler *sched.Scheduler
}

// conditionBuilderFn builds one condition from its raw spec value. The raw
// value is nil when the condition was given as a bare name.
type conditionBuilderFn func(b *specBuilder, raw any) (condition.Condition, error)

// conditionRegistry maps lowercased condition keys to their builders. It is
// populated in init because the composite builders refer back to the registry
// through buildCondition, which the compiler rejects as an initialization
// cycle in a package-level literal.
var conditionRegistry map[string]conditionBuilderFn

func init() {
	conditionRegistry = map[string]conditionBuilderFn{
		"always":       buildAlways,
		"never":        buildNever,
		"everyncalls":  buildEveryNCalls,
		"afterncalls":  buildAfterNCalls,
		"atncalls":     buildAtNCalls,
		"beforencalls": buildBeforeNCalls,
		"atpass":       buildAtPass,
		"afterpass":    buildAfterPass,
		"beforepass":   buildBeforePass,
		"everynpasses": buildEveryNPasses,
		"afterntrials": buildAfterNTrials,
		"attrial":      buildAtTrial,
		"allhaverun":   buildAllHaveRun,
		"any":          buildAnyOf,
		"all":          buildAllOf,
		"not":          buildNot,
	}
}

// build assembles a runnable schedule from a decoded definition. Structural
// errors are collected so a single load reports every problem in the file.
func build(ctx context.Context, def *definition, opts LoadOptions) (*Schedule, error) {
	name := def.Name
	if name == "" {
		name = opts.name
	}

	b := &specBuilder{units: make(map[string]core.Unit, len(def.Units))}

	var errs ErrorList

	// First pass registers names so depends and conditions can reference
	// units defined later in the file.
	for i, u := range def.Units {
		field := fmt.Sprintf("units[%d].name", i)
		if u.Name == "" {
			errs.Add(wrapError(field, nil, ErrUnitNameRequired))
			continue
		}
		if _, ok := b.units[u.Name]; ok {
			errs.Add(wrapError(field, u.Name, ErrUnitNameDuplicate))
			continue
		}
		b.units[u.Name] = core.NamedUnit(u.Name)
	}
	if len(errs) > 0 {
		return nil, errs
	}

	graph := make(sched.Graph, len(def.Units))
	conds := condition.NewSet()

	for _, u := range def.Units {
		unit := b.units[u.Name]

		deps, err := parseStringOrArray(u.Depends)
		if err != nil {
			errs.Add(wrapError(u.Name+".depends", u.Depends, ErrDependsMustBeStringOrArray))
		}
		resolved := make([]core.Unit, 0, len(deps))
		for _, depName := range deps {
			dep, ok := b.units[depName]
			if !ok {
				errs.Add(wrapError(u.Name+".depends", depName, ErrDependsUnknownUnit))
				continue
			}
			resolved = append(resolved, dep)
		}
		graph[unit] = resolved

		if u.Condition == nil {
			continue
		}
		cond, err := b.buildCondition(u.Condition)
		if err != nil {
			errs.Add(wrapError(u.Name+".condition", u.Condition, err))
			continue
		}
		conds.Add(unit, cond)
	}

	schedOpts := []sched.Option{sched.WithConditions(conds)}

	scales := lo.Keys(def.Termination)
	sort.Strings(scales)
	for _, scaleName := range scales {
		scale, err := core.ParseTimeScale(scaleName)
		if err != nil || (scale != core.Trial && scale != core.Run) {
			errs.Add(wrapError("termination", scaleName, ErrTerminationScaleInvalid))
			continue
		}
		cond, err := b.buildCondition(def.Termination[scaleName])
		if err != nil {
			errs.Add(wrapError("termination."+scaleName, def.Termination[scaleName], err))
			continue
		}
		schedOpts = append(schedOpts, sched.WithTerminationCondition(scale, cond))
	}

	if len(errs) > 0 {
		return nil, errs
	}

	scheduler, err := sched.New(graph, schedOpts...)
	if err != nil {
		return nil, err
	}

	logger.Debug(ctx, "Schedule built", tag.Name(name), tag.Count(len(def.Units)))

	return &Schedule{
		Name:        name,
		Description: def.Description,
		Scheduler:   scheduler,
	}, nil
}

// specBuilder resolves condition specs against the set of defined units.
type specBuilder struct {
	units map[string]core.Unit
}

func (b *specBuilder) unit(name string) (core.Unit, error) {
	if name == "" {
		return nil, ErrConditionUnitRequired
	}
	u, ok := b.units[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrConditionUnknownUnit, name)
	}
	return u, nil
}

// buildCondition narrows a raw condition value. Two shapes are accepted:
// a bare condition name,
//
//	condition: always
//
// or a single-key map whose value holds the arguments:
//
//	condition: {everyNCalls: {unit: A, n: 2}}
func (b *specBuilder) buildCondition(raw any) (condition.Condition, error) {
	switch v := raw.(type) {
	case string:
		fn, ok := conditionRegistry[strings.ToLower(v)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrConditionUnknownType, v)
		}
		return fn(b, nil)

	case map[string]any:
		if len(v) != 1 {
			return nil, ErrConditionMustBeStringOrMap
		}
		var key string
		var args any
		for k, a := range v {
			key, args = k, a
		}
		fn, ok := conditionRegistry[strings.ToLower(key)]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrConditionUnknownType, key)
		}
		return fn(b, args)

	default:
		return nil, ErrConditionMustBeStringOrMap
	}
}

func (b *specBuilder) buildConditionList(raw any) ([]condition.Condition, error) {
	items, ok := raw.([]any)
	if !ok || len(items) == 0 {
		return nil, ErrConditionListRequired
	}
	children := make([]condition.Condition, 0, len(items))
	for _, item := range items {
		child, err := b.buildCondition(item)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

type callArgs struct {
	Unit  string
	N     int
	Scale string
}

type countArgs struct {
	N     int
	Scale string
}

type allHaveRunArgs struct {
	Units []string
	Scale string
}

// decodeArgs maps raw condition arguments onto a typed struct. Unknown
// argument keys are errors. A nil raw value decodes every field to its
// zero value.
func decodeArgs(raw any, result any) error {
	if raw == nil {
		raw = map[string]any{}
	}
	md, _ := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      result,
	})
	return md.Decode(raw)
}

// parseScope converts an optional scale name into the variadic scope
// argument of the condition constructors. An empty name keeps the
// constructor's default scope.
func parseScope(scale string) ([]core.TimeScale, error) {
	if scale == "" {
		return nil, nil
	}
	scope, err := core.ParseTimeScale(scale)
	if err != nil {
		return nil, err
	}
	return []core.TimeScale{scope}, nil
}

func buildAlways(_ *specBuilder, raw any) (condition.Condition, error) {
	if err := decodeArgs(raw, &struct{}{}); err != nil {
		return nil, err
	}
	return condition.Always(), nil
}

func buildNever(_ *specBuilder, raw any) (condition.Condition, error) {
	if err := decodeArgs(raw, &struct{}{}); err != nil {
		return nil, err
	}
	return condition.Never(), nil
}

func buildEveryNCalls(b *specBuilder, raw any) (condition.Condition, error) {
	var args struct {
		Unit string
		N    int
	}
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	dep, err := b.unit(args.Unit)
	if err != nil {
		return nil, err
	}
	if args.N < 1 {
		return nil, ErrConditionCountRequired
	}
	return condition.EveryNCalls(dep, args.N), nil
}

func buildAfterNCalls(b *specBuilder, raw any) (condition.Condition, error) {
	return buildCallCount(b, raw, condition.AfterNCalls)
}

func buildAtNCalls(b *specBuilder, raw any) (condition.Condition, error) {
	return buildCallCount(b, raw, condition.AtNCalls)
}

func buildBeforeNCalls(b *specBuilder, raw any) (condition.Condition, error) {
	return buildCallCount(b, raw, condition.BeforeNCalls)
}

// buildCallCount handles the conditions that compare a unit's call total
// against a threshold within a scope.
func buildCallCount(b *specBuilder, raw any, newCond func(core.Unit, int, ...core.TimeScale) condition.Condition) (condition.Condition, error) {
	var args callArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	dep, err := b.unit(args.Unit)
	if err != nil {
		return nil, err
	}
	if args.N < 0 {
		return nil, ErrConditionCountInvalid
	}
	scope, err := parseScope(args.Scale)
	if err != nil {
		return nil, err
	}
	return newCond(dep, args.N, scope...), nil
}

func buildAtPass(_ *specBuilder, raw any) (condition.Condition, error) {
	return buildClockCount(raw, condition.AtPass)
}

func buildAfterPass(_ *specBuilder, raw any) (condition.Condition, error) {
	return buildClockCount(raw, condition.AfterPass)
}

func buildBeforePass(_ *specBuilder, raw any) (condition.Condition, error) {
	return buildClockCount(raw, condition.BeforePass)
}

func buildAfterNTrials(_ *specBuilder, raw any) (condition.Condition, error) {
	return buildClockCount(raw, condition.AfterNTrials)
}

func buildAtTrial(_ *specBuilder, raw any) (condition.Condition, error) {
	return buildClockCount(raw, condition.AtTrial)
}

// buildClockCount handles the conditions that compare a clock reading
// against a threshold within a scope.
func buildClockCount(raw any, newCond func(int, ...core.TimeScale) condition.Condition) (condition.Condition, error) {
	var args countArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.N < 0 {
		return nil, ErrConditionCountInvalid
	}
	scope, err := parseScope(args.Scale)
	if err != nil {
		return nil, err
	}
	return newCond(args.N, scope...), nil
}

func buildEveryNPasses(_ *specBuilder, raw any) (condition.Condition, error) {
	var args countArgs
	if err := decodeArgs(raw, &args); err != nil {
		return nil, err
	}
	if args.N < 1 {
		return nil, ErrConditionCountRequired
	}
	scope, err := parseScope(args.Scale)
	if err != nil {
		return nil, err
	}
	return condition.EveryNPasses(args.N, scope...), nil
}

// buildAllHaveRun accepts three shapes.
//
// Case 1: no arguments; every unit in the schedule must have run.
//
//	condition: allHaveRun
//
// Case 2: an array of unit names.
//
//	condition: {allHaveRun: [A, B]}
//
// Case 3: a map with units and an optional scale.
//
//	condition: {allHaveRun: {units: [A, B], scale: run}}
func buildAllHaveRun(b *specBuilder, raw any) (condition.Condition, error) {
	var names []string
	var scale string

	switch raw.(type) {
	case nil:
	case []any:
		parsed, err := parseStringOrArray(raw)
		if err != nil {
			return nil, err
		}
		names = parsed
	default:
		var args allHaveRunArgs
		if err := decodeArgs(raw, &args); err != nil {
			return nil, err
		}
		names = args.Units
		scale = args.Scale
	}

	deps := make([]core.Unit, 0, len(names))
	for _, name := range names {
		dep, err := b.unit(name)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}

	if scale == "" {
		return condition.AllHaveRun(deps...), nil
	}
	scope, err := core.ParseTimeScale(scale)
	if err != nil {
		return nil, err
	}
	return condition.AllHaveRunWithin(scope, deps...), nil
}

func buildAnyOf(b *specBuilder, raw any) (condition.Condition, error) {
	children, err := b.buildConditionList(raw)
	if err != nil {
		return nil, err
	}
	return condition.Any(children...), nil
}

func buildAllOf(b *specBuilder, raw any) (condition.Condition, error) {
	children, err := b.buildConditionList(raw)
	if err != nil {
		return nil, err
	}
	return condition.All(children...), nil
}

func buildNot(b *specBuilder, raw any) (condition.Condition, error) {
	if raw == nil {
		return nil, ErrConditionMustBeStringOrMap
	}
	child, err := b.buildCondition(raw)
	if err != nil {
		return nil, err
	}
	return condition.Not(child), nil
}

// parseStringOrArray narrows a field that accepts either a single string
// or an array of strings.
func parseStringOrArray(v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil

	case string:
		return []string{v}, nil

	case []any:
		var ret []string
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("string or array expected, got %T", item)
			}
			ret = append(ret, s)
		}
		return ret, nil

	default:
		return nil, fmt.Errorf("string or array expected, got %T", v)
	}
}
