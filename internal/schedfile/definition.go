package schedfile

// definition is the raw schedule file before validation. Field types stay
// loose where the file format accepts more than one shape; the builder
// narrows them and reports structural errors.
type definition struct {
	// Name of the schedule. Defaults to the file name when empty.
	Name string
	// Description is an optional free-form note shown in dry-run output.
	Description string
	// Units lists the schedulable units.
	Units []unitDef
	// Termination maps a time scale name (trial, run) to a condition spec.
	Termination map[string]any
}

// unitDef is the raw representation of a single unit entry.
type unitDef struct {
	// Name identifies the unit. Required and unique within the file.
	Name string
	// Depends lists units that must sit in an earlier layer of the
	// consideration queue. Accepts a string or an array of strings.
	Depends any
	// Condition gates the unit's eligibility each time step. Accepts a
	// condition name ("always") or a single-key map such as
	// {everyNCalls: {unit: A, n: 2}}. Units without a condition are
	// always eligible.
	Condition any
}
