package options

// Enum is a set of binder behavior flags.
type Enum int

const (
	ImplicitEmbedded Enum = 1 << iota // fields promoted from embedded structs are bound without a tag
	WriteComments                     // comment tags are rendered above keys the pass writes or that lack one
	PersistOnLoad                     // a load that backfilled the store saves the backing file

	All     Enum = (1 << iota) - 1 // all flags combined
	None    Enum = 0               // no flags selected
	Default Enum = All
)

// Has reports whether every flag of f is set in e.
func (e Enum) Has(f Enum) bool {
	return e&f == f
}

// With returns e with f set.
func (e Enum) With(f Enum) Enum {
	return e | f
}

// Without returns e with f cleared.
func (e Enum) Without(f Enum) Enum {
	return e &^ f
}
