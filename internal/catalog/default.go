package catalog

// DefaultProfiles returns the built-in Intel integrated graphics catalog in
// scan order. Entries are matched against lspci lines, which carry the PCI
// vendor:device pair in brackets; a few entries also match the marketing
// name printed by older pci.ids databases.
//
// i965gme and gl960 share a PCI id. The catalog keeps both and the scan
// returns i965gme, the first declared.
func DefaultProfiles() []HardwareProfile {
	return []HardwareProfile{
		{Name: "i810", Pattern: `8086:7121`},
		{Name: "i810dc", Pattern: `8086:7123`},
		{Name: "i810e", Pattern: `8086:7125`},
		{Name: "i815", Pattern: `8086:1132`},
		{Name: "i830", Pattern: `8086:3577`},
		{Name: "i845", Pattern: `8086:2562`},
		{Name: "i855", Pattern: `8086:3582`},
		{Name: "i865", Pattern: `8086:2572`},
		{Name: "i915g", Pattern: `8086:2582`},
		{Name: "e7221", Pattern: `8086:258a`},
		{Name: "i915gm", Pattern: `8086:2592`},
		{Name: "i945g", Pattern: `8086:2772`},
		{Name: "i945gm", Pattern: `8086:27a2`},
		{Name: "i945gme", Pattern: `8086:27ae`},
		{Name: "pineview", Pattern: `8086:a0(01|11)`},
		{Name: "i965g", Pattern: `8086:29a2`},
		{Name: "g35", Pattern: `8086:2982`},
		{Name: "i965q", Pattern: `8086:2992`},
		{Name: "i946gz", Pattern: `8086:2972`},
		{Name: "i965gm", Pattern: `8086:2a02|GM965`},
		{Name: "i965gme", Pattern: `8086:2a12|GME965`},
		{Name: "gl960", Pattern: `8086:2a12`},
		{Name: "g33", Pattern: `8086:29c2`},
		{Name: "q35", Pattern: `8086:29b2`},
		{Name: "q33", Pattern: `8086:29d2`},
		{Name: "gm45", Pattern: `8086:2a42|GM45`},
		{Name: "g4x", Pattern: `8086:2e02`},
		{Name: "q45", Pattern: `8086:2e12`},
		{Name: "g45", Pattern: `8086:2e22`},
		{Name: "g41", Pattern: `8086:2e32`},
		{Name: "b43", Pattern: `8086:2e(42|92)`},
		{Name: "ironlake", Pattern: `8086:004[26]`},
		{Name: "sandybridge", Pattern: `8086:01(02|06|0a|12|16|22|26)`},
	}
}
