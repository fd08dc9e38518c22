// Package catalog resolves free-text display device descriptions to
// canonical chipset names using an ordered table of hardware profiles.
package catalog

// HardwareProfile is one catalog entry. Pattern is a regular expression
// matched case-insensitively anywhere within a device description line.
type HardwareProfile struct {
	Name    string `yaml:"name" json:"name"`
	Pattern string `yaml:"pattern" json:"pattern"`
}
