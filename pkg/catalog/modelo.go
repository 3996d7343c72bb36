package catalog

import "strings"

// Modelo is the fiscal document model a request concerns
type Modelo uint8

const (
	NFe Modelo = iota + 1
	NFCe
)

// Valid reports whether m is a declared model
func (m Modelo) Valid() bool {
	return m == NFe || m == NFCe
}

// String returns the display code used in section names
func (m Modelo) String() string {
	switch m {
	case NFe:
		return "NFe"
	case NFCe:
		return "NFCe"
	}
	return ""
}

// Codigo returns the numeric model code (mod)
func (m Modelo) Codigo() uint8 {
	switch m {
	case NFe:
		return 55
	case NFCe:
		return 65
	}
	return 0
}

// ParseModelo decodes a model from its display code or numeric code
func ParseModelo(s string) (Modelo, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nfe", "55":
		return NFe, true
	case "nfce", "65":
		return NFCe, true
	}
	return 0, false
}
