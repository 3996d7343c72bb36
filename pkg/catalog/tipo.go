package catalog

import "strings"

// Tipo is the document type family, which selects the portal namespace
type Tipo uint8

const (
	TipoNFe Tipo = iota + 1
	TipoCTe
	TipoMDFe
)

// Valid reports whether t is a declared document type
func (t Tipo) Valid() bool {
	return t >= TipoNFe && t <= TipoMDFe
}

// String returns the lowercase path segment of the portal namespace
func (t Tipo) String() string {
	switch t {
	case TipoNFe:
		return "nfe"
	case TipoCTe:
		return "cte"
	case TipoMDFe:
		return "mdfe"
	}
	return ""
}

// Nome returns the infix used in element names such as consSitNFe and chNFe
func (t Tipo) Nome() string {
	switch t {
	case TipoNFe:
		return "NFe"
	case TipoCTe:
		return "CTe"
	case TipoMDFe:
		return "MDFe"
	}
	return ""
}

// ParseTipo decodes a document type, ignoring case
func ParseTipo(s string) (Tipo, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nfe":
		return TipoNFe, true
	case "cte":
		return TipoCTe, true
	case "mdfe":
		return TipoMDFe, true
	}
	return 0, false
}
