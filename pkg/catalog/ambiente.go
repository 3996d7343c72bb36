package catalog

// Ambiente is the deployment target of the remote service
type Ambiente uint8

const (
	Producao Ambiente = iota + 1
	Homologacao
)

// Valid reports whether a is a declared environment
func (a Ambiente) Valid() bool {
	return a == Producao || a == Homologacao
}

// String returns the one-letter code used in section names
func (a Ambiente) String() string {
	switch a {
	case Producao:
		return "P"
	case Homologacao:
		return "H"
	}
	return ""
}

// TpAmb returns the tpAmb flag carried in request bodies
func (a Ambiente) TpAmb() uint8 {
	switch a {
	case Producao:
		return 1
	case Homologacao:
		return 2
	}
	return 0
}

// ParseAmbiente decodes an environment from the first character of s, so
// "P", "producao" and "Homologação" are all accepted.
func ParseAmbiente(s string) (Ambiente, bool) {
	if s == "" {
		return 0, false
	}
	switch s[0] {
	case 'P', 'p':
		return Producao, true
	case 'H', 'h':
		return Homologacao, true
	}
	return 0, false
}
