package catalog

// TipoDocumento is the kind of a taxpayer identifier
type TipoDocumento uint8

const (
	CPF TipoDocumento = iota + 1
	CNPJ
	IE
)

// String returns the XML tag carrying the identifier in a ConsCad body
func (t TipoDocumento) String() string {
	switch t {
	case CPF:
		return "CPF"
	case CNPJ:
		return "CNPJ"
	case IE:
		return "IE"
	}
	return ""
}

// Documento is a taxpayer identifier tagged with its kind. Its contents are
// not validated locally; the authority checks them.
type Documento struct {
	valor string
	tipo  TipoDocumento
}

// NewCPF creates a CPF identifier
func NewCPF(cpf string) Documento {
	return Documento{valor: cpf, tipo: CPF}
}

// NewCNPJ creates a CNPJ identifier
func NewCNPJ(cnpj string) Documento {
	return Documento{valor: cnpj, tipo: CNPJ}
}

// NewIE creates a state registration identifier
func NewIE(ie string) Documento {
	return Documento{valor: ie, tipo: IE}
}

// Valor returns the identifier value
func (d Documento) Valor() string {
	return d.valor
}

// Tipo returns the identifier kind
func (d Documento) Tipo() TipoDocumento {
	return d.tipo
}

// String returns the identifier value
func (d Documento) String() string {
	return d.valor
}
