// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package catalog defines the closed enumerations and the service catalog used
by the SEFAZ DF-e web services.

All values in this package are immutable lookup tables. Every accessor is a
total function with no side effects, so values may be shared freely between
goroutines.

# Identifier Types

	UF             - the 27 state tax authorities (RO, AC, ..., DF) and their cUF codes
	Ambiente       - Producao (tpAmb 1) or Homologacao (tpAmb 2)
	Modelo         - document model used in endpoint sections (NFe 55, NFCe 65)
	Tipo           - document type used in namespaces (nfe, cte, mdfe)
	TipoDocumento  - taxpayer identifier kind (CPF, CNPJ, IE)

Parsing is case-insensitive and reports unknown input through a boolean:

	uf, ok := catalog.ParseUF("mt")         // catalog.MT, true
	amb, ok := catalog.ParseAmbiente("Homologação") // catalog.Homologacao, true

ParseAmbiente only looks at the first character of its input.

# Service Catalog

Each Servico carries its display name, schema version, the key used to find
its URL inside a webservices section and, except for the URL-only services,
the wire operation name placed in the SOAP action:

	catalog.StatusServico.Chave()    // "NfeStatusServico_4.00"
	catalog.StatusServico.Operacao() // "NFeStatusServico4", true
	catalog.URLQRCode.Operacao()     // "", false

# Structural Validation

ValidarChave and ValidarRecibo check the access key (44 digits) and the
receipt number (15 digits) before any request is built.
*/
package catalog
