// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package webservices resolves the SEFAZ endpoint URL for a request.

Endpoint URLs live in a Store: a read-only mapping from a section name to
key/value pairs. Sections are named "{modelo}_{uf}_{ambiente}" (for example
"NFe_MT_H") and keys are service lookup keys such as "NfeStatusServico_4.00".

# Stores

	store, err := webservices.LoadINIFile("webservices.ini")
	store, err := webservices.FromYAML(data)
	store, err := webservices.Embedded()

A section may contain the key "Usar", naming another section to use instead.
States served by a shared authority use it to point at, for example,
"NFe_SVRS_P".

# Resolution Order

The Resolver applies these rules, first match wins:

 1. ConsultaCadastro for PA, AM, AL, AP, DF, PI, RJ, RO, SE or TO fails with
    ErrUnsupportedForUF.
 2. National services (DistribuicaoDFe, Manifestacao and EPEC by default)
    use "{modelo}_AN_H" or "{modelo}_AN_P".
 3. A "Usar" value in the default section replaces it, except for the
    URL-only services.
 4. In contingency, GO, AM, BA, CE, MA, MS, MT, PA, PE, PI and PR use
    "{modelo}_SVRS_{ambiente}"; every other state uses
    "{modelo}_SVC-AN_{ambiente}".
 5. Otherwise the default section is used.

The service lookup key is then read from the chosen section. The value is
returned as-is; URL shape is not checked.

Resolution is a pure read of the Store and safe for concurrent use.
*/
package webservices
