// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package credential loads the taxpayer's digital certificate (e-CNPJ or e-CPF,
ICP-Brasil A1) used for mutual TLS with the SEFAZ web services.

The certificate arrives as a password-protected PKCS#12 blob, either raw
bytes, a string holding the same bytes, or a .pfx/.p12 file:

	id, err := credential.FromFile("certificado.pfx", os.Getenv("DFE_CERT_PASSWORD"))
	if err != nil {
	    return err
	}

	config := transport.DefaultHTTPSConfig()
	config.Certificates = []tls.Certificate{id.TLSCertificate()}

Only the legacy PKCS#12 encryption schemes (3DES and RC2 with SHA-1) are
supported, which is what certificate authorities issue A1 certificates with.
*/
package credential
