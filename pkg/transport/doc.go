// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package transport implements the HTTPS transport for SEFAZ SOAP 1.2 calls.

Requests are authenticated with the taxpayer's client certificate (mutual
TLS) and carry the operation in the SOAPAction header.

# TLS Configuration

The defaults allow TLS 1.2 and TLS 1.3:

	config := transport.DefaultHTTPSConfig()
	// MinTLSVersion: TLS 1.2
	// MaxTLSVersion: TLS 1.3
	// Timeout: 30s, ConnectTimeout: 5s

For TLS 1.2, the following cipher suites are recommended:
  - TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384
  - TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256
  - TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384
  - TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256

Several authorities serve certificate chains that are not in the system
pool. Either add the chain to RootCAs or set InsecureSkipVerify.

# Client Usage

	config := transport.DefaultHTTPSConfig()
	config.Certificates = []tls.Certificate{identity.TLSCertificate()}
	config.RateLimit = 5 // requests per second
	client := transport.NewHTTPSClient(config)

	response, err := client.Execute(ctx, url, action, envelope)

Every request is a POST with:

	Content-Type: application/soap+xml; charset=utf-8
	SOAPAction: <action>
	User-Agent: go-dfe/1.0
	Accept-Encoding: gzip

# Errors

Failures are returned as *Error with a Category (timeout, canceled, tls,
connection, status, read, request). All of them match ErrTransport:

	if errors.Is(err, transport.ErrTransport) {
	    log.Printf("category %s", transport.GetCategory(err))
	}

Non-2xx responses keep the status code and body for diagnostics.

# References

  - TLS 1.3 RFC 8446: https://datatracker.ietf.org/doc/html/rfc8446
  - TLS 1.2 RFC 5246: https://datatracker.ietf.org/doc/html/rfc5246
  - SOAP 1.2 HTTP binding: https://www.w3.org/TR/soap12-part2/#soapinhttp
*/
package transport
