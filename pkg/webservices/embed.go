package webservices

import (
	_ "embed"
	"sync"
)

//go:embed webservices.ini
var embeddedINI []byte

var (
	embeddedOnce  sync.Once
	embeddedStore MapStore
	embeddedErr   error
)

// Embedded returns the compiled-in webservices table. It is parsed once and
// shared; callers must treat it as read-only.
func Embedded() (MapStore, error) {
	embeddedOnce.Do(func() {
		embeddedStore, embeddedErr = FromINI(embeddedINI)
	})
	return embeddedStore, embeddedErr
}
