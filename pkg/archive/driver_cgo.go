//go:build cgo

package archive

import _ "github.com/mattn/go-sqlite3"

// The cgo build links the C sqlite driver; it registers as "sqlite3".
const driverName = "sqlite3"
