//go:build !cgo

package archive

import _ "modernc.org/sqlite"

// Without cgo the pure-Go driver keeps the archive usable; it registers as
// "sqlite".
const driverName = "sqlite"
