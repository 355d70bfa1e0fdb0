package bimap

import _ "embed"

//go:embed LICENSE
var License string

// LegalText returns legal text to be included in human-readable output using bimap.
func LegalText() string {
	return `
================================================================================
bimap - A bidirectional map
================================================================================
` + License + "\n" + ""
}
