//go:build motif_release

package motif

const assertionsEnabled = false
