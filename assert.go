package motif

// assert panics with msg when cond is false. Builds tagged motif_release compile
// the check away, so it must only guard programmer errors.
func assert(cond bool, msg string) {
	if assertionsEnabled && !cond {
		panic(msg)
	}
}
