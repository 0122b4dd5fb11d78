package bitutil

// ConstTime selects which flavor of the conditional primitives below
// is used. The constant-time flavor (the default) never branches on
// its value arguments; disabling it is for test code that wants to
// assert against a reference branch-based implementation, mirroring
// the source's build-time `const_time_enabled`/`const_time_disabled`
// split without needing a separate build tag per package.
var ConstTime = true

// IfConditionIsTrue returns onTrue if cond == 1, else onFalse (cond
// must be 0 or 1), taking the constant-time or branching path
// depending on ConstTime. The ConstTime-disabled path intentionally
// branches on cond - it exists only so test code can assert the
// constant-time and reference implementations agree, never for
// production secret-dependent selection.
func IfConditionIsTrue(cond uint64, onTrue, onFalse uint64) uint64 {
	if !ConstTime {
		if cond != 0 {
			return onTrue
		}
		return onFalse
	}
	return Select(cond, onTrue, onFalse)
}

// IfConditionIsFalse is the complement of IfConditionIsTrue.
func IfConditionIsFalse(cond uint64, onTrue, onFalse uint64) uint64 {
	return IfConditionIsTrue(1-cond, onTrue, onFalse)
}
