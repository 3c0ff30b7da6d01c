package search

// classify decides whether entry is returned as a result (yield) and whether
// its contents are scheduled for traversal (descend).
//
// Directories need IncludeDirs and a matching name for either. Reparse points
// can be yielded but are never descended. Descent does not depend on the
// directory being yielded; the two decisions just happen to share inputs.
// Files only ever yield.
func classify(spec *Spec, entry Entry) (yield, descend bool) {
	if entry.IsDir {
		if !spec.IncludeDirs || !matches(spec, entry.Name) {
			return false, false
		}

		return true, !entry.IsReparsePoint
	}

	return spec.IncludeFiles && matches(spec, entry.Name), false
}

func matches(spec *Spec, name string) bool {
	return !spec.hasPattern() || spec.Matcher.Match(name)
}
