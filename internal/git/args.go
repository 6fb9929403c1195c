package git

// Splits the Git revisions from the paths given a list of args.
//
// Everything before "--" is a revision; everything after it is a path. Any
// further "--" is ignored.
func ParseArgs(args []string) (revs []string, paths []string) {
	revs = []string{}
	paths = []string{}

	finishedRevs := false
	for _, arg := range args {
		if arg == "--" {
			finishedRevs = true
			continue
		}

		if finishedRevs {
			paths = append(paths, arg)
		} else {
			revs = append(revs, arg)
		}
	}

	return revs, paths
}
