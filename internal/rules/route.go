package rules

// Route groups issues by the file they should surface in. Undefined-*
// issues attach to every flow file — occurrence locations are not tracked,
// so the router cannot narrow further. Unused-* issues attach to the
// file(s) that declared the item. Issues for the same name may land in
// overlapping file sets; nothing is deduplicated across kinds.
func Route(issues []Issue, flowFiles []string) map[string][]Issue {
	routed := map[string][]Issue{}
	for _, issue := range issues {
		targets := issue.Files
		if issue.Kind.Undefined() {
			targets = flowFiles
			issue.Files = flowFiles
		}
		for _, f := range targets {
			routed[f] = append(routed[f], issue)
		}
	}
	return routed
}
