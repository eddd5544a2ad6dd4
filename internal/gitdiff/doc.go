// Package gitdiff retrieves change text from a local git repository.
//
// It shells out to the git binary with the repository path as working
// directory, either diffing two tags ([Tags]) or showing a single commit
// ([Commit]). Lock files, minified assets, and build artifacts are excluded
// both through git pathspecs and a post-filter over diff sections, because
// they add bulk without meaning to a change summary.
//
// Failures carry the subprocess stderr through [*RunError] so an unknown
// tag or a path that is not a repository is diagnosable from the error
// message alone.
package gitdiff
