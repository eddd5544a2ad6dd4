// Package run sequences one analysis: diff retrieval, diff file write,
// summarization, summary file write. Stages execute strictly in order and
// the first failure aborts the rest.
package run
