// Tagsum summarizes the changes between two release tags of a local git
// repository using an LLM provider.
//
// It shells out to git for the diff, sends it to a hosted completion API
// with a fixed analysis instruction, and writes two report files: the raw
// diff and the generated summary.
//
// Usage:
//
//	tagsum -p video-lib -f v1.2.0 -t v1.3.0     # summarize changes between tags
//	tagsum commit abc1234 -p video-lib           # summarize a single commit
//	tagsum config init                           # create a default config file
//
// The repository defaults to ./repositories/<project> and can be overridden
// with --path. The API key is read from the environment (OPENAI_API_KEY or
// ANTHROPIC_API_KEY), optionally loaded from a .env file in the working
// directory.
package main
