// Package jokeapitests contains the JokeAPI contract tests themselves and their supporting API.
//
// Infrastructure that is not specific to JokeAPI, such as running a test tree and sending
// HTTP cases, is in the lower-level framework and httpcase packages.
package jokeapitests
