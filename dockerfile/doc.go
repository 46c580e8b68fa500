// Package dockerfile assembles Dockerfiles as plain text.
//
// A [Dockerfile] holds an ordered sequence of directive lines. Each
// directive method formats its arguments into one line of Dockerfile
// syntax and appends it; lines are never reordered, merged, or
// deduplicated. No consistency checks of any kind are performed: image
// names, owners, protocols, and platforms are emitted verbatim.
//
// Values that the Dockerfile grammar expects as JSON (exec-form argument
// arrays, quoted defaults and labels) are encoded with standard JSON
// escaping. A [Dockerfile] is a plain mutable value with no internal
// locking; callers sharing one across goroutines must synchronize.
//
// Example usage:
//
//	df := dockerfile.New(dockerfile.Options{Syntax: "docker/dockerfile:1"})
//	df.From("golang:1.25", dockerfile.WithAs("build"))
//	df.Workdir("/src")
//	df.Run("go build -o /bin/app ./cmd/app")
//	df.Entrypoint("/bin/app", "--serve")
//
//	fmt.Print(df.String())
package dockerfile
