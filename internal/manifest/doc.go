// Package manifest loads kiln recipe manifests and compiles them into
// Dockerfiles.
//
// A recipe is an ordered sequence of stages, each with a base image and
// a list of steps. Every step carries exactly one instruction, keyed by
// the instruction name. Stages and steps compile to directives in
// declaration order; global build args are emitted before the first
// stage.
//
// Example manifest:
//
//	syntax: docker/dockerfile:1
//	args:
//	  VERSION: "1.0"
//	stages:
//	  - name: build
//	    from: golang:1.25
//	    steps:
//	      - workdir: /src
//	      - copy: {src: [go.mod, go.sum], dest: ./}
//	      - run: go build -o /bin/app ./cmd/app
//	  - from: alpine:3.20
//	    platform: linux/amd64
//	    steps:
//	      - copy: {src: /bin/app, dest: /bin/app, from: build}
//	      - entrypoint: [/bin/app]
package manifest
