package dockerfile

import (
	"io"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "empty",
			opts: Options{},
			want: "",
		},
		{
			name: "syntax only",
			opts: Options{Syntax: "docker/dockerfile:1"},
			want: "# syntax: docker/dockerfile:1\n",
		},
		{
			name: "escape only",
			opts: Options{Escape: "`"},
			want: "# escape: `\n",
		},
		{
			name: "syntax before escape",
			opts: Options{Syntax: "docker/dockerfile:1", Escape: "`"},
			want: "# syntax: docker/dockerfile:1\n# escape: `\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.opts).String(); got != tt.want {
				t.Fatalf("rendered %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSyntaxPrecedesDirectives(t *testing.T) {
	d := New(Options{Syntax: "docker/dockerfile:1"})
	d.From("alpine:3.20")

	want := "# syntax: docker/dockerfile:1\nFROM alpine:3.20\n"
	if got := d.String(); got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestCallOrderPreserved(t *testing.T) {
	d := New(Options{})
	d.From("golang:1.25", WithAs("build"))
	d.Workdir("/src")
	d.Env("CGO_ENABLED", "0")
	d.Run("go build -o /bin/app ./cmd/app")
	d.From("alpine:3.20")
	if err := d.Copy(Src("/bin/app"), "/bin/app", WithFrom("build")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.Entrypoint("/bin/app")

	want := "FROM golang:1.25 as build\n" +
		"WORKDIR /src\n" +
		"ENV CGO_ENABLED=\"0\"\n" +
		"RUN go build -o /bin/app ./cmd/app\n" +
		"FROM alpine:3.20\n" +
		"COPY --from=build /bin/app /bin/app\n" +
		"ENTRYPOINT /bin/app\n"

	if got := d.String(); got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestStringIdempotent(t *testing.T) {
	d := New(Options{})
	d.From("alpine:3.20")
	d.Cmd("sh")

	first := d.String()
	second := d.String()
	if first != second {
		t.Fatalf("renders differ: %q vs %q", first, second)
	}

	// The document stays appendable after rendering.
	d.Workdir("/app")
	if got := d.String(); got != first+"WORKDIR /app\n" {
		t.Fatalf("rendered %q after append, want %q", got, first+"WORKDIR /app\n")
	}
}

func TestInclude(t *testing.T) {
	base := New(Options{})
	base.From("alpine:3.20")
	base.Run("apk add --no-cache ca-certificates")

	d := New(Options{Syntax: "docker/dockerfile:1"})
	pre := d.String()
	d.Include(base)

	if got := d.String(); got != pre+base.String() {
		t.Fatalf("rendered %q, want %q", got, pre+base.String())
	}
}

func TestIncludeCopiesLines(t *testing.T) {
	base := New(Options{})
	base.From("alpine:3.20")

	d := New(Options{})
	d.Include(base)
	snapshot := d.String()

	// Mutating the source after inclusion must not affect the target.
	base.Run("echo mutated")
	if got := d.String(); got != snapshot {
		t.Fatalf("target changed after source mutation: %q, want %q", got, snapshot)
	}

	// And vice versa.
	baseSnapshot := base.String()
	d.Workdir("/app")
	if got := base.String(); got != baseSnapshot {
		t.Fatalf("source changed after target mutation: %q, want %q", got, baseSnapshot)
	}
}

func TestReader(t *testing.T) {
	d := New(Options{})
	d.From("alpine:3.20")

	data, err := io.ReadAll(d.Reader())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != d.String() {
		t.Fatalf("reader yielded %q, want %q", data, d.String())
	}
}

func TestDigest(t *testing.T) {
	a := New(Options{})
	a.From("alpine:3.20")

	b := New(Options{})
	b.From("alpine:3.20")

	if a.Digest() != b.Digest() {
		t.Fatalf("digests differ for identical documents: %s vs %s", a.Digest(), b.Digest())
	}

	b.Workdir("/app")
	if a.Digest() == b.Digest() {
		t.Fatal("digests equal for different documents")
	}
}

func TestLen(t *testing.T) {
	d := New(Options{Syntax: "docker/dockerfile:1"})
	if d.Len() != 1 {
		t.Fatalf("len = %d, want 1", d.Len())
	}

	d.From("alpine:3.20")
	d.Cmd("sh")
	if d.Len() != 3 {
		t.Fatalf("len = %d, want 3", d.Len())
	}
}
