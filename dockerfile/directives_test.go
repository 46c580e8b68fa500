package dockerfile

import (
	"errors"
	"testing"

	"github.com/containerd/errdefs"
)

func TestDirectiveFormats(t *testing.T) {
	tests := []struct {
		name string
		emit func(d *Dockerfile)
		want string
	}{
		{
			name: "add",
			emit: func(d *Dockerfile) { d.Add("site.tgz", "/srv/") },
			want: "ADD site.tgz /srv/\n",
		},
		{
			name: "add with chown",
			emit: func(d *Dockerfile) { d.Add("site.tgz", "/srv/", WithChown("app:app")) },
			want: "ADD --chown=app:app site.tgz /srv/\n",
		},
		{
			name: "arg without default",
			emit: func(d *Dockerfile) { d.Arg("FOO") },
			want: "ARG FOO\n",
		},
		{
			name: "arg with default",
			emit: func(d *Dockerfile) { d.Arg("FOO", WithDefault("bar")) },
			want: "ARG FOO=\"bar\"\n",
		},
		{
			name: "arg with empty default",
			emit: func(d *Dockerfile) { d.Arg("FOO", WithDefault("")) },
			want: "ARG FOO=\"\"\n",
		},
		{
			name: "cmd shell form",
			emit: func(d *Dockerfile) { d.Cmd("echo hi") },
			want: "CMD echo hi\n",
		},
		{
			name: "cmd exec form",
			emit: func(d *Dockerfile) { d.Cmd("echo", "hi") },
			want: "CMD [\"echo\", \"hi\"]\n",
		},
		{
			name: "entrypoint shell form",
			emit: func(d *Dockerfile) { d.Entrypoint("/bin/app --serve") },
			want: "ENTRYPOINT /bin/app --serve\n",
		},
		{
			name: "entrypoint exec form",
			emit: func(d *Dockerfile) { d.Entrypoint("/bin/app", "--serve") },
			want: "ENTRYPOINT [\"/bin/app\", \"--serve\"]\n",
		},
		{
			name: "env",
			emit: func(d *Dockerfile) { d.Env("PATH", "/usr/bin") },
			want: "ENV PATH=\"/usr/bin\"\n",
		},
		{
			name: "env quotes special characters",
			emit: func(d *Dockerfile) { d.Env("MOTD", "say \"hi\"\\bye") },
			want: "ENV MOTD=\"say \\\"hi\\\"\\\\bye\"\n",
		},
		{
			name: "expose default protocol",
			emit: func(d *Dockerfile) { d.Expose(8080) },
			want: "EXPOSE 8080/tcp\n",
		},
		{
			name: "expose udp",
			emit: func(d *Dockerfile) { d.Expose(53, WithProto("udp")) },
			want: "EXPOSE 53/udp\n",
		},
		{
			name: "from",
			emit: func(d *Dockerfile) { d.From("python:3.11") },
			want: "FROM python:3.11\n",
		},
		{
			name: "from with alias",
			emit: func(d *Dockerfile) { d.From("python:3.11", WithAs("builder")) },
			want: "FROM python:3.11 as builder\n",
		},
		{
			// No space between the platform clause and the image.
			name: "from with platform",
			emit: func(d *Dockerfile) { d.From("golang:1.25", WithPlatform("linux/amd64")) },
			want: "FROM --platform=linux/amd64golang:1.25\n",
		},
		{
			name: "label",
			emit: func(d *Dockerfile) { d.Label("org.opencontainers.image.source", "https://example.org") },
			want: "LABEL \"org.opencontainers.image.source\"=\"https://example.org\"\n",
		},
		{
			name: "run shell form",
			emit: func(d *Dockerfile) { d.Run("go build ./...") },
			want: "RUN go build ./...\n",
		},
		{
			name: "run exec form",
			emit: func(d *Dockerfile) { d.Run("go", "build", "./...") },
			want: "RUN [\"go\", \"build\", \"./...\"]\n",
		},
		{
			name: "shell always array form",
			emit: func(d *Dockerfile) { d.Shell("/bin/bash") },
			want: "SHELL [\"/bin/bash\"]\n",
		},
		{
			name: "shell with params",
			emit: func(d *Dockerfile) { d.Shell("/bin/bash", "-c") },
			want: "SHELL [\"/bin/bash\", \"-c\"]\n",
		},
		{
			name: "user",
			emit: func(d *Dockerfile) { d.User("app") },
			want: "USER app\n",
		},
		{
			name: "user with group",
			emit: func(d *Dockerfile) { d.User("app", WithGroup("wheel")) },
			want: "USER app:wheel\n",
		},
		{
			name: "volume always list form",
			emit: func(d *Dockerfile) { d.Volume("/data") },
			want: "VOLUME [\"/data\"]\n",
		},
		{
			name: "volume with additional paths",
			emit: func(d *Dockerfile) { d.Volume("/data", "/logs") },
			want: "VOLUME [\"/data\", \"/logs\"]\n",
		},
		{
			name: "workdir",
			emit: func(d *Dockerfile) { d.Workdir("/app") },
			want: "WORKDIR /app\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(Options{})
			tt.emit(d)
			if got := d.String(); got != tt.want {
				t.Fatalf("rendered %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCopy(t *testing.T) {
	tests := []struct {
		name string
		src  Source
		dest string
		opts []Option
		want string
	}{
		{
			name: "single source",
			src:  Src("a.txt"),
			dest: "/dest/",
			want: "COPY a.txt /dest/\n",
		},
		{
			name: "source list",
			src:  SrcList("a.txt", "b.txt"),
			dest: "/dest/",
			want: "COPY [\"a.txt\", \"b.txt\", \"/dest/\"]\n",
		},
		{
			name: "from stage",
			src:  Src("/bin/app"),
			dest: "/usr/local/bin/",
			opts: []Option{WithFrom("build")},
			want: "COPY --from=build /bin/app /usr/local/bin/\n",
		},
		{
			name: "from stage and chown",
			src:  Src("/bin/app"),
			dest: "/usr/local/bin/",
			opts: []Option{WithFrom("build"), WithChown("app")},
			want: "COPY --from=build --chown=app /bin/app /usr/local/bin/\n",
		},
		{
			name: "chown with list source",
			src:  SrcList("a", "b"),
			dest: "/x/",
			opts: []Option{WithChown("app:app")},
			want: "COPY --chown=app:app [\"a\", \"b\", \"/x/\"]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(Options{})
			if err := d.Copy(tt.src, tt.dest, tt.opts...); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := d.String(); got != tt.want {
				t.Fatalf("rendered %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCopyInvalidSource(t *testing.T) {
	d := New(Options{})

	err := d.Copy(Source{}, "/dest/")
	if err == nil {
		t.Fatal("expected error for zero-value source, got nil")
	}
	if !errors.Is(err, ErrInvalidSource) {
		t.Fatalf("err = %v, want ErrInvalidSource", err)
	}
	if !errdefs.IsInvalidArgument(err) {
		t.Fatalf("err = %v, want invalid-argument classification", err)
	}

	// Nothing is appended on failure.
	if d.Len() != 0 {
		t.Fatalf("len = %d after failed copy, want 0", d.Len())
	}
}

func TestCopyListSourceNotAliased(t *testing.T) {
	paths := []string{"a.txt", "b.txt"}
	src := SrcList(paths...)

	d := New(Options{})
	if err := d.Copy(src, "/dest/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	paths[0] = "mutated"
	if err := d.Copy(SrcList("c.txt"), "/dest/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "COPY [\"a.txt\", \"b.txt\", \"/dest/\"]\nCOPY [\"c.txt\", \"/dest/\"]\n"
	if got := d.String(); got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}

func TestInapplicableOptionsIgnored(t *testing.T) {
	d := New(Options{})
	d.Workdir("/app")
	d.Add("a", "/b", WithAs("nope"), WithProto("udp"))

	want := "WORKDIR /app\nADD a /b\n"
	if got := d.String(); got != want {
		t.Fatalf("rendered %q, want %q", got, want)
	}
}
