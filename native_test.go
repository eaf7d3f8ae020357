package hostbox

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestNativeEnvironmentDefaults(t *testing.T) {
	env := NewNativeEnvironment()

	if got := env.Name(); got != "native" {
		t.Errorf("Name() = %q, want %q", got, "native")
	}
	if !env.HasShellAccess() {
		t.Error("HasShellAccess() = false, want true")
	}
	if !env.HasFilesystemAccess() {
		t.Error("HasFilesystemAccess() = false, want true")
	}
	if !env.SupportsLongRunning() {
		t.Error("SupportsLongRunning() = false, want true")
	}
	if got := env.MemoryBudget(); got != 0 {
		t.Errorf("MemoryBudget() = %d, want 0 (unbounded)", got)
	}
}

func TestNativeCapabilityFlagsStable(t *testing.T) {
	env := NewNativeEnvironment()

	type snapshot struct {
		shell, fs, long bool
		budget          int64
		name            string
	}
	take := func() snapshot {
		return snapshot{
			shell:  env.HasShellAccess(),
			fs:     env.HasFilesystemAccess(),
			long:   env.SupportsLongRunning(),
			budget: env.MemoryBudget(),
			name:   env.Name(),
		}
	}

	before := take()
	for i := 0; i < 5; i++ {
		if _, err := env.BuildShellCommand("echo hello", t.TempDir()); err != nil {
			t.Fatalf("BuildShellCommand() error: %v", err)
		}
	}
	after := take()

	if before != after {
		t.Errorf("capability flags changed across calls: before %+v, after %+v", before, after)
	}
}

func TestNativeStoragePathUnderHome(t *testing.T) {
	env := NewNativeEnvironment()
	env.userHomeDir = func() (string, error) { return filepath.Join("/home", "tester"), nil }

	got := env.StoragePath()
	want := filepath.Join("/home", "tester", ".zeroclaw")
	if got != want {
		t.Errorf("StoragePath() = %q, want %q", got, want)
	}
}

func TestNativeStoragePathFallback(t *testing.T) {
	env := NewNativeEnvironment()
	env.userHomeDir = func() (string, error) { return "", errors.New("no home") }

	got := env.StoragePath()
	if got != ".zeroclaw" {
		t.Errorf("StoragePath() = %q, want relative %q", got, ".zeroclaw")
	}
}

func TestNativeStoragePathContainsAgentName(t *testing.T) {
	tests := []struct {
		name    string
		agent   string
		homeDir func() (string, error)
	}{
		{"default agent, home resolvable", DefaultAgentName, func() (string, error) { return "/home/tester", nil }},
		{"default agent, home unavailable", DefaultAgentName, func() (string, error) { return "", errors.New("no home") }},
		{"custom agent, home resolvable", "ironclaw", func() (string, error) { return "/home/tester", nil }},
		{"custom agent, home unavailable", "ironclaw", func() (string, error) { return "", errors.New("no home") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewNativeEnvironment(WithAgentName(tt.agent))
			env.userHomeDir = tt.homeDir

			got := env.StoragePath()
			if got == "" {
				t.Fatal("StoragePath() returned empty path")
			}
			if !strings.Contains(got, tt.agent) {
				t.Errorf("StoragePath() = %q, want it to contain agent name %q", got, tt.agent)
			}
		})
	}
}

func TestNativeStoragePathIdempotent(t *testing.T) {
	env := NewNativeEnvironment()
	env.userHomeDir = func() (string, error) { return "/home/tester", nil }

	first := env.StoragePath()

	// Resolution happens once; later host changes must not leak through.
	env.userHomeDir = func() (string, error) { return "/home/elsewhere", nil }
	second := env.StoragePath()

	if first != second {
		t.Errorf("StoragePath() not idempotent: first %q, second %q", first, second)
	}
}

func TestNativeStorageOverride(t *testing.T) {
	want := filepath.Join("/var", "lib", "zeroclaw")
	env := NewNativeEnvironment(WithStorageDir(want))
	if got := env.StoragePath(); got != want {
		t.Errorf("StoragePath() = %q, want override %q", got, want)
	}
}

// ----------------------------------------------------------------------------
// Shell invocation construction
// ----------------------------------------------------------------------------

func TestBuildShellSpecPOSIX(t *testing.T) {
	environ := []string{"PATH=/usr/bin:/bin", "HOME=/home/tester"}
	spec := buildShellSpec("linux", environ, "echo hello", "/tmp")

	if spec.Interpreter != "sh" {
		t.Errorf("Interpreter = %q, want %q", spec.Interpreter, "sh")
	}
	wantArgs := []string{"-c", "echo hello"}
	if len(spec.Args) != len(wantArgs) {
		t.Fatalf("Args = %v, want %v", spec.Args, wantArgs)
	}
	for i := range wantArgs {
		if spec.Args[i] != wantArgs[i] {
			t.Errorf("Args[%d] = %q, want %q", i, spec.Args[i], wantArgs[i])
		}
	}
	if spec.Dir != "/tmp" {
		t.Errorf("Dir = %q, want %q", spec.Dir, "/tmp")
	}
	if len(spec.Env) != len(environ) {
		t.Fatalf("Env = %v, want full propagation of %v", spec.Env, environ)
	}
	for i := range environ {
		if spec.Env[i] != environ[i] {
			t.Errorf("Env[%d] = %q, want %q", i, spec.Env[i], environ[i])
		}
	}
}

func TestBuildShellSpecWindowsComspec(t *testing.T) {
	environ := []string{`COMSPEC=C:\WINDOWS\system32\cmd.exe`, "PATH=C:\\bin"}
	spec := buildShellSpec("windows", environ, "echo hello", `C:\work`)

	if spec.Interpreter != `C:\WINDOWS\system32\cmd.exe` {
		t.Errorf("Interpreter = %q, want COMSPEC value", spec.Interpreter)
	}
	wantArgs := []string{"/d", "/s", "/c", "echo hello"}
	if len(spec.Args) != len(wantArgs) {
		t.Fatalf("Args = %v, want %v", spec.Args, wantArgs)
	}
	for i := range wantArgs {
		if spec.Args[i] != wantArgs[i] {
			t.Errorf("Args[%d] = %q, want %q", i, spec.Args[i], wantArgs[i])
		}
	}
	if spec.Dir != `C:\work` {
		t.Errorf("Dir = %q, want %q", spec.Dir, `C:\work`)
	}
}

func TestBuildShellSpecWindowsComspecUnset(t *testing.T) {
	spec := buildShellSpec("windows", []string{"PATH=C:\\bin"}, "dir", "")
	if spec.Interpreter != "cmd.exe" {
		t.Errorf("Interpreter = %q, want fallback %q", spec.Interpreter, "cmd.exe")
	}
}

func TestBuildShellSpecCommandIsFinalArgument(t *testing.T) {
	// The command travels as one argument, never re-split, on both families.
	command := `grep -r "a b c" . && echo done`
	for _, goos := range []string{"linux", "darwin", "windows"} {
		spec := buildShellSpec(goos, nil, command, ".")
		if got := spec.Args[len(spec.Args)-1]; got != command {
			t.Errorf("goos %s: final arg = %q, want raw command %q", goos, got, command)
		}
	}
}

func TestBuildShellSpecFreshPerCall(t *testing.T) {
	environ := []string{"PATH=/bin"}
	first := buildShellSpec("linux", environ, "echo one", "/tmp")
	second := buildShellSpec("linux", environ, "echo one", "/tmp")

	if first == second {
		t.Fatal("expected distinct ProcessSpec values per call")
	}
	first.Args[1] = "mutated"
	if second.Args[1] == "mutated" {
		t.Error("Args aliased between calls")
	}
	first.Env[0] = "PATH=/mutated"
	if second.Env[0] == "PATH=/mutated" || environ[0] == "PATH=/mutated" {
		t.Error("Env aliased between calls or with the source table")
	}
}

func TestNativeBuildShellCommandNeverFails(t *testing.T) {
	env := NewNativeEnvironment()
	commands := []string{
		"echo hello",
		"",
		"exit 1",
		"echo 'quoted \"nested\"'",
		strings.Repeat("x", 1<<16),
		"printf '\\xff'",
	}
	for _, command := range commands {
		if _, err := env.BuildShellCommand(command, "."); err != nil {
			t.Errorf("BuildShellCommand(%.20q) error: %v, want nil", command, err)
		}
	}
}

func TestNativeBuildShellCommandString(t *testing.T) {
	env := NewNativeEnvironment()
	spec, err := env.BuildShellCommand("echo hello", t.TempDir())
	if err != nil {
		t.Fatalf("BuildShellCommand() error: %v", err)
	}

	s := spec.String()
	if !strings.Contains(s, "echo hello") {
		t.Errorf("String() = %q, want it to contain the command text", s)
	}
	if runtime.GOOS == "windows" {
		if !strings.Contains(strings.ToLower(s), "cmd") {
			t.Errorf("String() = %q, want it to name the command processor", s)
		}
		if !strings.Contains(s, "/c") {
			t.Errorf("String() = %q, want it to contain /c", s)
		}
	} else {
		if !strings.Contains(s, "sh") {
			t.Errorf("String() = %q, want it to contain the interpreter", s)
		}
		if !strings.Contains(s, "-c") {
			t.Errorf("String() = %q, want it to contain -c", s)
		}
	}
}

func TestNativeEnvironCapture(t *testing.T) {
	env := NewNativeEnvironment(
		WithEnviron([]string{"PATH=/bin", "SECRET=s3cr3t", "LANG=C"}),
		WithEnv("EXTRA", "1"),
		WithoutEnv("SECRET"),
	)

	spec, err := env.BuildShellCommand("env", "/tmp")
	if err != nil {
		t.Fatalf("BuildShellCommand() error: %v", err)
	}

	want := map[string]string{"PATH": "/bin", "LANG": "C", "EXTRA": "1"}
	got := make(map[string]string, len(spec.Env))
	for _, e := range spec.Env {
		k, v, ok := strings.Cut(e, "=")
		if !ok {
			t.Fatalf("malformed env entry %q", e)
		}
		got[k] = v
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("child env %s = %q, want %q", k, got[k], v)
		}
	}
	if _, ok := got["SECRET"]; ok {
		t.Error("child env still contains SECRET after WithoutEnv")
	}
}

func TestWithEnvironCopiesInput(t *testing.T) {
	source := []string{"PATH=/bin"}
	env := NewNativeEnvironment(WithEnviron(source))
	source[0] = "PATH=/tampered"

	spec, err := env.BuildShellCommand("true", "/tmp")
	if err != nil {
		t.Fatalf("BuildShellCommand() error: %v", err)
	}
	if spec.Env[0] != "PATH=/bin" {
		t.Errorf("captured environ aliased caller slice: got %q", spec.Env[0])
	}
}
