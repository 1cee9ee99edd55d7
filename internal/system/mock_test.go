package system

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"testing"
)

func TestMockFS_ReadWriteFile(t *testing.T) {
	mockFS := NewMockFS()

	content := []byte("hello world")
	if err := mockFS.WriteFile("/test/file.txt", content, 0644); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	data, err := mockFS.ReadFile("/test/file.txt")
	if err != nil {
		t.Fatalf("ReadFile error: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("ReadFile = %q, want %q", string(data), "hello world")
	}
}

func TestMockFS_ReadFile_NotExists(t *testing.T) {
	mockFS := NewMockFS()

	_, err := mockFS.ReadFile("/nonexistent")
	if err != fs.ErrNotExist {
		t.Errorf("ReadFile error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_Exists(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/data/file.txt", []byte("x"), 0644)

	if !mockFS.Exists("/data/file.txt") {
		t.Error("File should exist")
	}
	if !mockFS.Exists("/data") {
		t.Error("Parent dir should exist")
	}
	if mockFS.Exists("/nonexistent") {
		t.Error("Nonexistent should not exist")
	}
}

func TestMockFS_Remove(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.AddFile("/file.txt", []byte("x"), 0644)

	if err := mockFS.Remove("/file.txt"); err != nil {
		t.Fatalf("Remove error: %v", err)
	}
	if mockFS.Exists("/file.txt") {
		t.Error("File should be removed")
	}
	if err := mockFS.Remove("/file.txt"); err != fs.ErrNotExist {
		t.Errorf("second Remove error = %v, want fs.ErrNotExist", err)
	}
}

func TestMockFS_MkdirAll(t *testing.T) {
	mockFS := NewMockFS()

	if err := mockFS.MkdirAll("/a/b/c", 0755); err != nil {
		t.Fatalf("MkdirAll error: %v", err)
	}
	for _, dir := range []string{"/a", "/a/b", "/a/b/c"} {
		if !mockFS.Exists(dir) {
			t.Errorf("%s should exist", dir)
		}
	}
}

func TestMockFS_ErrorInjection(t *testing.T) {
	mockFS := NewMockFS()
	mockFS.WriteFileErr = fmt.Errorf("disk full")

	if err := mockFS.WriteFile("/file", nil, 0644); err == nil {
		t.Error("WriteFile should return injected error")
	}
}

func TestMockExecutor_LongestPrefixWins(t *testing.T) {
	mockExec := NewMockExecutor()
	mockExec.AddResponse("docker", []byte("generic"), nil)
	mockExec.AddResponse("docker container create", []byte("created"), nil)

	out, err := mockExec.Execute(context.Background(), "docker", "container", "create", "--name", "tmp")
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if string(out) != "created" {
		t.Errorf("Execute = %q, want %q", out, "created")
	}

	out, _ = mockExec.Execute(context.Background(), "docker", "info")
	if string(out) != "generic" {
		t.Errorf("Execute = %q, want %q", out, "generic")
	}
}

func TestMockExecutor_PrefixMatchesWholeWords(t *testing.T) {
	mockExec := NewMockExecutor()
	mockExec.AddResponse("docker i", []byte("wrong"), nil)
	mockExec.DefaultResponse = MockResponse{Output: []byte("default")}

	out, _ := mockExec.Execute(context.Background(), "docker", "info")
	if string(out) != "default" {
		t.Errorf("Execute = %q, want %q", out, "default")
	}
}

func TestMockExecutor_AddExit(t *testing.T) {
	mockExec := NewMockExecutor()
	mockExec.AddExit("edge device start", 1, "", "device already running")

	stdout, stderr, err := mockExec.Output(context.Background(), "edge", "device", "start")
	if len(stdout) != 0 {
		t.Errorf("stdout = %q, want empty", stdout)
	}
	if string(stderr) != "device already running" {
		t.Errorf("stderr = %q, want %q", stderr, "device already running")
	}
	if got := ExitCode(err); got != 1 {
		t.Errorf("ExitCode = %d, want 1", got)
	}
}

func TestMockExecutor_LookPath(t *testing.T) {
	mockExec := NewMockExecutor()
	mockExec.MissingBinaries["docker"] = true
	mockExec.Paths["edge"] = "/opt/edge/edge"

	if _, err := mockExec.LookPath("docker"); !IsNotFound(err) {
		t.Errorf("LookPath(docker) error = %v, want not found", err)
	}
	if p, err := mockExec.LookPath("edge"); err != nil || p != "/opt/edge/edge" {
		t.Errorf("LookPath(edge) = %q, %v", p, err)
	}
	if p, _ := mockExec.LookPath("alpine"); p != "/usr/bin/alpine" {
		t.Errorf("LookPath(alpine) = %q, want default path", p)
	}
	if _, _, err := mockExec.Output(context.Background(), "docker", "info"); !IsNotFound(err) {
		t.Errorf("Output(docker info) error = %v, want not found", err)
	}
}

func TestMockExecutor_Reset(t *testing.T) {
	mockExec := NewMockExecutor()
	_, _ = mockExec.Execute(context.Background(), "docker", "info")

	if _, ok := mockExec.LastCommand(); !ok {
		t.Fatal("LastCommand should exist before Reset")
	}
	mockExec.Reset()
	if _, ok := mockExec.LastCommand(); ok {
		t.Error("LastCommand should not exist after Reset")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"exit error", &ExitError{Code: 3}, 3},
		{"wrapped exit error", fmt.Errorf("run: %w", &ExitError{Code: 1}), 1},
		{"not found", &exec.Error{Name: "docker", Err: exec.ErrNotFound}, -1},
		{"plain", errors.New("boom"), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError_Error(t *testing.T) {
	if got := (&ExitError{Code: 2}).Error(); got != "exit status 2" {
		t.Errorf("Error() = %q, want %q", got, "exit status 2")
	}
}
