// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package container

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	streamFunc    func(name string, args []string, stdout, stderr io.Writer) error
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(_ context.Context, name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunStreamed(_ context.Context, name string, args []string, stdout, stderr io.Writer) error {
	if m.streamFunc != nil {
		return m.streamFunc(name, args, stdout, stderr)
	}
	return nil
}

func TestDetectRuntime(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "neither available",
			exec: &mockExecutor{
				availableBins: map[string]bool{},
				runnableCmds:  map[string]bool{},
			},
			wantErr: true,
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "both available, docker preferred",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"docker info": true, "podman info": true},
			},
			wantName: "docker",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detectRuntime(context.Background(), tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no container runtime available") {
					t.Errorf("error should mention no runtime available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("got runtime %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestImageExists(t *testing.T) {
	tests := []struct {
		name    string
		mkRT    func(*mockExecutor) Runtime
		image   string
		cmds    map[string]bool
		wantErr bool
	}{
		{
			name:  "docker image exists",
			mkRT:  func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image: "libreoffice:latest",
			cmds:  map[string]bool{"docker image inspect libreoffice:latest": true},
		},
		{
			name:    "docker image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			image:   "libreoffice:latest",
			cmds:    map[string]bool{},
			wantErr: true,
		},
		{
			name:  "podman image exists",
			mkRT:  func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image: "libreoffice:latest",
			cmds:  map[string]bool{"podman image exists libreoffice:latest": true},
		},
		{
			name:    "podman image not found",
			mkRT:    func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			image:   "libreoffice:latest",
			cmds:    map[string]bool{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{runnableCmds: tt.cmds}
			rt := tt.mkRT(exec)
			err := rt.ImageExists(context.Background(), tt.image)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.image) {
					t.Errorf("error should mention image name, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRun(t *testing.T) {
	spec := RunSpec{
		Image:      "libreoffice:latest",
		Entrypoint: "soffice",
		Mounts:     []Mount{{Source: "/tmp/job", Target: "/work"}},
		Workdir:    "/work",
		Args:       []string{"--headless", "--convert-to", "pdf", "report.xlsx"},
	}

	tests := []struct {
		name       string
		mkRT       func(*mockExecutor) Runtime
		spec       RunSpec
		streamFunc func(string, []string, io.Writer, io.Writer) error
		wantArgs   string
		wantOut    string
		wantErr    bool
	}{
		{
			name: "docker run with mounts and entrypoint",
			mkRT: func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			spec: spec,
			streamFunc: func(name string, args []string, stdout, _ io.Writer) error {
				if name != "docker" {
					return errors.New("expected docker binary")
				}
				_, _ = stdout.Write([]byte("convert report.xlsx -> report.pdf"))
				return nil
			},
			wantArgs: "run --rm -v /tmp/job:/work -w /work --entrypoint soffice libreoffice:latest --headless --convert-to pdf report.xlsx",
			wantOut:  "convert report.xlsx -> report.pdf",
		},
		{
			name: "read-only mount",
			mkRT: func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			spec: RunSpec{
				Image:  "libreoffice:latest",
				Mounts: []Mount{{Source: "/tmp/src", Target: "/in", ReadOnly: true}, {Source: "/tmp/out", Target: "/out"}},
				Args:   []string{"--version"},
			},
			wantArgs: "run --rm -v /tmp/src:/in:ro -v /tmp/out:/out libreoffice:latest --version",
		},
		{
			name: "podman run without overrides",
			mkRT: func(e *mockExecutor) Runtime { return newPodmanRuntime(e) },
			spec: RunSpec{Image: "libreoffice:latest", Args: []string{"--version"}},
			streamFunc: func(name string, args []string, stdout, _ io.Writer) error {
				if name != "podman" {
					return errors.New("expected podman binary")
				}
				return nil
			},
			wantArgs: "run --rm libreoffice:latest --version",
		},
		{
			name: "run failure returns wrapped error",
			mkRT: func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			spec: spec,
			streamFunc: func(string, []string, io.Writer, io.Writer) error {
				return errors.New("container exited with code 1")
			},
			wantErr: true,
		},
		{
			name:    "missing image",
			mkRT:    func(e *mockExecutor) Runtime { return newDockerRuntime(e) },
			spec:    RunSpec{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotArgs []string
			exec := &mockExecutor{streamFunc: func(name string, args []string, stdout, stderr io.Writer) error {
				gotArgs = args
				if tt.streamFunc != nil {
					return tt.streamFunc(name, args, stdout, stderr)
				}
				return nil
			}}
			rt := tt.mkRT(exec)
			var out bytes.Buffer
			err := rt.Run(context.Background(), tt.spec, &out, io.Discard)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := strings.Join(gotArgs, " "); got != tt.wantArgs {
				t.Errorf("got args %q, want %q", got, tt.wantArgs)
			}
			if got := out.String(); got != tt.wantOut {
				t.Errorf("got output %q, want %q", got, tt.wantOut)
			}
		})
	}
}

func TestRuntimeName(t *testing.T) {
	exec := &mockExecutor{}
	docker := newDockerRuntime(exec)
	if docker.Name() != "docker" {
		t.Errorf("docker runtime name = %q, want %q", docker.Name(), "docker")
	}
	podman := newPodmanRuntime(exec)
	if podman.Name() != "podman" {
		t.Errorf("podman runtime name = %q, want %q", podman.Name(), "podman")
	}
}
