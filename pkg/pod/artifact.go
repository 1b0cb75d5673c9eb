package pod

import (
	"context"
	"fmt"
	"log/slog"

	"solidpod/pkg/config"
)

// Artifact is the surface handed to a hosting agent runtime: the four pod
// operations with the legacy fire-and-forget contract. Every failure is
// logged and swallowed; reads yield an empty slice whether the resource was
// empty, missing, or unreachable.
type Artifact struct {
	client *Client
	log    *slog.Logger
}

// NewArtifact returns an uninitialized artifact. Operations before Init are
// logged no-ops.
func NewArtifact(logger *slog.Logger) *Artifact {
	if logger == nil {
		logger = slog.Default()
	}
	return &Artifact{log: logger}
}

// NewArtifactWithClient wraps an already constructed Client.
func NewArtifactWithClient(c *Client) *Artifact {
	return &Artifact{client: c, log: c.log}
}

// Init receives the pod base URL from the runtime and opens a client with
// default settings.
func (a *Artifact) Init(podURL string) {
	cfg := config.DefaultConfig()
	cfg.PodURL = podURL
	c, err := Open(cfg, a.log)
	if err != nil {
		a.log.Error("pod artifact init failed", "pod_url", podURL, "error", err)
		return
	}
	a.client = c
	a.log.Info("pod artifact initialized", "pod_url", c.PodURL())
}

func (a *Artifact) ready(op string) bool {
	if a.client == nil {
		a.log.Error("pod artifact not initialized", "op", op)
		return false
	}
	return true
}

func (a *Artifact) CreateContainer(ctx context.Context, name string) {
	if !a.ready("create container") {
		return
	}
	if err := a.client.CreateContainer(ctx, name); err != nil {
		a.log.Error("error while creating container", "name", name, "error", err)
	}
}

// PublishData writes the string forms of values to container/file.
func (a *Artifact) PublishData(ctx context.Context, container, file string, values []any) {
	if !a.ready("publish data") {
		return
	}
	if err := a.client.PublishData(ctx, container, file, renderValues(values)); err != nil {
		a.log.Error("error while writing file", "container", container, "file", file, "error", err)
	}
}

// ReadData returns the values stored in container/file. The result is empty
// on any failure; callers cannot tell a missing resource from an empty one.
func (a *Artifact) ReadData(ctx context.Context, container, file string) []string {
	if !a.ready("read data") {
		return []string{}
	}
	vals, err := a.client.ReadData(ctx, container, file)
	if err != nil {
		a.log.Error("error while reading data", "container", container, "file", file, "error", err)
		return []string{}
	}
	return vals
}

// UpdateData appends the string forms of values to container/file.
func (a *Artifact) UpdateData(ctx context.Context, container, file string, values []any) {
	if !a.ready("update data") {
		return
	}
	if err := a.client.UpdateData(ctx, container, file, renderValues(values)); err != nil {
		a.log.Error("error while updating data", "container", container, "file", file, "error", err)
	}
}

func renderValues(values []any) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = fmt.Sprint(v)
	}
	return out
}
