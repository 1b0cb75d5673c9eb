// Package pod is a thin client for the Linked Data Platform interface of a
// Solid pod: create containers, publish newline-delimited text resources,
// read them back, and append to them.
//
// Client returns typed errors; Artifact wraps it with the legacy
// fire-and-forget contract expected by a hosting agent runtime.
package pod

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"solidpod/pkg/config"
	"solidpod/pkg/fiberpool"
	"solidpod/pkg/lines"
	"solidpod/pkg/restypool"
	"solidpod/pkg/transport"
)

// Client performs LDP operations against a single pod. The pod base URL is
// fixed at construction and never changes.
type Client struct {
	podURL string
	hc     transport.Client
	log    *slog.Logger
}

// New wraps an existing transport. The pod URL is normalized to end with a
// slash. A nil logger falls back to slog.Default().
func New(podURL string, hc transport.Client, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if !strings.HasSuffix(podURL, "/") {
		podURL += "/"
	}
	return &Client{podURL: podURL, hc: hc, log: logger}
}

// Open validates cfg, builds the transport backend it names, and returns a
// ready Client.
func Open(cfg config.Config, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(&cfg); err != nil {
		return nil, err
	}
	var hc transport.Client
	switch cfg.Backend {
	case config.BackendFiber:
		hc = fiberpool.New(cfg)
	default:
		hc = restypool.New(cfg)
	}
	return New(cfg.PodURL, hc, logger), nil
}

func (c *Client) PodURL() string { return c.podURL }

func (c *Client) Close() { c.hc.Close() }

func (c *Client) containerURL(name string) string { return c.podURL + name }

func (c *Client) resourceURL(container, file string) string {
	return c.podURL + container + "/" + file
}

// exists probes url with a bare GET. Anything but a 200, transport failures
// included, reads as absent. Cheap enough to call before every write.
func (c *Client) exists(ctx context.Context, url string) bool {
	resp, err := c.hc.Get(ctx, url, nil)
	if err != nil {
		c.log.Debug("existence probe failed", "url", url, "error", err)
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

// CreateContainer creates an LDP basic container under the pod root. If a
// resource with that name already exists the call is a no-op. The probe and
// the POST are not atomic; a concurrent creator can still win the race and
// the server then decides the outcome.
func (c *Client) CreateContainer(ctx context.Context, name string) error {
	if c.exists(ctx, c.containerURL(name)) {
		return nil
	}
	headers := map[string]string{
		"Content-Type": contentTypeTurtle,
		"Link":         linkBasicContainer,
		"Slug":         name + "/",
	}
	resp, err := c.hc.Post(ctx, c.podURL, []byte(containerTurtle(name)), headers)
	if err != nil {
		return transportErr("create container", c.podURL, err)
	}
	if resp.StatusCode() != http.StatusCreated {
		return statusErr("create container", c.podURL, resp.StatusCode())
	}
	c.log.Info("container created", "name", name)
	return nil
}

// PublishData writes values as a newline-delimited text resource. An
// existing resource is replaced with PUT; a new one is created by POSTing to
// the container with a Slug naming the file.
func (c *Client) PublishData(ctx context.Context, container, file string, values []string) error {
	body := []byte(lines.Join(values))
	headers := map[string]string{"Content-Type": contentTypePlain}

	url := c.resourceURL(container, file)
	var (
		resp transport.Response
		err  error
	)
	if c.exists(ctx, url) {
		resp, err = c.hc.Put(ctx, url, body, headers)
	} else {
		url = c.containerURL(container)
		headers["Slug"] = file
		resp, err = c.hc.Post(ctx, url, body, headers)
	}
	if err != nil {
		return transportErr("publish data", url, err)
	}
	if s := resp.StatusCode(); s != http.StatusOK && s != http.StatusCreated {
		return statusErr("publish data", url, s)
	}
	return nil
}

// ReadData fetches the resource and decodes it. The Content-Type request
// header does nothing on a GET but is part of the wire contract this client
// reproduces.
func (c *Client) ReadData(ctx context.Context, container, file string) ([]string, error) {
	url := c.resourceURL(container, file)
	resp, err := c.hc.Get(ctx, url, map[string]string{"Content-Type": contentTypePlain})
	if err != nil {
		return nil, transportErr("read data", url, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, statusErr("read data", url, resp.StatusCode())
	}
	return lines.Split(string(resp.Body())), nil
}

// UpdateData appends values to the resource via read-merge-write. There is
// no conditional request: two concurrent updates can interleave and one
// writer's values can be lost. A failed read is logged and treated as "no
// previous data".
func (c *Client) UpdateData(ctx context.Context, container, file string, values []string) error {
	old, err := c.ReadData(ctx, container, file)
	if err != nil {
		c.log.Warn("reading previous data failed, treating as empty",
			"container", container, "file", file, "error", err)
		old = nil
	}
	return c.PublishData(ctx, container, file, append(old, values...))
}
