package pod

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"solidpod/pkg/transport"
)

type fakeCall struct {
	method  string
	url     string
	headers map[string]string
	body    string
}

type fakeResp struct {
	status int
	body   []byte
}

func (r fakeResp) StatusCode() int { return r.status }
func (r fakeResp) Body() []byte    { return r.body }

// fakeTransport records every request and answers via handle.
type fakeTransport struct {
	mu     sync.Mutex
	calls  []fakeCall
	handle func(method, url string, headers map[string]string, body []byte) (int, string, error)
}

func (f *fakeTransport) do(method, url string, headers map[string]string, body []byte) (transport.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, fakeCall{method: method, url: url, headers: headers, body: string(body)})
	f.mu.Unlock()
	status, respBody, err := f.handle(method, url, headers, body)
	if err != nil {
		return nil, err
	}
	return fakeResp{status: status, body: []byte(respBody)}, nil
}

func (f *fakeTransport) Get(ctx context.Context, url string, headers map[string]string) (transport.Response, error) {
	return f.do("GET", url, headers, nil)
}

func (f *fakeTransport) Post(ctx context.Context, url string, body []byte, headers map[string]string) (transport.Response, error) {
	return f.do("POST", url, headers, body)
}

func (f *fakeTransport) Put(ctx context.Context, url string, body []byte, headers map[string]string) (transport.Response, error) {
	return f.do("PUT", url, headers, body)
}

func (f *fakeTransport) Close() {}

func (f *fakeTransport) callsByMethod(method string) []fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []fakeCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

const base = "https://solid.example.org/alice/"

func TestNew_NormalizesPodURL(t *testing.T) {
	c := New("https://solid.example.org/alice", &fakeTransport{}, discardLogger())
	if c.PodURL() != base {
		t.Fatalf("PodURL = %q, want %q", c.PodURL(), base)
	}
}

func TestCreateContainer_AlreadyExists(t *testing.T) {
	ft := &fakeTransport{handle: func(method, url string, _ map[string]string, _ []byte) (int, string, error) {
		if method == "GET" && url == base+"notes" {
			return 200, "", nil
		}
		t.Errorf("unexpected request %s %s", method, url)
		return 500, "", nil
	}}
	c := New(base, ft, discardLogger())

	if err := c.CreateContainer(context.Background(), "notes"); err != nil {
		t.Fatalf("CreateContainer: %v", err)
	}
	if posts := ft.callsByMethod("POST"); len(posts) != 0 {
		t.Fatalf("expected no POST for existing container, got %d", len(posts))
	}
}

func TestCreateContainer_Creates(t *testing.T) {
	ft := &fakeTransport{handle: func(method, url string, _ map[string]string, _ []byte) (int, string, error) {
		switch method {
		case "GET":
			return 404, "", nil
		case "POST":
			return 201, "", nil
		}
		return 500, "", nil
	}}
	c := New(base, ft, discardLogger())

	if err := c.CreateContainer(context.Background(), "notes"); err != nil {
		t.Fatalf("CreateContainer: %v", err)
	}

	posts := ft.callsByMethod("POST")
	if len(posts) != 1 {
		t.Fatalf("expected exactly one POST, got %d", len(posts))
	}
	p := posts[0]
	if p.url != base {
		t.Errorf("POST url = %q, want pod root %q", p.url, base)
	}
	if p.headers["Slug"] != "notes/" {
		t.Errorf("Slug = %q, want %q", p.headers["Slug"], "notes/")
	}
	if p.headers["Content-Type"] != "text/turtle" {
		t.Errorf("Content-Type = %q", p.headers["Content-Type"])
	}
	if p.headers["Link"] != `<http://www.w3.org/ns/ldp/BasicContainer>; rel="type"` {
		t.Errorf("Link = %q", p.headers["Link"])
	}
	if !strings.Contains(p.body, `dcterms:title "notes"`) {
		t.Errorf("body missing title triple:\n%s", p.body)
	}
	if !strings.Contains(p.body, `dcterms:description "Container created by agents"`) {
		t.Errorf("body missing description triple:\n%s", p.body)
	}
}

func TestCreateContainer_StatusFailure(t *testing.T) {
	ft := &fakeTransport{handle: func(method, _ string, _ map[string]string, _ []byte) (int, string, error) {
		if method == "GET" {
			return 404, "", nil
		}
		return 500, "boom", nil
	}}
	c := New(base, ft, discardLogger())

	err := c.CreateContainer(context.Background(), "notes")
	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("want *OpError, got %v", err)
	}
	if opErr.Status != 500 || opErr.Transport() {
		t.Fatalf("got %+v, want status failure 500", opErr)
	}
}

func TestPublishData_ExistingResourcePut(t *testing.T) {
	ft := &fakeTransport{handle: func(method, url string, _ map[string]string, _ []byte) (int, string, error) {
		switch method {
		case "GET":
			return 200, "a\n", nil
		case "PUT":
			return 200, "", nil
		}
		return 500, "", nil
	}}
	c := New(base, ft, discardLogger())

	if err := c.PublishData(context.Background(), "notes", "log.txt", []string{"a", "b"}); err != nil {
		t.Fatalf("PublishData: %v", err)
	}

	puts := ft.callsByMethod("PUT")
	if len(puts) != 1 {
		t.Fatalf("expected one PUT, got %d", len(puts))
	}
	if puts[0].url != base+"notes/log.txt" {
		t.Errorf("PUT url = %q", puts[0].url)
	}
	if puts[0].body != "a\nb\n" {
		t.Errorf("PUT body = %q, want %q", puts[0].body, "a\nb\n")
	}
	if puts[0].headers["Content-Type"] != "text/plain" {
		t.Errorf("Content-Type = %q", puts[0].headers["Content-Type"])
	}
	if len(ft.callsByMethod("POST")) != 0 {
		t.Error("unexpected POST for existing resource")
	}
}

func TestPublishData_NewResourcePost(t *testing.T) {
	ft := &fakeTransport{handle: func(method, url string, _ map[string]string, _ []byte) (int, string, error) {
		switch method {
		case "GET":
			return 404, "", nil
		case "POST":
			return 201, "", nil
		}
		return 500, "", nil
	}}
	c := New(base, ft, discardLogger())

	if err := c.PublishData(context.Background(), "notes", "log.txt", []string{"x"}); err != nil {
		t.Fatalf("PublishData: %v", err)
	}

	posts := ft.callsByMethod("POST")
	if len(posts) != 1 {
		t.Fatalf("expected one POST, got %d", len(posts))
	}
	if posts[0].url != base+"notes" {
		t.Errorf("POST url = %q, want container URL %q", posts[0].url, base+"notes")
	}
	if posts[0].body != "x\n" {
		t.Errorf("POST body = %q, want %q", posts[0].body, "x\n")
	}
	if posts[0].headers["Slug"] != "log.txt" {
		t.Errorf("Slug = %q, want file name", posts[0].headers["Slug"])
	}
	if len(ft.callsByMethod("PUT")) != 0 {
		t.Error("unexpected PUT for new resource")
	}
}

func TestReadData_OK(t *testing.T) {
	ft := &fakeTransport{handle: func(method, url string, headers map[string]string, _ []byte) (int, string, error) {
		if headers["Content-Type"] != "text/plain" {
			t.Errorf("read GET missing Content-Type header, got %v", headers)
		}
		return 200, "a\nb\nc\n", nil
	}}
	c := New(base, ft, discardLogger())

	vals, err := c.ReadData(context.Background(), "notes", "log.txt")
	if err != nil {
		t.Fatalf("ReadData: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(vals) != len(want) {
		t.Fatalf("got %v, want %v", vals, want)
	}
	for i := range want {
		if vals[i] != want[i] {
			t.Fatalf("got %v, want %v", vals, want)
		}
	}
}

func TestReadData_NotFound(t *testing.T) {
	ft := &fakeTransport{handle: func(_, _ string, _ map[string]string, _ []byte) (int, string, error) {
		return 404, "not here", nil
	}}
	c := New(base, ft, discardLogger())

	_, err := c.ReadData(context.Background(), "notes", "log.txt")
	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("want *OpError, got %v", err)
	}
	if opErr.Status != 404 {
		t.Fatalf("Status = %d, want 404", opErr.Status)
	}
}

func TestReadData_TransportFailure(t *testing.T) {
	sentinel := errors.New("connection reset")
	ft := &fakeTransport{handle: func(_, _ string, _ map[string]string, _ []byte) (int, string, error) {
		return 0, "", sentinel
	}}
	c := New(base, ft, discardLogger())

	_, err := c.ReadData(context.Background(), "notes", "log.txt")
	var opErr *OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("want *OpError, got %v", err)
	}
	if !opErr.Transport() || !errors.Is(err, sentinel) {
		t.Fatalf("want wrapped transport failure, got %+v", opErr)
	}
}

// A minimal stateful store: UpdateData must append to what is already there.
func TestUpdateData_Appends(t *testing.T) {
	store := map[string]string{base + "notes/log.txt": "a\n"}
	var mu sync.Mutex

	ft := &fakeTransport{}
	ft.handle = func(method, url string, headers map[string]string, body []byte) (int, string, error) {
		mu.Lock()
		defer mu.Unlock()
		switch method {
		case "GET":
			if content, ok := store[url]; ok {
				return 200, content, nil
			}
			return 404, "", nil
		case "PUT":
			store[url] = string(body)
			return 200, "", nil
		case "POST":
			store[url+"/"+headers["Slug"]] = string(body)
			return 201, "", nil
		}
		return 500, "", nil
	}
	c := New(base, ft, discardLogger())
	ctx := context.Background()

	if err := c.UpdateData(ctx, "notes", "log.txt", []string{"b"}); err != nil {
		t.Fatalf("UpdateData: %v", err)
	}

	vals, err := c.ReadData(ctx, "notes", "log.txt")
	if err != nil {
		t.Fatalf("ReadData: %v", err)
	}
	if len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Fatalf("got %v, want [a b]", vals)
	}
}

// A failed read during update is treated as "no previous data": the new
// values are still published.
func TestUpdateData_ReadFailureTreatedAsEmpty(t *testing.T) {
	var mu sync.Mutex
	store := map[string]string{}

	ft := &fakeTransport{}
	ft.handle = func(method, url string, headers map[string]string, body []byte) (int, string, error) {
		mu.Lock()
		defer mu.Unlock()
		switch method {
		case "GET":
			if content, ok := store[url]; ok {
				return 200, content, nil
			}
			return 404, "", nil
		case "POST":
			store[url+"/"+headers["Slug"]] = string(body)
			return 201, "", nil
		}
		return 500, "", nil
	}
	c := New(base, ft, discardLogger())
	ctx := context.Background()

	if err := c.UpdateData(ctx, "notes", "log.txt", []string{"y"}); err != nil {
		t.Fatalf("UpdateData: %v", err)
	}

	vals, err := c.ReadData(ctx, "notes", "log.txt")
	if err != nil {
		t.Fatalf("ReadData: %v", err)
	}
	if len(vals) != 1 || vals[0] != "y" {
		t.Fatalf("got %v, want [y]", vals)
	}
}
