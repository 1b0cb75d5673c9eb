package fiberpool

import (
	"context"
	"sync"

	"solidpod/pkg/config"
	"solidpod/pkg/rr"
	"solidpod/pkg/transport"

	fibercli "github.com/gofiber/fiber/v3/client"
)

var _ transport.Client = (*ClientPool)(nil)

// ClientPool spreads pod requests across a fixed set of fiber clients.
// The fiber client has no per-request context API, so ctx is ignored;
// cancellation is bounded by the configured request timeout.
type ClientPool struct {
	clients   []*fibercli.Client
	spin      rr.RR
	cfg       config.Config
	closeOnce sync.Once
}

func New(cfg config.Config) *ClientPool {
	if cfg.Size <= 0 {
		cfg.Size = config.DefaultConfig().Size
	}
	cs := make([]*fibercli.Client, 0, cfg.Size)
	for i := 0; i < cfg.Size; i++ {
		cs = append(cs, newFiberClient(cfg))
	}
	return &ClientPool{clients: cs, cfg: cfg}
}

func (p *ClientPool) Get(ctx context.Context, url string, headers map[string]string) (transport.Response, error) {
	res, err := p.next().Get(url, fibercli.Config{Header: headers})
	if err != nil {
		return nil, err
	}
	return newFiberResp(res), nil
}

func (p *ClientPool) Post(ctx context.Context, url string, body []byte, headers map[string]string) (transport.Response, error) {
	res, err := p.next().Post(url, fibercli.Config{Header: headers, Body: body})
	if err != nil {
		return nil, err
	}
	return newFiberResp(res), nil
}

func (p *ClientPool) Put(ctx context.Context, url string, body []byte, headers map[string]string) (transport.Response, error) {
	res, err := p.next().Put(url, fibercli.Config{Header: headers, Body: body})
	if err != nil {
		return nil, err
	}
	return newFiberResp(res), nil
}

func (p *ClientPool) next() *fibercli.Client {
	return p.clients[p.spin.Next(len(p.clients))]
}

func (p *ClientPool) Close() {
	p.closeOnce.Do(func() {
	})
}
