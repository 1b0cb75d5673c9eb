package restypool

import (
	"context"
	"sync"

	"solidpod/pkg/config"
	"solidpod/pkg/rr"
	"solidpod/pkg/transport"

	resty "resty.dev/v3"
)

var _ transport.Client = (*ClientPool)(nil)

// ClientPool spreads pod requests across a fixed set of resty clients.
type ClientPool struct {
	clients   []*resty.Client
	spin      rr.RR
	cfg       config.Config
	closeOnce sync.Once
}

func New(cfg config.Config) *ClientPool {
	if cfg.Size <= 0 {
		cfg.Size = config.DefaultConfig().Size
	}

	cs := make([]*resty.Client, 0, cfg.Size)
	for i := 0; i < cfg.Size; i++ {
		cs = append(cs, newRestyClient(cfg))
	}
	return &ClientPool{clients: cs, cfg: cfg}
}

func (p *ClientPool) Get(ctx context.Context, url string, headers map[string]string) (transport.Response, error) {
	res, err := p.next().R().SetContext(ctx).SetHeaders(headers).Get(url)
	if err != nil {
		return nil, err
	}
	return newRestyResp(res), nil
}

func (p *ClientPool) Post(ctx context.Context, url string, body []byte, headers map[string]string) (transport.Response, error) {
	res, err := p.next().R().SetContext(ctx).SetHeaders(headers).SetBody(body).Post(url)
	if err != nil {
		return nil, err
	}
	return newRestyResp(res), nil
}

func (p *ClientPool) Put(ctx context.Context, url string, body []byte, headers map[string]string) (transport.Response, error) {
	res, err := p.next().R().SetContext(ctx).SetHeaders(headers).SetBody(body).Put(url)
	if err != nil {
		return nil, err
	}
	return newRestyResp(res), nil
}

func (p *ClientPool) next() *resty.Client {
	return p.clients[p.spin.Next(len(p.clients))]
}

func (p *ClientPool) Close() {
	p.closeOnce.Do(func() {
		for _, c := range p.clients {
			_ = c.Close()
		}
	})
}
