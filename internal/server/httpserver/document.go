package httpserver

import (
	"fmt"
	"net"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/LAAOUAFIFATIHA/mediatech-portal/internal/server/service"
)

// DocumentHTTP hands order documents to the client as an opaque byte
// stream. Rendering is delegated to a remote document service; this
// handler only checks the caller may see the invoice, then proxies.
type DocumentHTTP struct {
	Svc   *service.InvoiceService
	proxy *httputil.ReverseProxy
}

func NewDocumentHTTP(svc *service.InvoiceService, documentSvcURL string) (*DocumentHTTP, error) {
	h := &DocumentHTTP{Svc: svc}
	if documentSvcURL == "" {
		return h, nil
	}

	target, err := url.Parse(documentSvcURL)
	if err != nil {
		return nil, fmt.Errorf("document service url: %w", err)
	}

	p := httputil.NewSingleHostReverseProxy(target)
	p.Transport = &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 60 * time.Second,
		}).DialContext,
		MaxIdleConns:        50,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	origDirector := p.Director
	p.Director = func(req *http.Request) {
		origDirector(req)
		// The upstream never sees the portal credential.
		req.Header.Del("Authorization")
	}
	p.FlushInterval = 100 * time.Millisecond

	h.proxy = p
	return h, nil
}

func (h *DocumentHTTP) Download(c echo.Context) error {
	id, err := orderID(c)
	if err != nil {
		return err
	}
	if _, err := h.Svc.Get(c.Request().Context(), id, actorFrom(c)); err != nil {
		return httpError(err)
	}

	if h.proxy == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "document service not configured")
	}

	req := c.Request().Clone(c.Request().Context())
	req.URL.Path = fmt.Sprintf("/invoices/%d.pdf", id)
	h.proxy.ServeHTTP(c.Response(), req)
	return nil
}
