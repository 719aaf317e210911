package discovery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/muurk/wot-discovery/internal/version"
	"github.com/muurk/wot-discovery/thing"
)

// acceptHeader prefers the TD media type but accepts plain JSON
const acceptHeader = "application/td+json, application/json;q=0.9"

// Record is a discovered Thing together with the announcement it came from
type Record[E thing.List] struct {
	// Thing is the fetched Thing Description with extension fields
	Thing thing.Document[E]

	// Info is the raw announcement (addresses, port, hostname, TXT)
	Info ServiceInfo

	// Scheme is the resolved URI scheme ("http", "https", or advertised value)
	Scheme string

	// URL is the address the Thing Description was fetched from
	URL string
}

// fetch resolves info and retrieves its Thing Description with one GET.
// It never retries and imposes no timeout of its own.
func fetch[E thing.List](ctx context.Context, client *http.Client, info *ServiceInfo, logger *zap.Logger) (*Record[E], error) {
	target, err := Resolve(info)
	if err != nil {
		return nil, err
	}

	url := target.URL()
	logger.Debug("Fetching thing description",
		zap.String("instance", info.Instance),
		zap.String("scheme", target.Scheme),
		zap.String("host", target.Host),
		zap.Int("port", target.Port),
		zap.String("path", target.Path),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newTransportError("new request", url, err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := client.Do(req)
	if err != nil {
		return nil, newTransportError("get", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newStatusError(url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newTransportError("read body", url, err)
	}

	rec := &Record[E]{
		Info:   *info,
		Scheme: target.Scheme,
		URL:    url,
	}
	if err := json.Unmarshal(body, &rec.Thing); err != nil {
		return nil, newDeserializationError(url, err)
	}

	return rec, nil
}
