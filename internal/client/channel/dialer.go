package channel

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
)

type gorillaDialer struct {
	dialer *websocket.Dialer
}

// NewDialer returns a Dialer backed by gorilla's default websocket dialer.
func NewDialer() Dialer {
	return gorillaDialer{dialer: websocket.DefaultDialer}
}

func (d gorillaDialer) Dial(ctx context.Context, url string, header http.Header) (Conn, error) {
	conn, resp, err := d.dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, err
	}
	return conn, nil
}
