// The shopper binary runs the device-side runtime: it keeps the event
// channel alive, escalates incoming alerts on the terminal, and reconciles
// the local order view against the REST API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mnpatel007/delhiveryway-shopper/internal/client"
	"github.com/mnpatel007/delhiveryway-shopper/internal/client/alert"
	"github.com/mnpatel007/delhiveryway-shopper/internal/client/channel"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	app := client.NewApp(client.Config{
		ChannelURL:  goDotEnvVariable("CHANNEL_URL"),
		APIBaseURL:  goDotEnvVariable("API_BASE_URL"),
		ShopperID:   goDotEnvVariable("SHOPPER_ID"),
		Constrained: os.Getenv("CONSTRAINED_DEVICE") == "true",
	},
		channel.NewDialer(),
		staticToken(goDotEnvVariable("SHOPPER_TOKEN")),
		nil,
		terminalChannel{name: "notifier"},
		terminalChannel{name: "audio", bell: true},
		terminalChannel{name: "banner"},
		terminalChannel{name: "prompt"},
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Shopper runtime stopped: %v", err)
	}
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

// staticToken presents the same bearer token on every dial.
type staticToken string

func (t staticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

// terminalChannel renders every attention surface as a terminal line; the
// audio surface additionally rings the bell.
type terminalChannel struct {
	name string
	bell bool
}

func (c terminalChannel) Name() string { return c.name }

func (c terminalChannel) Deliver(_ context.Context, a alert.Alert) error {
	if c.bell {
		fmt.Print("\a")
	}
	fmt.Printf("[%s] %s: %s\n", c.name, a.Title, a.Body)
	return nil
}
