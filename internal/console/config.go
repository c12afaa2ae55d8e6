package console

import (
	"io"
	"os"

	"github.com/DVA506/SmartMove/internal/console/client"
	"github.com/DVA506/SmartMove/internal/console/notify"
	"github.com/DVA506/SmartMove/internal/console/recent"
	"github.com/DVA506/SmartMove/internal/console/refresh"
	"github.com/DVA506/SmartMove/internal/console/session"
	"github.com/DVA506/SmartMove/internal/console/view"
	"github.com/DVA506/SmartMove/pkg/options"
)

// Config carries the option groups the console is built from.
type Config struct {
	ApiOptions     *options.ApiOptions
	CacheOptions   *options.CacheOptions
	RefreshOptions *options.RefreshOptions
}

// NewConsole assembles the console from its components: remote client,
// recent-vehicle cache, notification sink, session, live view and refresh
// scheduler, reading operator commands from stdin.
func (cfg *Config) NewConsole() (*Console, error) {
	return cfg.newConsole(os.Stdin, os.Stdout)
}

func (cfg *Config) newConsole(in io.Reader, out io.Writer) (*Console, error) {
	store, err := recent.NewStore(cfg.CacheOptions)
	if err != nil {
		return nil, err
	}

	sess := session.New()
	sink := notify.NewSink(notify.WithListener(newPrinter(out)))
	apiClient := client.New(cfg.ApiOptions)
	liveView := view.New(sess, apiClient, store, sink)
	scheduler := refresh.New(liveView, sink, cfg.RefreshOptions)

	return &Console{
		client:    apiClient,
		recent:    store,
		sink:      sink,
		session:   sess,
		view:      liveView,
		scheduler: scheduler,
		in:        in,
		out:       out,
	}, nil
}
