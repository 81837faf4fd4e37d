package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/fingerchart/layout"
	"github.com/jsphweid/fingerchart/render"
	"github.com/spf13/cobra"
)

const (
	pollInterval  = 250 * time.Millisecond
	settleTimeout = 300 * time.Millisecond
)

func init() {
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <input> <output>",
	Short: "Re-renders a chart whenever its input changes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := chartOptions()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		Watch(ctx, args[0], args[1], opt, pollInterval)
		return nil
	},
}

type fileState struct {
	modTime time.Time
	size    int64
	exists  bool
}

func (s fileState) same(o fileState) bool {
	return s.exists == o.exists && s.size == o.size && s.modTime.Equal(o.modTime)
}

func stat(path string) fileState {
	fi, err := os.Stat(path)
	if err != nil {
		return fileState{}
	}
	return fileState{modTime: fi.ModTime(), size: fi.Size(), exists: true}
}

// Watch renders in to out once, then polls in every interval and renders
// again after changes have settled. Failures are logged and watching
// continues. It returns when ctx is done and no render is running; no
// render starts after that.
func Watch(ctx context.Context, in, out string, opt render.Options, interval time.Duration) {
	log := layout.Logger()

	var (
		mu      sync.Mutex // guards stopped
		stopped bool
		running sync.WaitGroup
		renders sync.Mutex // one render at a time
	)
	renderOnce := func() {
		mu.Lock()
		if stopped || ctx.Err() != nil {
			mu.Unlock()
			return
		}
		running.Add(1)
		mu.Unlock()
		defer running.Done()

		renders.Lock()
		defer renders.Unlock()
		if err := RenderChart(ctx, in, out, opt, ""); err != nil {
			log.Error("render failed", "input", in, "err", err)
		}
	}

	last := stat(in)
	renderOnce()

	debounced := debounce.New(settleTimeout)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			stopped = true
			mu.Unlock()
			running.Wait()
			return
		case <-ticker.C:
			cur := stat(in)
			if cur.same(last) {
				continue
			}
			last = cur
			log.Debug("input changed", "input", in, "exists", cur.exists)
			debounced(renderOnce)
		}
	}
}
