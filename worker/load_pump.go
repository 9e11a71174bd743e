package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/deepakSingh023/blogclient/state"
)

type Loader interface {
	LoadMore(ctx context.Context, scope state.Scope) error
}

// LoadPump turns sentinel-visibility triggers into page loads, one at a
// time. The channel is unbuffered and submission never blocks, so a
// trigger firing while a load is underway is dropped, not queued; the
// loader's per-scope in-flight guard backs this up.
type LoadPump struct {
	TriggerCh chan state.Scope
	loader    Loader
	log       *zap.SugaredLogger
}

const loadTimeout = 30 * time.Second

func NewLoadPump(loader Loader, log *zap.SugaredLogger) *LoadPump {
	return &LoadPump{
		TriggerCh: make(chan state.Scope),
		loader:    loader,
		log:       log,
	}
}

// Trigger submits a scope for loading. Returns false when the pump is
// busy and the trigger was dropped.
func (p *LoadPump) Trigger(scope state.Scope) bool {
	select {
	case p.TriggerCh <- scope:
		return true
	default:
		return false
	}
}

func (p *LoadPump) Run(shutdownCtx context.Context) {
	for {
		select {
		case scope := <-p.TriggerCh:
			ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
			if err := p.loader.LoadMore(ctx, scope); err != nil {
				p.log.Warnf("load more failed: %v", err)
			}
			cancel()

		case <-shutdownCtx.Done():
			return
		}
	}
}
