// ABOUTME: Hot reload of a file-backed catalog driven by the config watcher
// ABOUTME: A valid file swaps a fresh engine into the holder; an invalid one keeps the old engine

package main

import (
	"strings"
	"sync/atomic"

	"github.com/mauromedda/supportbot-go/internal/catalog"
	"github.com/mauromedda/supportbot-go/internal/intent"
	"github.com/mauromedda/supportbot-go/internal/log"
)

type reloader struct {
	path    string
	picker  intent.Picker
	holder  *intent.Holder
	current *atomic.Pointer[catalog.Bundle]
	out     chan *catalog.Bundle // buffered; a pending notification is replaced
}

// reload is the watcher callback.
func (r *reloader) reload(changed []string) {
	b, err := catalog.LoadFile(r.path)
	if err != nil {
		log.Warn("catalog: reload of %s failed, keeping the previous catalog: %v", r.path, err)
		return
	}

	r.holder.Swap(intent.NewEngine(b.Catalog, intent.WithPicker(r.picker)))
	r.current.Store(b)
	log.Info("catalog: reloaded %q (%d categories) after change to %s", b.Name(), b.Catalog.Len(), strings.Join(changed, ", "))

	if r.out == nil {
		return
	}
	for {
		select {
		case r.out <- b:
			return
		default:
		}
		select {
		case <-r.out:
		default:
		}
	}
}

func isBuiltin(b *catalog.Bundle) bool {
	return strings.HasPrefix(b.Source, "builtin:")
}
