package watch

import (
	"context"

	"github.com/xmazu/envtable/internal/editor"
)

type Renderer interface {
	Render() (editor.RenderMessage, error)
}

// Follow emits a render immediately and again after every change reported
// on changes, until ctx is done or changes is closed. Render errors are
// passed to onErr and do not stop the loop.
func Follow(ctx context.Context, r Renderer, changes <-chan struct{}, emit func(editor.RenderMessage), onErr func(error)) {
	render := func() {
		msg, err := r.Render()
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		emit(msg)
	}

	render()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			render()
		}
	}
}
