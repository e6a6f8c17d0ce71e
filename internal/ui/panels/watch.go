package panels

import "context"

// watch hands every event to handle on the UI loop until ctx ends or events closes.
func watch[E any](ctx context.Context, events <-chan E, dispatch func(func()), handle func(E)) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-events:
				if !ok {
					return
				}
				dispatch(func() { handle(event) })
			}
		}
	}()
}
