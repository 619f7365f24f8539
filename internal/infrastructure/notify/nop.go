package notify

import "context"

// Nop descarta todos los eventos (NOTIFIER_DRIVER=none).
type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }
