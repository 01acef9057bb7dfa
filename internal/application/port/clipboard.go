package port

import "context"

//go:generate mockgen -source=clipboard.go -destination=mocks/mock_clipboard.go -package=mocks

// Clipboard reads and writes the system clipboard as text.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
	ReadText(ctx context.Context) (string, error)
}
