package tickets

import "errors"

var (
	// ErrCodeGeneration - не удалось получить случайные байты для кода билета.
	ErrCodeGeneration = errors.New("tickets: failed to generate ticket code")
	// ErrRender - не удалось отрисовать QR-код.
	ErrRender = errors.New("tickets: failed to render QR code")
)
