package styles

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "×"
	WarningIcon string = "⚠"
	InfoIcon    string = "ℹ"
	ResizeIcon  string = "◢"
)
