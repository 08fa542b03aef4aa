package messages

// ContentLoaded is sent when a content source produced new ticker text.
type ContentLoaded struct {
	Text string
	// Source names the source that produced the text.
	Source string
}

// SourceError is sent when a content source stops with an error.
type SourceError struct {
	Source string
	Err    error
}

func (e SourceError) Error() string {
	if e.Source != "" {
		return e.Source + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ToastLevel identifies the type of toast notification to display.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
	ToastWarning ToastLevel = "warning"
)

// Toast requests a toast notification in the status line.
type Toast struct {
	Message string
	Level   ToastLevel
}

// ToastExpired clears the toast with the given sequence number.
type ToastExpired struct {
	Seq int
}

// SettingsSaved reports the result of persisting UI settings.
type SettingsSaved struct {
	Err error
}
