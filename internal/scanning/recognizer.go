package scanning

// Recognizer defines the interface for optical text recognition engines.
type Recognizer interface {
	// RecognizeText transcribes all legible text from a receipt image.
	// An empty string means no usable text was found; that is a valid
	// terminal result, not an error.
	RecognizeText(imageData []byte, contentType string) (string, error)
	// Close closes the recognizer and releases resources
	Close() error
}
