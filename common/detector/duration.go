package detector

// bytesPerSecond assumes a 128 kbit/s stream: 16 KiB of payload per second
// of audio.
const bytesPerSecond = 16 * 1024

// EstimateDuration approximates the length in seconds of an encoded payload
// of n bytes without decoding it.
func EstimateDuration(n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n) / bytesPerSecond
}
