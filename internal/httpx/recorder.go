package httpx

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// Recorder captures the status and body size of a response. It passes
// Flush and Hijack through so event streams and websocket upgrades keep
// working behind logging middleware.
type Recorder struct {
	http.ResponseWriter
	Status int
	Bytes  int
}

func NewRecorder(w http.ResponseWriter) *Recorder {
	return &Recorder{ResponseWriter: w}
}

func (r *Recorder) WriteHeader(code int) {
	if r.Status == 0 {
		r.Status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *Recorder) Write(b []byte) (int, error) {
	if r.Status == 0 {
		r.Status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.Bytes += n
	return n, err
}

func (r *Recorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		if r.Status == 0 {
			r.Status = http.StatusOK
		}
		f.Flush()
	}
}

func (r *Recorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("httpx: underlying response writer cannot hijack")
	}
	// 101 Switching Protocols is written on the raw connection.
	r.Status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// Unwrap lets http.ResponseController reach the original writer.
func (r *Recorder) Unwrap() http.ResponseWriter { return r.ResponseWriter }
