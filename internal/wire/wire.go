package wire

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/supexhq/supex-go/internal/errors"
)

const (
	// readChunkSize is the receive buffer size for a single socket read.
	readChunkSize = 4096

	// DefaultMaxResponseBytes bounds the size of a single framed response.
	DefaultMaxResponseBytes = 10 * 1024 * 1024 // 10 MiB

	// rawDataPreview caps how much of a malformed response is preserved
	// in ProtocolError.RawData.
	rawDataPreview = 200
)

// Encode serializes a message as one newline-terminated UTF-8 JSON line.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}

	return append(data, '\n'), nil
}

// ReadFrame accumulates bytes from conn until a newline delimiter is seen,
// returning the full frame including the trailing newline.
//
// The read is bounded by timeout and maxSize. Error mapping:
//   - peer closes with no data received: ConnectionError
//   - peer closes mid-frame: ProtocolError (incomplete response)
//   - accumulated size exceeds maxSize: ProtocolError, without waiting for
//     more data
//   - deadline elapses with no data: TimeoutError
//   - deadline elapses mid-frame: ProtocolError (incomplete response)
func ReadFrame(conn net.Conn, timeout time.Duration, maxSize int) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxResponseBytes
	}

	if err := conn.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, &errors.ConnectionError{Msg: "set read deadline", Err: err}
	}

	data := make([]byte, 0, readChunkSize)
	chunk := make([]byte, readChunkSize)

	for {
		n, err := conn.Read(chunk)
		if n > 0 {
			data = append(data, chunk[:n]...)

			if len(data) > maxSize {
				return nil, &errors.ProtocolError{
					Reason: fmt.Sprintf("response exceeds maximum size (%d bytes)", maxSize),
				}
			}

			if bytes.IndexByte(chunk[:n], '\n') >= 0 {
				return data, nil
			}
		}

		if err == nil {
			continue
		}

		switch {
		case stderrors.Is(err, io.EOF):
			if len(data) == 0 {
				return nil, &errors.ConnectionError{
					Msg: "connection closed by runtime",
					Err: errors.ErrPeerClosed,
				}
			}

			return nil, &errors.ProtocolError{Reason: "incomplete response: connection closed"}

		case isTimeout(err):
			if len(data) > 0 {
				return nil, &errors.ProtocolError{Reason: "incomplete response: timeout with partial data"}
			}

			return nil, &errors.TimeoutError{Timeout: timeout, Err: err}

		default:
			return nil, &errors.ConnectionError{Msg: "connection error", Err: err}
		}
	}
}

// DecodeResponse parses a framed response, distinguishing malformed JSON
// (never retried) from a well-formed error response.
func DecodeResponse(frame []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(bytes.TrimRight(frame, "\n"), &resp); err != nil {
		return nil, &errors.ProtocolError{
			Reason:    "invalid response from runtime",
			RawData:   preview(frame),
			Malformed: true,
			Err:       err,
		}
	}

	return &resp, nil
}

func preview(frame []byte) string {
	if len(frame) > rawDataPreview {
		frame = frame[:rawDataPreview]
	}

	return string(frame)
}

func isTimeout(err error) bool {
	var ne net.Error
	if stderrors.As(err, &ne) && ne.Timeout() {
		return true
	}

	return false
}
