// ABOUTME: RPC mode for embedding the assistant in another program (site backend, widget host)
// ABOUTME: JSONL-based protocol over stdin/stdout, one request per line

package rpc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mauromedda/supportbot-go/internal/log"
)

// maxLineSize caps a single request line. Longer lines are discarded and
// answered with an invalid-request error; the session keeps going.
const maxLineSize = 10 * 1024 * 1024

// Server handles RPC requests from an external client.
type Server struct {
	reader  *bufio.Reader
	writer  io.Writer
	handler func(Request) Response
	maxLine int
}

// NewServer creates an RPC server reading from stdin, writing to stdout.
func NewServer(handler func(Request) Response) *Server {
	return NewServerIO(os.Stdin, os.Stdout, handler)
}

// NewServerIO creates an RPC server over arbitrary streams.
func NewServerIO(r io.Reader, w io.Writer, handler func(Request) Response) *Server {
	return &Server{
		reader:  bufio.NewReaderSize(r, 64*1024),
		writer:  w,
		handler: handler,
		maxLine: maxLineSize,
	}
}

// Run serves requests until the input ends or ctx is done. Blank lines are
// ignored.
func (s *Server) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, tooLong, err := s.readLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}
		if tooLong {
			log.Warn("rpc: dropped request line longer than %d bytes", s.maxLine)
			if werr := s.send(Response{Error: NewRequestTooLargeError(s.maxLine)}); werr != nil {
				return werr
			}
			continue
		}
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			if werr := s.send(Response{Error: NewParseError(fmt.Sprintf("parse error: %v", err))}); werr != nil {
				return werr
			}
			continue
		}
		log.Debug("rpc: %s (id=%s)", req.Method, req.ID)

		resp := s.handler(req)
		resp.ID = req.ID
		if err := s.send(resp); err != nil {
			return err
		}
	}
}

// readLine returns the next line without its terminator. A line longer than
// maxLine is consumed to its end and reported with tooLong set and no data.
func (s *Server) readLine() (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := s.reader.ReadLine()
		if err != nil {
			if len(line) > 0 || tooLong {
				return line, tooLong, nil
			}
			return nil, false, err
		}
		if !tooLong {
			if len(line)+len(chunk) > s.maxLine {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

func (s *Server) send(resp Response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		data, _ = json.Marshal(Response{
			ID:    resp.ID,
			Error: NewInternalError(fmt.Sprintf("internal error: %v", err)),
		})
	}

	data = append(data, '\n')
	if _, err := s.writer.Write(data); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
